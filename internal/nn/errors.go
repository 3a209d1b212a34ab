package nn

import "errors"

// Common errors.
var (
	ErrShapeMismatch     = errors.New("nn: input size does not match")
	ErrUnknownActivation = errors.New("nn: unknown activation")
)
