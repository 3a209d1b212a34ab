package autodiff

import "errors"

// Common errors.
var (
	ErrInvalidOperand = errors.New("autodiff: invalid operand")
	ErrNumericDomain  = errors.New("autodiff: numeric domain error")
	ErrGraphCycle     = errors.New("autodiff: computation graph contains a cycle")
)
