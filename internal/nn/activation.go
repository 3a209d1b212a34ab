package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Activation selects the nonlinearity applied at the end of a Neuron.
type Activation int

// Supported activations.
const (
	Linear Activation = iota // No activation
	ReLU
	Tanh
	Sigmoid
)

// ParseActivation converts a name such as "relu" or "Tanh" to an Activation.
// The empty string and "linear" select Linear.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear", "none":
		return Linear, nil
	case "relu":
		return ReLU, nil
	case "tanh":
		return Tanh, nil
	case "sigmoid":
		return Sigmoid, nil
	default:
		return Linear, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// String returns the lower-case activation name.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	case Sigmoid:
		return "sigmoid"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// apply runs the activation on v.
func (a Activation) apply(v *autodiff.Value) (*autodiff.Value, error) {
	switch a {
	case Linear:
		return v, nil
	case ReLU:
		return v.ReLU(), nil
	case Tanh:
		return v.Tanh(), nil
	case Sigmoid:
		return v.Sigmoid(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownActivation, a)
	}
}
