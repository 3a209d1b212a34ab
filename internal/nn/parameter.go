package nn

import "github.com/born-ml/scalargrad/internal/autodiff"

// ZeroGrad clears the gradient of every parameter of m.
//
// This should be called before each training iteration to avoid
// accumulating gradients from previous iterations.
func ZeroGrad(m Module) {
	autodiff.ZeroGrad(m.Parameters()...)
}

// NumParameters returns the number of trainable scalars in m.
func NumParameters(m Module) int {
	return len(m.Parameters())
}

// Inputs wraps raw sample features as leaves for Forward.
func Inputs(xs ...float64) []*autodiff.Value {
	out := make([]*autodiff.Value, len(xs))
	for i, x := range xs {
		out[i] = autodiff.New(x)
	}
	return out
}
