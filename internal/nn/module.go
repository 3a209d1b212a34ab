// Package nn implements small neural network building blocks on top of the
// scalar autodiff engine.
//
// This package provides:
//   - Module interface: Forward plus Parameters
//   - Neuron: weighted sum, bias and an optional activation
//   - Layer: a row of independent neurons sharing the same input
//   - Sequential: container for stacking layers
//   - Loss functions: BinaryCrossEntropy, MeanSquaredError, Mean
//
// Every parameter is a leaf *autodiff.Value. A forward pass builds a fresh
// graph over those leaves; Backward on the loss fills their gradients. The
// package never updates weights.
package nn

import "github.com/born-ml/scalargrad/internal/autodiff"

// Module is the base interface for all neural network components.
//
// Modules can be composed:
//
//	model := nn.NewSequential(
//	    nn.NewLayer(2, 4, nn.Tanh, rng),
//	    nn.NewLayer(4, 1, nn.Sigmoid, rng),
//	)
type Module interface {
	// Forward computes the module outputs for one input sample.
	Forward(x []*autodiff.Value) ([]*autodiff.Value, error)

	// Parameters returns all trainable leaves of this module, including
	// those of nested modules, in a stable order.
	Parameters() []*autodiff.Value

	// Clone returns a structurally identical module whose parameters are
	// fresh leaves holding the same data. Parameters() of the clone lines
	// up index by index with the original.
	Clone() Module
}
