// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/scalargrad/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Activation selects a neuron nonlinearity.
type Activation = nn.Activation

// Activations.
const (
	Linear  = nn.Linear
	ReLU    = nn.ReLU
	Tanh    = nn.Tanh
	Sigmoid = nn.Sigmoid
)

// DefaultEpsilon is the log offset used by log-loss.
const DefaultEpsilon = nn.DefaultEpsilon

// Errors.
var (
	ErrShapeMismatch     = nn.ErrShapeMismatch
	ErrUnknownActivation = nn.ErrUnknownActivation
)

// ParseActivation converts a name to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// NewRand returns a deterministic generator for weight initialization.
func NewRand(seed uint64) *rand.Rand {
	return nn.NewRand(seed)
}

// Layers

// Neuron computes act(Σ wᵢxᵢ + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(nin int, act Activation, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(nin, act, rng)
}

// Layer is a fully connected row of neurons.
type Layer = nn.Layer

// NewLayer creates a layer with nin inputs and nout neurons.
//
// Example:
//
//	layer := nn.NewLayer(3, 4, nn.ReLU, nn.NewRand(1))
func NewLayer(nin, nout int, act Activation, rng *rand.Rand) *Layer {
	return nn.NewLayer(nin, nout, act, rng)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Utilities

// ZeroGrad clears the gradients of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// NumParameters returns the number of trainable scalars in m.
func NumParameters(m Module) int {
	return nn.NumParameters(m)
}

// Inputs wraps raw features as leaves.
func Inputs(xs ...float64) []*autodiff.Value {
	return nn.Inputs(xs...)
}

// Loss functions

// BinaryCrossEntropy computes -[y·ln(p+ε) + (1-y)·ln(1-p+ε)].
func BinaryCrossEntropy(yTrue float64, yPred *autodiff.Value, eps float64) (*autodiff.Value, error) {
	return nn.BinaryCrossEntropy(yTrue, yPred, eps)
}

// MeanSquaredError computes mean((p - y)²).
func MeanSquaredError(yTrue []float64, yPred []*autodiff.Value) (*autodiff.Value, error) {
	return nn.MeanSquaredError(yTrue, yPred)
}

// Mean averages per-sample losses.
func Mean(losses []*autodiff.Value) (*autodiff.Value, error) {
	return nn.Mean(losses)
}
