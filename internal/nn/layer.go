package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Layer is a fully connected row of neurons that all read the same input.
//
// Example:
//
//	rng := nn.NewRand(42)
//	layer := nn.NewLayer(3, 4, nn.ReLU, rng)
//	out, err := layer.Forward(nn.Inputs(1, 2, 3)) // len(out) == 4
type Layer struct {
	inFeatures int
	neurons    []*Neuron
}

// NewLayer creates a layer with nin inputs and nout neurons.
func NewLayer(nin, nout int, act Activation, rng *rand.Rand) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(nin, act, rng)
	}
	return &Layer{
		inFeatures: nin,
		neurons:    neurons,
	}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []*autodiff.Value) ([]*autodiff.Value, error) {
	if len(x) != l.inFeatures {
		return nil, fmt.Errorf("%w: layer expects %d inputs, got %d", ErrShapeMismatch, l.inFeatures, len(x))
	}

	out := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		v, err := n.Call(x)
		if err != nil {
			return nil, fmt.Errorf("neuron %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// InFeatures returns the input size.
func (l *Layer) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of neurons.
func (l *Layer) OutFeatures() int {
	return len(l.neurons)
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Clone returns a copy of l with fresh parameter leaves.
func (l *Layer) Clone() Module {
	neurons := make([]*Neuron, len(l.neurons))
	for i, n := range l.neurons {
		neurons[i] = n.clone()
	}
	return &Layer{
		inFeatures: l.inFeatures,
		neurons:    neurons,
	}
}
