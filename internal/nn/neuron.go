package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Neuron computes act(Σ wᵢxᵢ + b).
//
// Weights and bias are drawn from N(0, 1).
type Neuron struct {
	weights    []*autodiff.Value
	bias       *autodiff.Value
	activation Activation
}

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(nin int, act Activation, rng *rand.Rand) *Neuron {
	weights := make([]*autodiff.Value, nin)
	for i := range weights {
		weights[i] = autodiff.New(normal(rng))
	}
	return &Neuron{
		weights:    weights,
		bias:       autodiff.New(normal(rng)),
		activation: act,
	}
}

// Call computes the neuron output for one sample.
func (n *Neuron) Call(x []*autodiff.Value) (*autodiff.Value, error) {
	if len(x) != len(n.weights) {
		return nil, fmt.Errorf("%w: neuron expects %d inputs, got %d", ErrShapeMismatch, len(n.weights), len(x))
	}

	terms := make([]*autodiff.Value, 0, len(x)+1)
	for i, xi := range x {
		terms = append(terms, xi.Mul(n.weights[i]))
	}
	terms = append(terms, n.bias)

	return n.activation.apply(autodiff.Sum(terms...))
}

// Forward implements Module with a single output.
func (n *Neuron) Forward(x []*autodiff.Value) ([]*autodiff.Value, error) {
	out, err := n.Call(x)
	if err != nil {
		return nil, err
	}
	return []*autodiff.Value{out}, nil
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// Activation returns the neuron's activation.
func (n *Neuron) Activation() Activation {
	return n.activation
}

// NumInputs returns the number of inputs the neuron expects.
func (n *Neuron) NumInputs() int {
	return len(n.weights)
}

// Clone returns a copy of n with fresh parameter leaves.
func (n *Neuron) Clone() Module {
	return n.clone()
}

func (n *Neuron) clone() *Neuron {
	weights := make([]*autodiff.Value, len(n.weights))
	for i, w := range n.weights {
		weights[i] = autodiff.New(w.Data())
	}
	return &Neuron{
		weights:    weights,
		bias:       autodiff.New(n.bias.Data()),
		activation: n.activation,
	}
}
