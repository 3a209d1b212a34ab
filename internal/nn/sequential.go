package nn

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLayer(2, 4, nn.Tanh, rng),
//	    nn.NewLayer(4, 1, nn.Sigmoid, rng),
//	)
//
//	out, err := model.Forward(nn.Inputs(0, 1))
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(x []*autodiff.Value) ([]*autodiff.Value, error) {
	out := x
	for i, m := range s.modules {
		next, err := m.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}

// Parameters returns all trainable parameters from all modules.
func (s *Sequential) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at index i.
func (s *Sequential) Module(i int) Module {
	return s.modules[i]
}

// Clone returns a copy of s with every module cloned.
func (s *Sequential) Clone() Module {
	modules := make([]Module, len(s.modules))
	for i, m := range s.modules {
		modules[i] = m.Clone()
	}
	return &Sequential{modules: modules}
}
