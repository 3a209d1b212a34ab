// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar automatic differentiation.
//
// Every number is a *Value node. Operators build the computation graph as
// they run, and Backward on the final node computes the gradient of that
// node with respect to everything it was computed from.
//
// Example:
//
//	import "github.com/born-ml/scalargrad/autodiff"
//
//	func main() {
//	    a := autodiff.New(2.0)
//	    b := autodiff.New(4.0)
//	    c := a.Mul(b).Add(a)   // c = a*b + a
//
//	    if err := c.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad())  // b + 1 = 5
//	    fmt.Println(b.Grad())  // a = 2
//	}
package autodiff

import "github.com/born-ml/scalargrad/internal/autodiff"

// Value is a scalar node in the computation graph.
type Value = autodiff.Value

// Operand is accepted by binary operators: *Value or Const.
type Operand = autodiff.Operand

// Const is a raw number promoted to a leaf when used as an operand.
type Const = autodiff.Const

// LogOption configures Value.Log.
type LogOption = autodiff.LogOption

// Errors reported by the engine.
var (
	ErrInvalidOperand = autodiff.ErrInvalidOperand
	ErrNumericDomain  = autodiff.ErrNumericDomain
	ErrGraphCycle     = autodiff.ErrGraphCycle
)

// New creates a leaf node.
func New(data float64) *Value {
	return autodiff.New(data)
}

// FromAny creates a leaf from any Go integer or float value.
func FromAny(x any) (*Value, error) {
	return autodiff.FromAny(x)
}

// Lift returns the node behind an operand.
func Lift(o Operand) (*Value, error) {
	return autodiff.Lift(o)
}

// Sum adds the given nodes.
func Sum(vs ...*Value) *Value {
	return autodiff.Sum(vs...)
}

// ZeroGrad resets the gradients of the given nodes.
func ZeroGrad(vs ...*Value) {
	autodiff.ZeroGrad(vs...)
}

// WithEpsilon makes Log compute ln(x + eps).
func WithEpsilon(eps float64) LogOption {
	return autodiff.WithEpsilon(eps)
}
