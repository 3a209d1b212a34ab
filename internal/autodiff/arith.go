package autodiff

import (
	"fmt"
	"math"
)

// Add returns v + o.
//
// d(a+b)/da = 1, d(a+b)/db = 1.
func (v *Value) Add(o Operand) *Value {
	v.mustBeNode()
	other := mustLift(o)
	out := newResult(v.data+other.data, OpAdd, v, other)
	out.backward = func() {
		v.grad += out.grad
		other.grad += out.grad
	}
	return out
}

// Mul returns v * o.
//
// d(a*b)/da = b, d(a*b)/db = a.
func (v *Value) Mul(o Operand) *Value {
	v.mustBeNode()
	other := mustLift(o)
	out := newResult(v.data*other.data, OpMul, v, other)
	out.backward = func() {
		v.grad += other.data * out.grad
		other.grad += v.data * out.grad
	}
	return out
}

// Pow returns v raised to a constant exponent.
//
// The exponent is not a graph node, so only the base receives a gradient:
// d(a^e)/da = e * a^(e-1).
//
// Fails with ErrNumericDomain for a non-positive base with a fractional
// exponent, a zero base with a negative exponent, or a non-finite result
// or local derivative. A nil receiver fails with ErrInvalidOperand.
func (v *Value) Pow(exponent float64) (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil *Value", ErrInvalidOperand)
	}
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("%w: pow exponent %g", ErrNumericDomain, exponent)
	}
	integral := exponent == math.Trunc(exponent)
	switch {
	case v.data < 0 && !integral:
		return nil, fmt.Errorf("%w: pow(%g, %g): negative base with fractional exponent", ErrNumericDomain, v.data, exponent)
	case v.data == 0 && !integral:
		return nil, fmt.Errorf("%w: pow(0, %g): fractional exponent of zero", ErrNumericDomain, exponent)
	case v.data == 0 && exponent < 0:
		return nil, fmt.Errorf("%w: pow(0, %g): division by zero", ErrNumericDomain, exponent)
	}

	data := math.Pow(v.data, exponent)
	if math.IsNaN(data) || math.IsInf(data, 0) {
		return nil, fmt.Errorf("%w: pow(%g, %g) is not finite", ErrNumericDomain, v.data, exponent)
	}

	// x^0 is constant; computing 0 * x^-1 would give NaN at x = 0.
	local := 0.0
	if exponent != 0 {
		local = exponent * math.Pow(v.data, exponent-1)
	}
	if math.IsNaN(local) || math.IsInf(local, 0) {
		return nil, fmt.Errorf("%w: derivative of pow(%g, %g) is not finite", ErrNumericDomain, v.data, exponent)
	}

	out := newResult(data, OpPow, v)
	out.backward = func() {
		v.grad += local * out.grad
	}
	return out, nil
}

// Neg returns -v, built as v * -1.
func (v *Value) Neg() *Value {
	return v.Mul(Const(-1))
}

// Sub returns v - o, built as v + (-o).
func (v *Value) Sub(o Operand) *Value {
	return v.Add(mustLift(o).Neg())
}

// RSub returns o - v.
func (v *Value) RSub(o Operand) *Value {
	return mustLift(o).Add(v.Neg())
}

// Div returns v / o, built as v * o^-1.
// Division by a zero-valued node fails with ErrNumericDomain.
func (v *Value) Div(o Operand) (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil *Value", ErrInvalidOperand)
	}
	other, err := Lift(o)
	if err != nil {
		return nil, err
	}
	inv, err := other.Pow(-1)
	if err != nil {
		return nil, err
	}
	return v.Mul(inv), nil
}

// RDiv returns o / v.
func (v *Value) RDiv(o Operand) (*Value, error) {
	other, err := Lift(o)
	if err != nil {
		return nil, err
	}
	inv, err := v.Pow(-1)
	if err != nil {
		return nil, err
	}
	return other.Mul(inv), nil
}

// Sum adds all values left to right. An empty sum is a new zero leaf.
func Sum(vs ...*Value) *Value {
	if len(vs) == 0 {
		return New(0)
	}
	out := vs[0]
	for _, v := range vs[1:] {
		out = out.Add(v)
	}
	return out
}
