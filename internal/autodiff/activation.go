package autodiff

import (
	"fmt"
	"math"
)

// ReLU returns max(0, v).
// The gradient passes through unchanged where v > 0 and is dropped otherwise.
func (v *Value) ReLU() *Value {
	v.mustBeNode()
	data := 0.0
	if v.data > 0 {
		data = v.data
	}
	out := newResult(data, OpReLU, v)
	out.backward = func() {
		if v.data > 0 {
			v.grad += out.grad
		}
	}
	return out
}

// Tanh returns tanh(v). d/dx tanh(x) = 1 - tanh²(x).
func (v *Value) Tanh() *Value {
	v.mustBeNode()
	t := math.Tanh(v.data)
	out := newResult(t, OpTanh, v)
	out.backward = func() {
		v.grad += (1 - t*t) * out.grad
	}
	return out
}

// Sigmoid returns 1 / (1 + e^-v). dσ/dx = σ(x)(1 - σ(x)).
//
// The gradient is accumulated into v like every other operation, so an
// operand shared by several consumers receives all contributions.
func (v *Value) Sigmoid() *Value {
	v.mustBeNode()
	s := sigmoid(v.data)
	out := newResult(s, OpSigmoid, v)
	out.backward = func() {
		v.grad += s * (1 - s) * out.grad
	}
	return out
}

// sigmoid avoids overflowing exp for large negative inputs.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// Exp returns e^v. d/dx e^x = e^x.
//
// Exp never fails: an input above about 709.78 overflows to +Inf, and a
// later 0 * Inf turns into NaN. Use ExpChecked where that must be an error.
func (v *Value) Exp() *Value {
	v.mustBeNode()
	e := math.Exp(v.data)
	out := newResult(e, OpExp, v)
	out.backward = func() {
		v.grad += e * out.grad
	}
	return out
}

// ExpChecked is Exp that fails with ErrNumericDomain instead of
// overflowing to +Inf.
func (v *Value) ExpChecked() (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil *Value", ErrInvalidOperand)
	}
	if e := math.Exp(v.data); math.IsInf(e, 0) || math.IsNaN(e) {
		return nil, fmt.Errorf("%w: exp(%g) is not finite", ErrNumericDomain, v.data)
	}
	return v.Exp(), nil
}

// LogOption configures Log.
type LogOption func(*logOptions)

type logOptions struct {
	eps float64 // Offset added to the input before taking the log
}

// WithEpsilon makes Log compute ln(x + eps).
// This is the usual stabilization for log-loss on probabilities near 0.
func WithEpsilon(eps float64) LogOption {
	return func(o *logOptions) {
		o.eps = eps
	}
}

// Log returns the natural logarithm of v (plus an optional epsilon offset).
//
// Fails with ErrNumericDomain when v + eps <= 0 or when eps is negative.
// d/dx ln(x + eps) = 1 / (x + eps).
func (v *Value) Log(opts ...LogOption) (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil *Value", ErrInvalidOperand)
	}
	var o logOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.eps < 0 || math.IsNaN(o.eps) {
		return nil, fmt.Errorf("%w: log epsilon %g must be non-negative", ErrNumericDomain, o.eps)
	}

	x := v.data + o.eps
	if !(x > 0) {
		return nil, fmt.Errorf("%w: log(%g) with epsilon %g", ErrNumericDomain, v.data, o.eps)
	}

	out := newResult(math.Log(x), OpLog, v)
	out.backward = func() {
		v.grad += out.grad / x
	}
	return out, nil
}
