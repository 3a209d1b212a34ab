// Package gradcheck compares gradients from the autodiff engine against
// central finite differences.
//
// The engine result comes from a single Backward call on leaves placed at
// the evaluation point. The numeric result comes from gonum's diff/fd,
// which re-evaluates the expression on fresh leaves for every perturbed
// input.
package gradcheck

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// ErrMismatch is returned when analytic and numeric gradients disagree by
// more than the configured tolerance.
var ErrMismatch = errors.New("gradcheck: analytic and numeric gradients disagree")

// Func builds a scalar expression over the given leaves.
type Func func(inputs []*autodiff.Value) (*autodiff.Value, error)

// Settings controls the finite-difference comparison.
type Settings struct {
	Step      float64 // Finite-difference step
	Tolerance float64 // Maximum allowed |analytic - numeric| per input
}

// DefaultSettings returns a step and tolerance suited to float64 inputs of
// moderate magnitude.
func DefaultSettings() Settings {
	return Settings{
		Step:      1e-6,
		Tolerance: 1e-4,
	}
}

// Result holds both gradients and their largest absolute difference.
type Result struct {
	Value      float64   // f at the evaluation point
	Analytic   []float64 // Gradients from Backward
	Numeric    []float64 // Gradients from central differences
	MaxAbsDiff float64   // L∞ distance between Analytic and Numeric
}

// Check evaluates f at the point at and compares the two gradients.
//
// The Result is returned alongside ErrMismatch so callers can report the
// offending entries.
func Check(f Func, at []float64, s Settings) (Result, error) {
	if len(at) == 0 {
		return Result{}, fmt.Errorf("gradcheck: empty evaluation point")
	}

	inputs := leaves(at)
	out, err := f(inputs)
	if err != nil {
		return Result{}, fmt.Errorf("gradcheck: forward: %w", err)
	}
	if err := out.Backward(); err != nil {
		return Result{}, fmt.Errorf("gradcheck: backward: %w", err)
	}

	res := Result{
		Value:    out.Data(),
		Analytic: make([]float64, len(inputs)),
	}
	for i, in := range inputs {
		res.Analytic[i] = in.Grad()
	}

	// fd evaluates sequentially unless Concurrent is set, so the first
	// failure can be captured here.
	var evalErr error
	eval := func(x []float64) float64 {
		y, err := f(leaves(x))
		if err != nil {
			if evalErr == nil {
				evalErr = err
			}
			return math.NaN()
		}
		return y.Data()
	}
	res.Numeric = fd.Gradient(nil, eval, at, &fd.Settings{
		Formula: fd.Central,
		Step:    s.Step,
	})
	if evalErr != nil {
		return res, fmt.Errorf("gradcheck: numeric evaluation: %w", evalErr)
	}

	res.MaxAbsDiff = floats.Distance(res.Analytic, res.Numeric, math.Inf(1))
	if !(res.MaxAbsDiff <= s.Tolerance) {
		return res, fmt.Errorf("%w: max |Δ| = %g exceeds %g", ErrMismatch, res.MaxAbsDiff, s.Tolerance)
	}
	return res, nil
}

func leaves(xs []float64) []*autodiff.Value {
	out := make([]*autodiff.Value, len(xs))
	for i, x := range xs {
		out[i] = autodiff.New(x)
	}
	return out
}
