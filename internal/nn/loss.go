package nn

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// DefaultEpsilon is the log offset used by log-loss when none is given.
const DefaultEpsilon = 1e-15

// BinaryCrossEntropy computes -[y·ln(p+ε) + (1-y)·ln(1-p+ε)] for a single
// prediction p in [0, 1] and target y.
//
// The epsilon keeps ln away from zero at saturated predictions. A domain
// error from the engine is returned unchanged.
func BinaryCrossEntropy(yTrue float64, yPred *autodiff.Value, eps float64) (*autodiff.Value, error) {
	logP, err := yPred.Log(autodiff.WithEpsilon(eps))
	if err != nil {
		return nil, fmt.Errorf("bce: ln(p): %w", err)
	}
	logNotP, err := yPred.RSub(autodiff.Const(1)).Log(autodiff.WithEpsilon(eps))
	if err != nil {
		return nil, fmt.Errorf("bce: ln(1-p): %w", err)
	}

	pos := logP.Mul(autodiff.Const(yTrue))
	neg := logNotP.Mul(autodiff.Const(1 - yTrue))
	return pos.Add(neg).Neg(), nil
}

// MeanSquaredError computes mean((p - y)²).
func MeanSquaredError(yTrue []float64, yPred []*autodiff.Value) (*autodiff.Value, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d targets, %d predictions", ErrShapeMismatch, len(yTrue), len(yPred))
	}

	squared := make([]*autodiff.Value, len(yPred))
	for i, p := range yPred {
		diff := p.Sub(autodiff.Const(yTrue[i]))
		squared[i] = diff.Mul(diff)
	}
	return Mean(squared)
}

// Mean averages per-sample losses into one node.
func Mean(losses []*autodiff.Value) (*autodiff.Value, error) {
	if len(losses) == 0 {
		return nil, fmt.Errorf("%w: mean of no losses", ErrShapeMismatch)
	}
	return autodiff.Sum(losses...).Mul(autodiff.Const(1 / float64(len(losses)))), nil
}
