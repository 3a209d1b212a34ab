package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Errors returned by Gradients.
var (
	ErrSharedParameter   = errors.New("parallel: sample graph reuses a caller parameter")
	ErrParameterMismatch = errors.New("parallel: replica parameter count differs")
)

// SampleFunc builds the loss of sample i on a private replica of the model.
//
// It returns the loss node and the replica's parameters, aligned index by
// index with the parameters passed to Gradients. The replica must not
// contain any of the caller's parameter nodes.
type SampleFunc func(i int) (loss *autodiff.Value, replica []*autodiff.Value, err error)

// Batch holds gradients summed over all samples.
type Batch struct {
	Loss    float64   // Sum of per-sample losses
	Grads   []float64 // Sum of per-sample gradients, aligned with params
	Samples int       // Number of samples merged
}

// MeanLoss returns Loss / Samples.
func (b Batch) MeanLoss() float64 {
	if b.Samples == 0 {
		return 0
	}
	return b.Loss / float64(b.Samples)
}

// MeanGrads returns Grads / Samples as a new slice.
func (b Batch) MeanGrads() []float64 {
	out := make([]float64, len(b.Grads))
	if b.Samples == 0 {
		return out
	}
	copy(out, b.Grads)
	floats.Scale(1/float64(b.Samples), out)
	return out
}

// Gradients runs build for samples [0, n), back-propagates each sample
// graph on its own, and sums the replica gradients.
//
// params is only used for alignment and to reject replicas that share a
// node with the caller. Its gradients are never modified; applying the
// result is the caller's job. Cancelling ctx stops samples that have not
// started yet. The first error wins and no partial Batch is returned.
func Gradients(ctx context.Context, params []*autodiff.Value, n int, build SampleFunc, cfg Config) (Batch, error) {
	owned := make(map[*autodiff.Value]struct{}, len(params))
	for _, p := range params {
		owned[p] = struct{}{}
	}

	var (
		mu       sync.Mutex
		firstErr error
		batch    = Batch{Grads: make([]float64, len(params))}
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	For(n, func(i int) {
		if err := ctx.Err(); err != nil {
			fail(err)
			return
		}
		if failed() {
			return
		}

		grads, loss, err := sample(i, build, owned, len(params))
		if err != nil {
			fail(fmt.Errorf("sample %d: %w", i, err))
			return
		}

		mu.Lock()
		floats.Add(batch.Grads, grads)
		batch.Loss += loss
		batch.Samples++
		mu.Unlock()
	}, cfg)

	if firstErr != nil {
		return Batch{}, firstErr
	}
	return batch, nil
}

// sample builds and back-propagates one graph, returning its replica
// gradients as plain floats.
func sample(i int, build SampleFunc, owned map[*autodiff.Value]struct{}, nparams int) ([]float64, float64, error) {
	loss, replica, err := build(i)
	if err != nil {
		return nil, 0, err
	}
	if len(replica) != nparams {
		return nil, 0, fmt.Errorf("%w: got %d, want %d", ErrParameterMismatch, len(replica), nparams)
	}
	for j, r := range replica {
		if _, shared := owned[r]; shared {
			return nil, 0, fmt.Errorf("%w: index %d", ErrSharedParameter, j)
		}
	}

	if err := loss.Backward(); err != nil {
		return nil, 0, err
	}

	grads := make([]float64, nparams)
	for j, r := range replica {
		grads[j] = r.Grad()
	}
	return grads, loss.Data(), nil
}
