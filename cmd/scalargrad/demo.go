package main

import (
	"context"
	"fmt"
	"io"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/config"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/born-ml/scalargrad/internal/parallel"
)

// xorData is the classic non-linearly separable toy set.
var xorData = []struct {
	x []float64
	y float64
}{
	{[]float64{0, 0}, 0},
	{[]float64{0, 1}, 1},
	{[]float64{1, 0}, 1},
	{[]float64{1, 1}, 0},
}

// runDemo computes mean BCE gradients of a 2-4-1 MLP over XOR.
// Weights are reported, never updated.
func runDemo(ctx context.Context, cfg *config.Config, out io.Writer) error {
	rng := nn.NewRand(cfg.Seed)
	model := nn.NewSequential(
		nn.NewLayer(2, 4, nn.Tanh, rng),
		nn.NewLayer(4, 1, nn.Sigmoid, rng),
	)
	params := model.Parameters()

	build := func(i int) (*autodiff.Value, []*autodiff.Value, error) {
		replica := model.Clone()
		pred, err := replica.Forward(nn.Inputs(xorData[i].x...))
		if err != nil {
			return nil, nil, err
		}
		loss, err := nn.BinaryCrossEntropy(xorData[i].y, pred[0], cfg.LogEps)
		return loss, replica.Parameters(), err
	}

	pcfg := parallel.DefaultConfig()
	pcfg.NumWorkers = cfg.Workers
	pcfg.MinChunkSize = 1

	batch, err := parallel.Gradients(ctx, params, len(xorData), build, pcfg)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	fmt.Fprintf(out, "seed=%d params=%d samples=%d\n", cfg.Seed, len(params), batch.Samples)
	fmt.Fprintf(out, "mean loss: %.6f\n", batch.MeanLoss())
	for i, g := range batch.MeanGrads() {
		fmt.Fprintf(out, "  p[%02d] data=%+.6f grad=%+.6f\n", i, params[i].Data(), g)
	}
	return nil
}
