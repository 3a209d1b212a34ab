// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks on scalar autodiff
// values.
//
// # Overview
//
// This package contains:
//   - Neuron: act(Σ wᵢxᵢ + b) with N(0, 1) initialization
//   - Layer: a row of neurons reading the same input
//   - Sequential: chains modules
//   - Activations: Linear, ReLU, Tanh, Sigmoid
//   - Loss functions: BinaryCrossEntropy, MeanSquaredError, Mean
//   - Utilities: Module interface, ZeroGrad, NumParameters, Inputs
//
// # Basic Usage
//
//	import "github.com/born-ml/scalargrad/nn"
//
//	func main() {
//	    rng := nn.NewRand(42)
//	    model := nn.NewSequential(
//	        nn.NewLayer(2, 4, nn.Tanh, rng),
//	        nn.NewLayer(4, 1, nn.Sigmoid, rng),
//	    )
//
//	    out, err := model.Forward(nn.Inputs(0, 1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    loss, err := nn.BinaryCrossEntropy(1, out[0], nn.DefaultEpsilon)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := loss.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for _, p := range model.Parameters() {
//	        fmt.Println(p.Data(), p.Grad())
//	    }
//	    nn.ZeroGrad(model) // before the next step
//	}
//
// # Training
//
// The package computes gradients only. Updating parameters is left to the
// caller, who reads Grad() on each parameter and builds new leaves.
package nn
