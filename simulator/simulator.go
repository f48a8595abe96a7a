// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package simulator provides the public API for data-generating processes.
//
// Example:
//
//	prior := simulator.Func(func(batchSize int) (map[string]*tensor.RawTensor, error) {
//	    // draw parameters, run the forward model
//	})
//	mixed, err := simulator.NewModelComparison([]simulator.Simulator{m0, m1})
package simulator

import (
	"github.com/eodole/BayesFlow/internal/simulator"
)

// Simulator draws batches of named variables.
type Simulator = simulator.Simulator

// Func adapts a plain function to the Simulator interface.
type Func = simulator.Func

// ModelComparisonSimulator mixes candidate simulators and labels samples
// with one-hot model indices.
type ModelComparisonSimulator = simulator.ModelComparisonSimulator

// Option configures a ModelComparisonSimulator.
type Option = simulator.Option

// ModelIndicesKey is the variable name of the one-hot model labels.
const ModelIndicesKey = simulator.ModelIndicesKey

// Constructors and options.
var (
	NewModelComparison = simulator.NewModelComparison
	WithWeights        = simulator.WithWeights
	WithSeed           = simulator.WithSeed
)
