// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package approximator provides the public API for trainable
// amortized-inference estimators.
//
// Example:
//
//	approx, err := approximator.NewModelComparison(
//	    nil, // default CPU backend
//	    2,
//	    network.NewMLP(64, 32),
//	    network.NewDeepSet(64, 16),
//	)
//	history, err := approx.Fit(approximator.FitOptions{
//	    Simulators:       []simulator.Simulator{m0, m1},
//	    SummaryVariables: []string{"observables"},
//	})
package approximator

import (
	"github.com/eodole/BayesFlow/internal/approximator"
)

// ModelComparisonApproximator discriminates among candidate simulator
// models.
type ModelComparisonApproximator = approximator.ModelComparisonApproximator

// FitOptions configures a training run.
type FitOptions = approximator.FitOptions

// History holds per-epoch training metrics.
type History = approximator.History

// Dataset yields network-ready batches.
type Dataset = approximator.Dataset

// OnlineDataset streams adapted batches from a simulator.
type OnlineDataset = approximator.OnlineDataset

// Canonical variable names consumed after adaptation.
const (
	KeyClassifierConditions = approximator.KeyClassifierConditions
	KeySummaryVariables     = approximator.KeySummaryVariables
	KeyModelIndices         = approximator.KeyModelIndices
)

// Constructors.
var (
	NewModelComparison = approximator.NewModelComparison
	NewOnlineDataset   = approximator.NewOnlineDataset
	BuildAdapter       = approximator.BuildAdapter
)
