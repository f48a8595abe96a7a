// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network provides the public API for the toolkit's neural building
// blocks: lazily built dense layers, the MLP classifier backbone, and the
// permutation-invariant DeepSet summary network.
package network

import (
	"github.com/eodole/BayesFlow/internal/network"
)

// Stage identifies the phase of the training lifecycle.
type Stage = network.Stage

// Lifecycle stages.
const (
	StageTraining   Stage = network.StageTraining
	StageValidation Stage = network.StageValidation
	StageInference  Stage = network.StageInference
)

// Core contracts.
type (
	Layer      = network.Layer
	Classifier = network.Classifier
	Summary    = network.Summary
	Metric     = network.Metric
	Parameter  = network.Parameter
)

// Concrete networks and layers.
type (
	Dense   = network.Dense
	ReLU    = network.ReLU
	MLP     = network.MLP
	DeepSet = network.DeepSet
)

// Accuracy is the argmax match fraction sample metric.
type Accuracy = network.Accuracy

// Constructors.
var (
	NewParameter = network.NewParameter
	NewDense     = network.NewDense
	NewReLU      = network.NewReLU
	NewMLP       = network.NewMLP
	NewDeepSet   = network.NewDeepSet
)

// Loss helpers: mean categorical cross-entropy from logits and its manual
// gradient.
var (
	CategoricalCrossEntropyMean = network.CategoricalCrossEntropyMean
	CrossEntropyBackward        = network.CrossEntropyBackward
)
