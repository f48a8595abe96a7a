// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package adapter provides the public API for the invertible preprocessing
// pipeline that maps raw simulated variables to network-ready tensors.
//
// Adapters are built declaratively and are immutable: every builder call
// returns a new pipeline with one more transform appended.
//
// Example:
//
//	pipeline := adapter.New().
//	    ToArray().
//	    ConvertDType(tensor.Float64, tensor.Float32).
//	    AsSet("observables").
//	    Rename("sim_idx", "model_indices").
//	    Standardize("model_indices")
//
//	tensors, err := pipeline.Forward(backend, rawVariables)
package adapter

import (
	"github.com/eodole/BayesFlow/internal/adapter"
)

// Adapter is an ordered, invertible chain of transforms.
type Adapter = adapter.Adapter

// Transform is one named stage of a pipeline.
type Transform = adapter.Transform

// Elementwise is a bidirectional mapping over a single tensor, applied
// independently per variable.
type Elementwise = adapter.Elementwise

// Concrete transforms.
type (
	AsSet                = adapter.AsSet
	Concatenate          = adapter.Concatenate
	ConvertDType         = adapter.ConvertDType
	ElementwiseTransform = adapter.ElementwiseTransform
	Keep                 = adapter.Keep
	Rename               = adapter.Rename
	Standardize          = adapter.Standardize
	ToArray              = adapter.ToArray
)

// New creates an empty adapter.
func New() *Adapter {
	return adapter.New()
}

// Transform constructors, for assembling pipelines via Add.
var (
	NewAsSet                = adapter.NewAsSet
	NewConcatenate          = adapter.NewConcatenate
	NewConvertDType         = adapter.NewConvertDType
	NewElementwiseTransform = adapter.NewElementwiseTransform
	NewKeep                 = adapter.NewKeep
	NewRename               = adapter.NewRename
	NewStandardize          = adapter.NewStandardize
	NewToArray              = adapter.NewToArray
)
