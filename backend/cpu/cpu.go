// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend, the reference implementation
// of the tensor.Backend strategy.
//
// Every operation allocates a fresh result tensor and never mutates its
// inputs, so tensors can be shared freely across adapter stages.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	y := backend.Add(x, x)
package cpu

import (
	internalcpu "github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.Backend

// Compile-time checks.
var (
	_ tensor.Backend             = (*Backend)(nil)
	_ tensor.SearchsortedBackend = (*Backend)(nil)
)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
