// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for gradient-based optimizers.
package optim

import (
	"github.com/eodole/BayesFlow/internal/optim"
)

// Optimizer updates network parameters from their accumulated gradients.
type Optimizer = optim.Optimizer

// Optimizers and their configurations.
type (
	SGD        = optim.SGD
	SGDConfig  = optim.SGDConfig
	Adam       = optim.Adam
	AdamConfig = optim.AdamConfig
)

// Constructors.
var (
	NewSGD  = optim.NewSGD
	NewAdam = optim.NewAdam
)
