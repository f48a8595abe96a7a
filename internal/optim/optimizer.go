// Package optim implements gradient-based optimizers for training the
// toolkit's networks.
//
// Optimizers read accumulated gradients directly from network parameters:
//
//	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 1e-3})
//
//	for step := range steps {
//	    loss := trainStep(model, batch) // forward + backward
//	    opt.Step()
//	    opt.ZeroGrad()
//	}
package optim

import (
	"github.com/eodole/BayesFlow/internal/network"
)

// Optimizer updates parameters from their accumulated gradients.
type Optimizer interface {
	// Step applies one update to every parameter with a gradient.
	// Parameters without a gradient are skipped.
	Step()

	// ZeroGrad clears the gradients of all managed parameters.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

func zeroGrads(params []*network.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
