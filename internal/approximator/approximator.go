// Package approximator orchestrates networks, adapters, and simulators into
// trainable amortized-inference estimators.
//
// The package separates data resolution from training: FitOptions names at
// most one data source (a prepared dataset, a single simulator, or a list of
// candidate simulators) and the fit dispatch turns it into a Dataset, wiring
// up the default adapter when requested.
package approximator

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/adapter"
	"github.com/eodole/BayesFlow/internal/simulator"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// FitOptions configures a training run.
//
// Exactly one of Dataset, Simulator, or Simulators must drive training.
// A nil Adapter means "auto": the approximator builds its default pipeline
// from the variable name lists.
type FitOptions struct {
	// Data sources, mutually exclusive.
	Dataset    Dataset
	Simulator  simulator.Simulator
	Simulators []simulator.Simulator

	// Adapter overrides the auto-built pipeline.
	Adapter *adapter.Adapter

	// Variable names for the auto-built adapter.
	ClassifierConditions []string
	SummaryVariables     []string
	ModelIndexName       string // defaults to "model_indices"

	// Loop controls.
	Epochs        int // defaults to 1
	StepsPerEpoch int // defaults to 100
	BatchSize     int // defaults to 32

	// LearningRate for the Adam optimizer. Defaults to 1e-3.
	LearningRate float32
}

func (o *FitOptions) applyDefaults() {
	if o.ModelIndexName == "" {
		o.ModelIndexName = simulator.ModelIndicesKey
	}
	if o.Epochs == 0 {
		o.Epochs = 1
	}
	if o.StepsPerEpoch == 0 {
		o.StepsPerEpoch = 100
	}
	if o.BatchSize == 0 {
		o.BatchSize = 32
	}
	if o.LearningRate == 0 {
		o.LearningRate = 1e-3
	}
}

// validateSources enforces the fit dispatch rules: a prepared dataset cannot
// be combined with simulators, and at least one source must be present.
func (o *FitOptions) validateSources() error {
	if o.Dataset != nil && (o.Simulator != nil || len(o.Simulators) > 0) {
		return fmt.Errorf("fit: dataset and simulator arguments conflict, pass exactly one: %w",
			tensor.ErrInvalidArgument)
	}
	if o.Simulator != nil && len(o.Simulators) > 0 {
		return fmt.Errorf("fit: simulator and simulators conflict, pass exactly one: %w",
			tensor.ErrInvalidArgument)
	}
	if o.Dataset == nil && o.Simulator == nil && len(o.Simulators) == 0 {
		return fmt.Errorf("fit: one of dataset, simulator, or simulators is required: %w",
			tensor.ErrInvalidArgument)
	}
	return nil
}

// History records per-epoch training metrics, one map per epoch, averaged
// over the epoch's steps.
type History []map[string]float64
