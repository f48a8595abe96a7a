package approximator

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/adapter"
	"github.com/eodole/BayesFlow/internal/simulator"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Dataset yields network-ready batches for training.
type Dataset interface {
	// NextBatch returns one adapted batch of variables.
	NextBatch() (map[string]*tensor.RawTensor, error)
}

// OnlineDataset draws a fresh batch from a simulator on every call and runs
// it through the adapter pipeline. The adapter's learned statistics are fit
// on the first batch and frozen afterwards.
type OnlineDataset struct {
	backend   tensor.Backend
	sim       simulator.Simulator
	adapter   *adapter.Adapter
	batchSize int
}

// NewOnlineDataset creates a dataset streaming adapted simulator batches.
func NewOnlineDataset(b tensor.Backend, sim simulator.Simulator, a *adapter.Adapter, batchSize int) (*OnlineDataset, error) {
	if sim == nil {
		return nil, fmt.Errorf("online dataset: simulator required: %w", tensor.ErrInvalidArgument)
	}
	if a == nil {
		return nil, fmt.Errorf("online dataset: adapter required: %w", tensor.ErrInvalidArgument)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("online dataset: batch size must be positive, got %d: %w", batchSize, tensor.ErrInvalidArgument)
	}
	return &OnlineDataset{backend: b, sim: sim, adapter: a, batchSize: batchSize}, nil
}

// NextBatch simulates and adapts one batch.
func (d *OnlineDataset) NextBatch() (map[string]*tensor.RawTensor, error) {
	raw, err := d.sim.Sample(d.batchSize)
	if err != nil {
		return nil, fmt.Errorf("online dataset: %w", err)
	}
	vars := make(map[string]any, len(raw))
	for key, value := range raw {
		vars[key] = value
	}
	return d.adapter.Forward(d.backend, vars)
}
