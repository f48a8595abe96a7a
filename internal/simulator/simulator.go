// Package simulator defines the data-generating side of the toolkit.
//
// A Simulator produces named batches of raw variables; the adapter pipeline
// turns those into network-ready tensors. ModelComparisonSimulator composes
// several candidate simulators into a single stream labeled with one-hot
// model indices, which is the training signal for model comparison.
package simulator

import (
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Simulator draws a batch of named variables.
type Simulator interface {
	// Sample draws batchSize joint samples. Every returned tensor has
	// batchSize as its leading dimension.
	Sample(batchSize int) (map[string]*tensor.RawTensor, error)
}

// Func adapts a plain function to the Simulator interface.
type Func func(batchSize int) (map[string]*tensor.RawTensor, error)

// Sample calls the wrapped function.
func (f Func) Sample(batchSize int) (map[string]*tensor.RawTensor, error) {
	return f(batchSize)
}
