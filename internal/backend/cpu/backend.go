// Package cpu implements the reference pure-Go compute backend.
package cpu

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Backend implements tensor operations on the CPU.
//
// It is the reference implementation of the tensor.Backend strategy: every
// operation allocates a fresh result tensor, inputs are never mutated.
type Backend struct{}

// Interface checks.
var (
	_ tensor.Backend             = (*Backend)(nil)
	_ tensor.SearchsortedBackend = (*Backend)(nil)
)

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "cpu"
}

// Zeros creates a zero-filled tensor.
func (b *Backend) Zeros(shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Full creates a tensor filled with value.
func (b *Backend) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	return tensor.Full(shape, dtype, value)
}

// Reshape returns a view of x under a new shape.
// The element count must match.
func (b *Backend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, err := x.WithShape(shape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return out
}
