package utils

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Searchsorted finds the indices where values should be inserted into the
// sorted rows of sortedSequence to preserve order.
//
// side "left" returns the first valid insertion index, "right" the last.
// Dispatches to the backend's batched search capability; backends without
// one fail with ErrNotImplemented rather than silently degrading to
// different semantics.
func Searchsorted(b tensor.Backend, sortedSequence, values *tensor.RawTensor, side tensor.SearchSide) (*tensor.RawTensor, error) {
	sb, ok := b.(tensor.SearchsortedBackend)
	if !ok {
		return nil, fmt.Errorf("%w: searchsorted is not supported by backend %q", tensor.ErrNotImplemented, b.Name())
	}

	return sb.Searchsorted(sortedSequence, values, side)
}
