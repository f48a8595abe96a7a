package cpu

import (
	"fmt"
	"math"
	"sort"

	"github.com/eodole/BayesFlow/internal/logging"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Searchsorted implements batched order-preserving insertion search.
//
// sortedSequence rows (the last axis) must already be sorted ascending.
// A 1-D sortedSequence is searched by every row of values; otherwise the
// leading axes of both tensors must match and rows are paired one-to-one.
//
// The result dtype follows the torch heuristic: int32 indices when the row
// length fits, int64 otherwise. Any width large enough to address the row is
// correct; the narrow type just keeps large search outputs compact.
func (b *Backend) Searchsorted(sortedSequence, values *tensor.RawTensor, side tensor.SearchSide) (*tensor.RawTensor, error) {
	logging.WarnOnce("searchsorted runs a per-row scalar search on the %q backend", b.Name())

	if side != tensor.SearchLeft && side != tensor.SearchRight {
		return nil, fmt.Errorf("%w: invalid side %q, must be \"left\" or \"right\"", tensor.ErrInvalidArgument, side)
	}

	seqShape := sortedSequence.Shape()
	valShape := values.Shape()
	if len(seqShape) == 0 || len(valShape) == 0 {
		return nil, fmt.Errorf("%w: searchsorted requires at least 1-D inputs", tensor.ErrInvalidArgument)
	}

	rowLen := seqShape[len(seqShape)-1]
	valLen := valShape[len(valShape)-1]

	batch := 1
	if len(seqShape) > 1 {
		if !seqShape[:len(seqShape)-1].Equal(valShape[:len(valShape)-1]) {
			return nil, fmt.Errorf("%w: batch shapes %v and %v do not match",
				tensor.ErrInvalidArgument, seqShape[:len(seqShape)-1], valShape[:len(valShape)-1])
		}
		batch = seqShape[:len(seqShape)-1].NumElements()
	} else {
		batch = valShape[:len(valShape)-1].NumElements()
	}

	dtype := tensor.Int32
	if rowLen > math.MaxInt32 {
		dtype = tensor.Int64
	}
	result, err := tensor.NewRaw(valShape, dtype)
	if err != nil {
		return nil, err
	}

	for row := 0; row < batch; row++ {
		seqOffset := 0
		if len(seqShape) > 1 {
			seqOffset = row * rowLen
		}
		for j := 0; j < valLen; j++ {
			v := values.FloatAt(row*valLen + j)
			var idx int
			if side == tensor.SearchLeft {
				idx = sort.Search(rowLen, func(k int) bool {
					return sortedSequence.FloatAt(seqOffset+k) >= v
				})
			} else {
				idx = sort.Search(rowLen, func(k int) bool {
					return sortedSequence.FloatAt(seqOffset+k) > v
				})
			}
			result.SetFloatAt(row*valLen+j, float64(idx))
		}
	}

	return result, nil
}
