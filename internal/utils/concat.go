package utils

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Concatenate concatenates tensors along axis, silently dropping nil
// entries. Useful for optional conditioning tensors. At least one non-nil
// tensor must remain.
func Concatenate(b tensor.Backend, axis int, tensors ...*tensor.RawTensor) (*tensor.RawTensor, error) {
	present := make([]*tensor.RawTensor, 0, len(tensors))
	for _, t := range tensors {
		if t != nil {
			present = append(present, t)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: concatenate requires at least one non-nil tensor", tensor.ErrInvalidArgument)
	}
	return b.Cat(present, axis), nil
}

// TreeConcatenate concatenates corresponding leaf tensors across a sequence
// of trees sharing an identical layout, preserving that layout.
//
// Leaf shapes must be compatible for concatenation except along axis.
func TreeConcatenate(b tensor.Backend, structures []*Tree, axis int) (*Tree, error) {
	return zipMap(structures, func(leaves []*tensor.RawTensor) (*tensor.RawTensor, error) {
		return b.Cat(leaves, axis), nil
	})
}

// TreeStack is like TreeConcatenate, except corresponding leaves are
// stacked along a new axis instead of concatenated.
func TreeStack(b tensor.Backend, structures []*Tree, axis int) (*Tree, error) {
	return zipMap(structures, func(leaves []*tensor.RawTensor) (*tensor.RawTensor, error) {
		return b.Stack(leaves, axis), nil
	})
}

// ConcatenateMaps concatenates the values of variable mappings key-by-key.
// All mappings must have identical keys.
func ConcatenateMaps(b tensor.Backend, maps []map[string]*tensor.RawTensor, axis int) (map[string]*tensor.RawTensor, error) {
	trees := make([]*Tree, len(maps))
	for i, m := range maps {
		t, err := NewTree(m)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}

	result, err := TreeConcatenate(b, trees, axis)
	if err != nil {
		return nil, err
	}
	out, _ := result.AsMap()
	return out, nil
}
