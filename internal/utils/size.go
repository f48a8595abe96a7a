package utils

import (
	"github.com/eodole/BayesFlow/internal/tensor"
)

// SizeOf computes the total memory footprint, in bytes, of a possibly
// nested structure of tensors (anything NewTree accepts).
//
// Tensors appearing multiple times in the structure are de-duplicated by
// identity, so shared tensors are counted once.
func SizeOf(x any) (int, error) {
	t, err := NewTree(x)
	if err != nil {
		return 0, err
	}

	seen := make(map[*tensor.RawTensor]struct{})
	total := 0
	for _, leaf := range t.Flatten() {
		if leaf == nil {
			continue
		}
		if _, ok := seen[leaf]; ok {
			continue
		}
		seen[leaf] = struct{}{}
		total += leaf.ByteSize()
	}
	return total, nil
}
