// Package adapter implements the composable, invertible transform pipeline
// converting raw simulated variables into network-ready tensors and back.
package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Transform is one named stage of an adapter pipeline: a bidirectional
// mapping over a full variable dictionary.
//
// Forward and Inverse must round-trip except where a documented
// canonicalization collapses information (see AsSet). Transforms never
// mutate the input map or its tensors; they return a new map.
type Transform interface {
	serialization.Saveable

	// Name identifies the transform in error messages.
	Name() string

	// Forward applies the transform to the variable dictionary.
	Forward(b tensor.Backend, data map[string]any) (map[string]any, error)

	// Inverse undoes the transform.
	Inverse(b tensor.Backend, data map[string]any) (map[string]any, error)
}

// cloneVars copies a variable dictionary. Values are shared; transforms
// replace entries rather than mutating tensors.
func cloneVars(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// tensorVar fetches a variable and asserts it has been converted to a
// tensor (i.e. a ToArray stage ran earlier in the pipeline).
func tensorVar(data map[string]any, key string) (*tensor.RawTensor, error) {
	v, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("%w: variable %q not found", tensor.ErrInvalidArgument, key)
	}
	raw, ok := v.(*tensor.RawTensor)
	if !ok {
		return nil, fmt.Errorf("%w: variable %q is %T, not a tensor", tensor.ErrInvalidArgument, key, v)
	}
	return raw, nil
}
