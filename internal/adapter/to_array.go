package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// ToArray converts every variable to its tensor representation. Raw
// simulator outputs may arrive as Go slices (possibly nested); downstream
// transforms require tensors.
type ToArray struct{}

// NewToArray creates the conversion transform.
func NewToArray() *ToArray { return &ToArray{} }

// Name returns the transform name.
func (*ToArray) Name() string { return "to_array" }

// Kind implements serialization.Saveable.
func (*ToArray) Kind() string { return "to_array" }

// Config implements serialization.Saveable.
func (*ToArray) Config() map[string]any { return map[string]any{} }

// Forward converts every variable via tensor.FromAny.
func (*ToArray) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(data))
	for key, value := range data {
		raw, err := tensor.FromAny(value)
		if err != nil {
			return nil, fmt.Errorf("to_array: variable %q: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}

// Inverse is the identity: tensors are already the canonical
// representation on the way back.
func (*ToArray) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return cloneVars(data), nil
}

func init() {
	serialization.Register("to_array", func(map[string]any) (any, error) {
		return NewToArray(), nil
	})
}
