package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Elementwise is a bidirectional mapping applied independently to one named
// variable. Implementations must guarantee a forward/inverse round-trip
// except where a documented canonicalization collapses information.
type Elementwise interface {
	Forward(x *tensor.RawTensor) (*tensor.RawTensor, error)
	Inverse(x *tensor.RawTensor) (*tensor.RawTensor, error)
}

// ElementwiseTransform lifts an Elementwise operation over a list of keys.
type ElementwiseTransform struct {
	kind string
	keys []string
	op   Elementwise
}

// NewElementwiseTransform wraps op so it applies to each of the given keys.
func NewElementwiseTransform(kind string, op Elementwise, keys []string) *ElementwiseTransform {
	return &ElementwiseTransform{kind: kind, keys: keys, op: op}
}

// Name returns the transform's kind identifier.
func (t *ElementwiseTransform) Name() string { return t.kind }

// Kind implements serialization.Saveable.
func (t *ElementwiseTransform) Kind() string { return t.kind }

// Config implements serialization.Saveable.
func (t *ElementwiseTransform) Config() map[string]any {
	return map[string]any{"keys": t.keys}
}

// Forward applies the elementwise operation to each configured key.
func (t *ElementwiseTransform) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := cloneVars(data)
	for _, key := range t.keys {
		x, err := tensorVar(data, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.kind, err)
		}
		y, err := t.op.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("%s: variable %q: %w", t.kind, key, err)
		}
		out[key] = y
	}
	return out, nil
}

// Inverse applies the inverse elementwise operation to each configured key.
func (t *ElementwiseTransform) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := cloneVars(data)
	for _, key := range t.keys {
		// A key may have been dropped downstream (e.g. by Keep); skip it.
		if _, ok := data[key]; !ok {
			continue
		}
		x, err := tensorVar(data, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.kind, err)
		}
		y, err := t.op.Inverse(x)
		if err != nil {
			return nil, fmt.Errorf("%s: variable %q: %w", t.kind, key, err)
		}
		out[key] = y
	}
	return out, nil
}
