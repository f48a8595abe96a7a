package adapter

import (
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Keep restricts the variable dictionary to the listed keys. Keys that are
// absent are skipped, which allows the same pipeline to serve optional
// conditioning layouts.
//
// Dropping variables is lossy; the inverse is the identity.
type Keep struct {
	keys []string
}

// NewKeep creates the restriction transform.
func NewKeep(keys []string) *Keep {
	return &Keep{keys: keys}
}

// Name returns the transform name.
func (*Keep) Name() string { return "keep" }

// Kind implements serialization.Saveable.
func (*Keep) Kind() string { return "keep" }

// Config implements serialization.Saveable.
func (t *Keep) Config() map[string]any {
	return map[string]any{"keys": t.keys}
}

// Forward drops every variable not listed.
func (t *Keep) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(t.keys))
	for _, key := range t.keys {
		if v, ok := data[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

// Inverse is the identity; dropped variables cannot be restored.
func (t *Keep) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return cloneVars(data), nil
}

func init() {
	serialization.Register("keep", func(config map[string]any) (any, error) {
		return NewKeep(serialization.Strings(config["keys"])), nil
	})
}
