package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Rename relabels a single variable.
type Rename struct {
	from string
	to   string
}

// NewRename creates the rename transform.
func NewRename(from, to string) *Rename {
	return &Rename{from: from, to: to}
}

// Name returns the transform name.
func (*Rename) Name() string { return "rename" }

// Kind implements serialization.Saveable.
func (*Rename) Kind() string { return "rename" }

// Config implements serialization.Saveable.
func (t *Rename) Config() map[string]any {
	return map[string]any{"from": t.from, "to": t.to}
}

// Forward renames from to to.
func (t *Rename) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return t.apply(data, t.from, t.to)
}

// Inverse renames to back to from.
func (t *Rename) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return t.apply(data, t.to, t.from)
}

func (t *Rename) apply(data map[string]any, from, to string) (map[string]any, error) {
	v, ok := data[from]
	if !ok {
		return nil, fmt.Errorf("rename: %w: variable %q not found", tensor.ErrInvalidArgument, from)
	}
	out := cloneVars(data)
	delete(out, from)
	out[to] = v
	return out, nil
}

func init() {
	serialization.Register("rename", func(config map[string]any) (any, error) {
		from, _ := config["from"].(string)
		to, _ := config["to"].(string)
		return NewRename(from, to), nil
	})
}
