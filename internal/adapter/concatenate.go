package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Concatenate joins multiple variables into a single variable along an axis.
// The size of each input along the concatenation axis is recorded on the
// first forward pass so the inverse can split the combined tensor back into
// its parts.
type Concatenate struct {
	keys   []string
	into   string
	axis   int
	splits []int
}

// NewConcatenate creates a concatenation transform that joins keys into a
// single variable named into along the given axis. Axis -1 joins along the
// trailing feature axis, which is the common layout for conditions.
func NewConcatenate(keys []string, into string, axis int) *Concatenate {
	return &Concatenate{keys: keys, into: into, axis: axis}
}

// Name returns the transform name.
func (t *Concatenate) Name() string {
	return fmt.Sprintf("concatenate(%q)", t.into)
}

// Kind implements serialization.Saveable.
func (*Concatenate) Kind() string { return "concatenate" }

// Config implements serialization.Saveable.
func (t *Concatenate) Config() map[string]any {
	return map[string]any{
		"keys":   t.keys,
		"into":   t.into,
		"axis":   t.axis,
		"splits": t.splits,
	}
}

// Forward concatenates the listed variables into one tensor. All listed keys
// must be present and hold tensors.
func (t *Concatenate) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	parts := make([]*tensor.RawTensor, 0, len(t.keys))
	for _, key := range t.keys {
		x, err := tensorVar(data, key)
		if err != nil {
			return nil, fmt.Errorf("concatenate: %w", err)
		}
		parts = append(parts, x)
	}
	if len(t.splits) == 0 {
		t.splits = make([]int, len(parts))
		for i, p := range parts {
			axis, err := p.Shape().NormalizeAxis(t.axis)
			if err != nil {
				return nil, fmt.Errorf("concatenate: %w", err)
			}
			t.splits[i] = p.Shape()[axis]
		}
	}
	out := cloneVars(data)
	for _, key := range t.keys {
		delete(out, key)
	}
	out[t.into] = b.Cat(parts, t.axis)
	return out, nil
}

// Inverse splits the combined variable back into its parts. The split sizes
// must have been recorded by a prior forward pass or restored from a config.
func (t *Concatenate) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	x, err := tensorVar(data, t.into)
	if err != nil {
		return nil, fmt.Errorf("concatenate: %w", err)
	}
	if len(t.splits) != len(t.keys) {
		return nil, fmt.Errorf("concatenate: inverse called before any forward pass: %w", tensor.ErrInvalidArgument)
	}
	axis, err := x.Shape().NormalizeAxis(t.axis)
	if err != nil {
		return nil, fmt.Errorf("concatenate: %w", err)
	}
	total := 0
	for _, n := range t.splits {
		total += n
	}
	if x.Shape()[axis] != total {
		return nil, fmt.Errorf("concatenate: variable %q has size %d along axis %d, want %d: %w",
			t.into, x.Shape()[axis], t.axis, total, tensor.ErrInvalidArgument)
	}
	out := cloneVars(data)
	delete(out, t.into)
	start := 0
	for i, key := range t.keys {
		out[key] = b.Slice(x, axis, start, t.splits[i])
		start += t.splits[i]
	}
	return out, nil
}

func init() {
	serialization.Register("concatenate", func(config map[string]any) (any, error) {
		into, _ := config["into"].(string)
		t := NewConcatenate(serialization.Strings(config["keys"]), into, serialization.Int(config["axis"]))
		t.splits = serialization.Ints(config["splits"])
		return t, nil
	})
}
