package adapter

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Adapter is an invertible preprocessing pipeline.
type Adapter struct {
	transforms []Transform
}

// New creates an empty adapter.
func New() *Adapter {
	return &Adapter{}
}

// append returns a copy of the adapter with t appended.
func (a *Adapter) append(t Transform) *Adapter {
	transforms := make([]Transform, len(a.transforms), len(a.transforms)+1)
	copy(transforms, a.transforms)
	return &Adapter{transforms: append(transforms, t)}
}

// Add appends an arbitrary transform.
func (a *Adapter) Add(t Transform) *Adapter {
	return a.append(t)
}

// ToArray appends a transform that converts every variable into a tensor.
func (a *Adapter) ToArray() *Adapter {
	return a.append(NewToArray())
}

// ConvertDType appends a dtype conversion for all variables of dtype from.
func (a *Adapter) ConvertDType(from, to tensor.DataType) *Adapter {
	return a.append(NewConvertDType(from, to))
}

// AsSet marks the listed variables as sets, reshaping them to at least rank
// three so set-invariant networks receive a (batch, set, features) layout.
func (a *Adapter) AsSet(keys ...string) *Adapter {
	return a.append(NewAsSet(keys))
}

// Concatenate appends a transform joining keys into a single variable along
// the trailing axis.
func (a *Adapter) Concatenate(keys []string, into string) *Adapter {
	return a.append(NewConcatenate(keys, into, -1))
}

// ConcatenateAxis is Concatenate with an explicit axis.
func (a *Adapter) ConcatenateAxis(keys []string, into string, axis int) *Adapter {
	return a.append(NewConcatenate(keys, into, axis))
}

// Rename appends a key rename.
func (a *Adapter) Rename(from, to string) *Adapter {
	return a.append(NewRename(from, to))
}

// Keep appends a restriction to the listed keys.
func (a *Adapter) Keep(keys ...string) *Adapter {
	return a.append(NewKeep(keys))
}

// Standardize appends per-feature standardization of all floating-point
// variables except those listed.
func (a *Adapter) Standardize(exclude ...string) *Adapter {
	return a.append(NewStandardize(exclude...))
}

// Transforms returns the pipeline in application order.
func (a *Adapter) Transforms() []Transform {
	out := make([]Transform, len(a.transforms))
	copy(out, a.transforms)
	return out
}

// Len returns the number of transforms in the pipeline.
func (a *Adapter) Len() int { return len(a.transforms) }

// Forward applies every transform in order and returns the resulting
// variables. All surviving variables must be tensors by the end of the
// pipeline; include ToArray early in the chain when feeding raw values.
func (a *Adapter) Forward(b tensor.Backend, data map[string]any) (map[string]*tensor.RawTensor, error) {
	vars := cloneVars(data)
	for _, t := range a.transforms {
		next, err := t.Forward(b, vars)
		if err != nil {
			return nil, fmt.Errorf("adapter: transform %s: %w", t.Name(), err)
		}
		vars = next
	}
	out := make(map[string]*tensor.RawTensor, len(vars))
	for key, value := range vars {
		x, ok := value.(*tensor.RawTensor)
		if !ok {
			return nil, fmt.Errorf("adapter: variable %q is %T after the pipeline, not a tensor: %w",
				key, value, tensor.ErrInvalidArgument)
		}
		out[key] = x
	}
	return out, nil
}

// Inverse applies each transform's inverse in reverse order, mapping
// processed variables back toward the raw layout.
func (a *Adapter) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	vars := cloneVars(data)
	for i := len(a.transforms) - 1; i >= 0; i-- {
		t := a.transforms[i]
		next, err := t.Inverse(b, vars)
		if err != nil {
			return nil, fmt.Errorf("adapter: transform %s: %w", t.Name(), err)
		}
		vars = next
	}
	return vars, nil
}

// InverseTensors is Inverse for an all-tensor input map.
func (a *Adapter) InverseTensors(b tensor.Backend, data map[string]*tensor.RawTensor) (map[string]any, error) {
	vars := make(map[string]any, len(data))
	for key, value := range data {
		vars[key] = value
	}
	return a.Inverse(b, vars)
}

// Kind implements serialization.Saveable.
func (*Adapter) Kind() string { return "adapter" }

// Config implements serialization.Saveable.
func (a *Adapter) Config() map[string]any {
	transforms := make([]any, len(a.transforms))
	for i, t := range a.transforms {
		transforms[i] = serialization.Envelope(t)
	}
	return map[string]any{"transforms": transforms}
}

func init() {
	serialization.Register("adapter", func(config map[string]any) (any, error) {
		raw, _ := config["transforms"].([]any)
		a := New()
		var errs error
		for i, item := range raw {
			obj, err := serialization.FromEmbedded(item)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("transform %d: %w", i, err))
				continue
			}
			t, ok := obj.(Transform)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("transform %d: kind decodes to %T, not a transform", i, obj))
				continue
			}
			a.transforms = append(a.transforms, t)
		}
		if errs != nil {
			return nil, fmt.Errorf("adapter: %w", errs)
		}
		return a, nil
	})
}
