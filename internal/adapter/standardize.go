package adapter

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// moments holds the per-feature statistics of one variable, indexed along
// the trailing axis.
type moments struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// Standardize shifts and scales floating-point variables to zero mean and
// unit standard deviation per trailing-axis feature. Statistics are estimated
// from the first batch a variable appears in and frozen afterwards, so
// training and validation batches see the same affine map and the inverse
// stays consistent.
type Standardize struct {
	exclude []string
	fitted  map[string]*moments
}

// NewStandardize creates the transform. Variables named in exclude pass
// through untouched.
func NewStandardize(exclude ...string) *Standardize {
	return &Standardize{exclude: exclude, fitted: make(map[string]*moments)}
}

// Name returns the transform name.
func (*Standardize) Name() string { return "standardize" }

// Kind implements serialization.Saveable.
func (*Standardize) Kind() string { return "standardize" }

// Config implements serialization.Saveable.
func (t *Standardize) Config() map[string]any {
	stats := make(map[string]any, len(t.fitted))
	for key, m := range t.fitted {
		stats[key] = map[string]any{"means": m.Means, "stds": m.Stds}
	}
	return map[string]any{"exclude": t.exclude, "moments": stats}
}

func (t *Standardize) excluded(key string) bool {
	for _, e := range t.exclude {
		if e == key {
			return true
		}
	}
	return false
}

// fit estimates per-feature mean and standard deviation along the trailing
// axis. Zero and undefined deviations fall back to 1 so constant features
// pass through unscaled.
func fitMoments(x *tensor.RawTensor) *moments {
	shape := x.Shape()
	features := 1
	if len(shape) > 0 {
		features = shape[len(shape)-1]
	}
	rows := x.NumElements() / features
	m := &moments{
		Means: make([]float64, features),
		Stds:  make([]float64, features),
	}
	column := make([]float64, rows)
	for j := 0; j < features; j++ {
		for i := 0; i < rows; i++ {
			column[i] = x.FloatAt(i*features + j)
		}
		mean, std := stat.MeanStdDev(column, nil)
		if !(std > 0) {
			std = 1
		}
		m.Means[j] = mean
		m.Stds[j] = std
	}
	return m
}

func (t *Standardize) apply(x *tensor.RawTensor, m *moments, invert bool) (*tensor.RawTensor, error) {
	shape := x.Shape()
	features := 1
	if len(shape) > 0 {
		features = shape[len(shape)-1]
	}
	if features != len(m.Means) {
		return nil, fmt.Errorf("standardize: trailing axis has %d features, statistics were fit on %d: %w",
			features, len(m.Means), tensor.ErrInvalidArgument)
	}
	out := x.Clone()
	n := out.NumElements()
	for i := 0; i < n; i++ {
		j := i % features
		v := out.FloatAt(i)
		if invert {
			v = v*m.Stds[j] + m.Means[j]
		} else {
			v = (v - m.Means[j]) / m.Stds[j]
		}
		out.SetFloatAt(i, v)
	}
	return out, nil
}

// Forward standardizes every floating-point tensor variable that is not
// excluded, fitting statistics the first time each variable is seen.
func (t *Standardize) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := cloneVars(data)
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		x, ok := data[key].(*tensor.RawTensor)
		if !ok || t.excluded(key) || !x.DType().IsFloat() {
			continue
		}
		m, seen := t.fitted[key]
		if !seen {
			m = fitMoments(x)
			t.fitted[key] = m
		}
		y, err := t.apply(x, m, false)
		if err != nil {
			return nil, err
		}
		out[key] = y
	}
	return out, nil
}

// Inverse maps standardized variables back to their original scale. Variables
// without fitted statistics pass through unchanged.
func (t *Standardize) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	out := cloneVars(data)
	for key, m := range t.fitted {
		x, ok := data[key].(*tensor.RawTensor)
		if !ok {
			continue
		}
		y, err := t.apply(x, m, true)
		if err != nil {
			return nil, err
		}
		out[key] = y
	}
	return out, nil
}

func init() {
	serialization.Register("standardize", func(config map[string]any) (any, error) {
		t := NewStandardize(serialization.Strings(config["exclude"])...)
		if stats, ok := config["moments"].(map[string]any); ok {
			for key, raw := range stats {
				entry, ok := raw.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("standardize: malformed statistics for %q", key)
				}
				t.fitted[key] = &moments{
					Means: serialization.Floats(entry["means"]),
					Stds:  serialization.Floats(entry["stds"]),
				}
			}
		}
		return t, nil
	})
}
