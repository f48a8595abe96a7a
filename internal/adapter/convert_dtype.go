package adapter

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// ConvertDType casts every variable of one dtype to another. The inverse
// casts back, so round-trips are exact up to the narrower type's precision.
type ConvertDType struct {
	from tensor.DataType
	to   tensor.DataType
}

// NewConvertDType creates the dtype conversion transform.
func NewConvertDType(from, to tensor.DataType) *ConvertDType {
	return &ConvertDType{from: from, to: to}
}

// Name returns the transform name.
func (*ConvertDType) Name() string { return "convert_dtype" }

// Kind implements serialization.Saveable.
func (*ConvertDType) Kind() string { return "convert_dtype" }

// Config implements serialization.Saveable.
func (t *ConvertDType) Config() map[string]any {
	return map[string]any{"from": t.from.String(), "to": t.to.String()}
}

// Forward casts variables whose dtype matches from.
func (t *ConvertDType) Forward(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return t.cast(b, data, t.from, t.to)
}

// Inverse casts variables whose dtype matches to back to from.
func (t *ConvertDType) Inverse(b tensor.Backend, data map[string]any) (map[string]any, error) {
	return t.cast(b, data, t.to, t.from)
}

func (t *ConvertDType) cast(b tensor.Backend, data map[string]any, from, to tensor.DataType) (map[string]any, error) {
	out := cloneVars(data)
	for key := range data {
		raw, err := tensorVar(data, key)
		if err != nil {
			return nil, fmt.Errorf("convert_dtype: %w", err)
		}
		if raw.DType() == from {
			out[key] = b.Cast(raw, to)
		}
	}
	return out, nil
}

func init() {
	serialization.Register("convert_dtype", func(config map[string]any) (any, error) {
		fromName, _ := config["from"].(string)
		toName, _ := config["to"].(string)
		from, ok := tensor.ParseDataType(fromName)
		if !ok {
			return nil, fmt.Errorf("convert_dtype: unknown dtype %q", fromName)
		}
		to, ok := tensor.ParseDataType(toName)
		if !ok {
			return nil, fmt.Errorf("convert_dtype: unknown dtype %q", toName)
		}
		return NewConvertDType(from, to), nil
	})
}
