package tensor

import "fmt"

// Zeros creates a zero-filled tensor with the given shape and dtype.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return raw
}

// Full creates a tensor with the given shape and dtype filled with value.
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	raw := Zeros(shape, dtype)
	for i := 0; i < raw.NumElements(); i++ {
		raw.SetFloatAt(i, value)
	}
	return raw
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar(dtype DataType, value float64) *RawTensor {
	return Full(Shape{}, dtype, value)
}

// FromFloat32 creates a Float32 tensor from a Go slice. The data is copied.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	copy(raw.AsFloat32(), data)
	return raw, nil
}

// FromFloat64 creates a Float64 tensor from a Go slice. The data is copied.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, Float64)
	if err != nil {
		return nil, err
	}
	copy(raw.AsFloat64(), data)
	return raw, nil
}

// FromInt64 creates an Int64 tensor from a Go slice. The data is copied.
func FromInt64(data []int64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, Int64)
	if err != nil {
		return nil, err
	}
	copy(raw.AsInt64(), data)
	return raw, nil
}

// FromAny converts a Go value into a RawTensor.
//
// Accepted inputs: *RawTensor (returned as-is), numeric scalars, and
// arbitrarily nested slices of float32/float64/int/int32/int64 with
// rectangular shape. Nested slices become the leading axes.
func FromAny(value any) (*RawTensor, error) {
	if raw, ok := value.(*RawTensor); ok {
		return raw, nil
	}

	shape, err := inferShape(value)
	if err != nil {
		return nil, err
	}
	dtype := inferElemType(value)

	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	i := 0
	if err := fillFlat(raw, value, &i); err != nil {
		return nil, err
	}
	return raw, nil
}

func inferShape(value any) (Shape, error) {
	switch v := value.(type) {
	case float32, float64, int, int32, int64:
		return Shape{}, nil
	case []float32:
		return Shape{len(v)}, nil
	case []float64:
		return Shape{len(v)}, nil
	case []int:
		return Shape{len(v)}, nil
	case []int32:
		return Shape{len(v)}, nil
	case []int64:
		return Shape{len(v)}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: cannot infer shape from empty slice", ErrInvalidArgument)
		}
		inner, err := inferShape(v[0])
		if err != nil {
			return nil, err
		}
		for _, item := range v[1:] {
			s, err := inferShape(item)
			if err != nil {
				return nil, err
			}
			if !s.Equal(inner) {
				return nil, fmt.Errorf("%w: ragged nested slice: %v vs %v", ErrInvalidArgument, inner, s)
			}
		}
		return append(Shape{len(v)}, inner...), nil
	case [][]float64:
		anyv := make([]any, len(v))
		for i := range v {
			anyv[i] = v[i]
		}
		return inferShape(anyv)
	case [][]float32:
		anyv := make([]any, len(v))
		for i := range v {
			anyv[i] = v[i]
		}
		return inferShape(anyv)
	default:
		return nil, fmt.Errorf("%w: cannot convert %T to a tensor", ErrInvalidArgument, value)
	}
}

// inferElemType picks the storage dtype for converted values. Integer inputs
// become Int64, everything else Float64; the adapter's dtype conversion
// narrows afterwards.
func inferElemType(value any) DataType {
	switch v := value.(type) {
	case int, int32, int64, []int, []int32, []int64:
		return Int64
	case []any:
		if len(v) > 0 {
			return inferElemType(v[0])
		}
		return Float64
	default:
		return Float64
	}
}

func fillFlat(raw *RawTensor, value any, i *int) error {
	switch v := value.(type) {
	case float32:
		raw.SetFloatAt(*i, float64(v))
		*i++
	case float64:
		raw.SetFloatAt(*i, v)
		*i++
	case int:
		raw.SetFloatAt(*i, float64(v))
		*i++
	case int32:
		raw.SetFloatAt(*i, float64(v))
		*i++
	case int64:
		raw.SetFloatAt(*i, float64(v))
		*i++
	case []float32:
		for _, x := range v {
			raw.SetFloatAt(*i, float64(x))
			*i++
		}
	case []float64:
		for _, x := range v {
			raw.SetFloatAt(*i, x)
			*i++
		}
	case []int:
		for _, x := range v {
			raw.SetFloatAt(*i, float64(x))
			*i++
		}
	case []int32:
		for _, x := range v {
			raw.SetFloatAt(*i, float64(x))
			*i++
		}
	case []int64:
		for _, x := range v {
			raw.SetFloatAt(*i, float64(x))
			*i++
		}
	case []any:
		for _, item := range v {
			if err := fillFlat(raw, item, i); err != nil {
				return err
			}
		}
	case [][]float64:
		for _, row := range v {
			if err := fillFlat(raw, row, i); err != nil {
				return err
			}
		}
	case [][]float32:
		for _, row := range v {
			if err := fillFlat(raw, row, i); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: cannot convert %T to a tensor", ErrInvalidArgument, value)
	}
	return nil
}
