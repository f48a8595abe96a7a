package cpu

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Cast converts x to a different data type.
//
// Returns x unchanged when the dtype already matches. Float32/Float64 pairs
// take vectorized paths; Float16 goes through IEEE 754 half-precision
// conversion; everything else uses the generic path.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch {
	case x.DType() == tensor.Float64 && dtype == tensor.Float32:
		src, dst := x.AsFloat64(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case x.DType() == tensor.Float32 && dtype == tensor.Float64:
		src, dst := x.AsFloat32(), result.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	case x.DType() == tensor.Float32 && dtype == tensor.Float16:
		src, dst := x.AsFloat32(), result.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(v)
		}
	case x.DType() == tensor.Float16 && dtype == tensor.Float32:
		src, dst := x.AsFloat16(), result.AsFloat32()
		for i, v := range src {
			dst[i] = v.Float32()
		}
	default:
		for i := 0; i < x.NumElements(); i++ {
			result.SetFloatAt(i, x.FloatAt(i))
		}
	}

	return result
}
