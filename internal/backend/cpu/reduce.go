package cpu

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Mean computes the mean over all elements, returning a 0-D tensor of the
// input's dtype (floats) or Float64 (integer inputs).
func (b *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	n := x.NumElements()
	if n == 0 {
		panic("mean: empty tensor")
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += x.FloatAt(i)
	}

	dtype := x.DType()
	if !dtype.IsFloat() {
		dtype = tensor.Float64
	}
	return tensor.Scalar(dtype, sum/float64(n))
}

// Argmax returns the index of the maximum value along the given axis as an
// Int64 tensor with that axis removed. Ties resolve to the first occurrence.
func (b *Backend) Argmax(x *tensor.RawTensor, axis int) *tensor.RawTensor {
	shape := x.Shape()
	axis, err := shape.NormalizeAxis(axis)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}

	outShape := make(tensor.Shape, 0, len(shape)-1)
	outShape = append(outShape, shape[:axis]...)
	outShape = append(outShape, shape[axis+1:]...)

	outer := 1
	for _, d := range shape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range shape[axis+1:] {
		inner *= d
	}
	axisLen := shape[axis]

	result, err := tensor.NewRaw(outShape, tensor.Int64)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}
	out := result.AsInt64()

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			best := 0
			bestVal := x.FloatAt(o*axisLen*inner + in)
			for k := 1; k < axisLen; k++ {
				v := x.FloatAt(o*axisLen*inner + k*inner + in)
				if v > bestVal {
					bestVal = v
					best = k
				}
			}
			out[o*inner+in] = int64(best)
		}
	}

	return result
}
