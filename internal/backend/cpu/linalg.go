package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// MatMul multiplies two 2-D tensors, [m, k] x [k, n] -> [m, n].
// The result dtype matches x. Computation runs in float64 through gonum.
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	if x.NDim() != 2 || y.NDim() != 2 {
		panic(fmt.Sprintf("matmul: inputs must be 2-D, got %v and %v", x.Shape(), y.Shape()))
	}
	m, k := x.Shape()[0], x.Shape()[1]
	k2, n := y.Shape()[0], y.Shape()[1]
	if k != k2 {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v x %v", x.Shape(), y.Shape()))
	}

	var result mat.Dense
	result.Mul(mat.NewDense(m, k, asFloat64(x)), mat.NewDense(k2, n, asFloat64(y)))

	out := tensor.Zeros(tensor.Shape{m, n}, x.DType())
	data := result.RawMatrix().Data
	for i := range data {
		out.SetFloatAt(i, data[i])
	}
	return out
}

// Transpose returns the transpose of a 2-D tensor.
func (b *Backend) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	if x.NDim() != 2 {
		panic(fmt.Sprintf("transpose: input must be 2-D, got %v", x.Shape()))
	}
	rows, cols := x.Shape()[0], x.Shape()[1]
	out := tensor.Zeros(tensor.Shape{cols, rows}, x.DType())
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.SetFloatAt(j*rows+i, x.FloatAt(i*cols+j))
		}
	}
	return out
}

// asFloat64 copies tensor contents into a float64 slice for gonum.
func asFloat64(x *tensor.RawTensor) []float64 {
	if x.DType() == tensor.Float64 {
		return x.AsFloat64()
	}
	out := make([]float64, x.NumElements())
	for i := range out {
		out[i] = x.FloatAt(i)
	}
	return out
}
