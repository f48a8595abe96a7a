package cpu

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("add", x, y, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with NumPy-style broadcasting.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("sub", x, y, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("mul", x, y, func(a, b float64) float64 { return a * b })
}

// Div performs element-wise division with NumPy-style broadcasting.
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("div", x, y, func(a, b float64) float64 { return a / b })
}

// elementWise applies op to x and y under broadcasting. The result dtype is
// x's dtype. Float32 inputs of identical shape take a vectorized fast path;
// everything else goes through the generic float64 path.
func (b *Backend) elementWise(name string, x, y *tensor.RawTensor, op func(float64, float64) float64) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && x.DType() == tensor.Float32 && y.DType() == tensor.Float32 {
		xd, yd, rd := x.AsFloat32(), y.AsFloat32(), result.AsFloat32()
		for i := range rd {
			rd[i] = float32(op(float64(xd[i]), float64(yd[i])))
		}
		return result
	}

	xIdx := newBroadcastIndexer(x.Shape(), outShape)
	yIdx := newBroadcastIndexer(y.Shape(), outShape)
	for i := 0; i < result.NumElements(); i++ {
		result.SetFloatAt(i, op(x.FloatAt(xIdx.at(i)), y.FloatAt(yIdx.at(i))))
	}
	return result
}

// broadcastIndexer maps a flat index into the broadcast output shape back to
// a flat index into a (possibly smaller) input shape. Size-1 input axes get
// stride 0.
type broadcastIndexer struct {
	outStrides []int
	inStrides  []int
}

func newBroadcastIndexer(in, out tensor.Shape) broadcastIndexer {
	outStrides := out.ComputeStrides()
	inStrides := make([]int, len(out))
	realStrides := in.ComputeStrides()

	offset := len(out) - len(in)
	for i := range out {
		if i < offset {
			inStrides[i] = 0
			continue
		}
		if in[i-offset] == 1 && out[i] != 1 {
			inStrides[i] = 0
		} else {
			inStrides[i] = realStrides[i-offset]
		}
	}
	return broadcastIndexer{outStrides: outStrides, inStrides: inStrides}
}

func (bi broadcastIndexer) at(flat int) int {
	idx := 0
	for i, stride := range bi.outStrides {
		if stride == 0 {
			continue
		}
		idx += (flat / stride) * bi.inStrides[i]
		flat %= stride
	}
	return idx
}
