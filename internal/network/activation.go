package network

import (
	"github.com/eodole/BayesFlow/internal/tensor"
)

// ReLU is the rectified linear activation, max(0, x).
type ReLU struct {
	input *tensor.RawTensor
}

// NewReLU creates a ReLU activation layer.
func NewReLU() *ReLU { return &ReLU{} }

// Forward clamps negative entries to zero.
func (r *ReLU) Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor {
	x = b.Cast(x, tensor.Float32)
	r.input = x
	out := x.Clone()
	data := out.AsFloat32()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return out
}

// Backward zeroes the gradient wherever the forward input was negative.
func (r *ReLU) Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor {
	if r.input == nil {
		panic("relu: backward without forward")
	}
	out := grad.Clone()
	data := out.AsFloat32()
	in := r.input.AsFloat32()
	for i := range data {
		if in[i] < 0 {
			data[i] = 0
		}
	}
	return out
}

// Parameters returns nil; ReLU is stateless.
func (r *ReLU) Parameters() []*Parameter { return nil }
