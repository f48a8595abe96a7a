package network

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Dense is a fully connected layer, y = x @ W + b.
//
// The input width is unknown until the first forward pass, so the layer
// builds lazily: weights are allocated from the trailing dimension of the
// first input it sees. This lets callers assemble networks before data
// shapes are known.
type Dense struct {
	name  string
	units int

	weight *Parameter // [in, units]
	bias   *Parameter // [units]
	built  bool

	input *tensor.RawTensor // cached by Forward for Backward
}

// NewDense creates a dense layer producing units output features.
func NewDense(name string, units int) *Dense {
	if units <= 0 {
		panic(fmt.Sprintf("dense: units must be positive, got %d", units))
	}
	return &Dense{name: name, units: units}
}

// Units returns the output width.
func (d *Dense) Units() int { return d.units }

// Built reports whether the layer has allocated its weights.
func (d *Dense) Built() bool { return d.built }

func (d *Dense) build(in int) {
	d.weight = NewParameter(d.name+".weight", xavier(in, d.units, tensor.Shape{in, d.units}))
	d.bias = NewParameter(d.name+".bias", tensor.Zeros(tensor.Shape{d.units}, tensor.Float32))
	d.built = true
}

// Forward computes y = x @ W + b for x of shape [batch, in].
// Builds the layer on first use.
func (d *Dense) Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor {
	if x.NDim() != 2 {
		panic(fmt.Sprintf("dense %s: input must be 2-D, got %v", d.name, x.Shape()))
	}
	x = b.Cast(x, tensor.Float32)
	in := x.Shape()[1]
	if !d.built {
		d.build(in)
	}
	if got := d.weight.Tensor().Shape()[0]; got != in {
		panic(fmt.Sprintf("dense %s: built for %d input features, got %d", d.name, got, in))
	}
	d.input = x
	return b.Add(b.MatMul(x, d.weight.Tensor()), d.bias.Tensor())
}

// Backward accumulates dL/dW and dL/db and returns dL/dx.
func (d *Dense) Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor {
	if d.input == nil {
		panic(fmt.Sprintf("dense %s: backward without forward", d.name))
	}
	x := d.input
	batch := x.Shape()[0]

	// dL/dW = x^T @ grad
	d.weight.AddGrad(b, b.MatMul(b.Transpose(x), grad))

	// dL/db = column sums of grad
	ones := b.Full(tensor.Shape{1, batch}, tensor.Float32, 1)
	d.bias.AddGrad(b, b.Reshape(b.MatMul(ones, grad), tensor.Shape{d.units}))

	// dL/dx = grad @ W^T
	return b.MatMul(grad, b.Transpose(d.weight.Tensor()))
}

// Parameters returns the weight and bias, empty before the layer is built.
func (d *Dense) Parameters() []*Parameter {
	if !d.built {
		return nil
	}
	return []*Parameter{d.weight, d.bias}
}
