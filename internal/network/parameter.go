package network

import (
	"math"
	"math/rand"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Parameter is a trainable tensor with an accumulated gradient.
//
// Parameters are always Float32. The gradient is allocated lazily on the
// first backward pass and accumulated across calls until ZeroGrad.
type Parameter struct {
	name  string
	value *tensor.RawTensor
	grad  *tensor.RawTensor
}

// NewParameter creates a trainable parameter around an initialized tensor.
func NewParameter(name string, value *tensor.RawTensor) *Parameter {
	return &Parameter{name: name, value: value}
}

// Name returns the parameter name, e.g. "dense_0.weight".
func (p *Parameter) Name() string { return p.name }

// Tensor returns the parameter value.
func (p *Parameter) Tensor() *tensor.RawTensor { return p.value }

// Grad returns the accumulated gradient, or nil before any backward pass.
func (p *Parameter) Grad() *tensor.RawTensor { return p.grad }

// AddGrad accumulates g into the parameter gradient.
func (p *Parameter) AddGrad(b tensor.Backend, g *tensor.RawTensor) {
	if p.grad == nil {
		p.grad = g.Clone()
		return
	}
	p.grad = b.Add(p.grad, g)
}

// ZeroGrad drops the accumulated gradient.
// Call before each training step to avoid stale accumulation.
func (p *Parameter) ZeroGrad() { p.grad = nil }

// xavier initializes a weight tensor with the Glorot uniform distribution
// U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
func xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.RawTensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	t := tensor.Zeros(shape, tensor.Float32)
	data := t.AsFloat32()
	for i := range data {
		//nolint:gosec // math/rand is fine for weight initialization
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}
	return t
}
