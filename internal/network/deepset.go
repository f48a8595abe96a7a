package network

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// DeepSet is a permutation-invariant summary network. Each set element is
// embedded independently by an inner MLP and the embeddings are mean-pooled
// over the set axis, so the representation does not depend on element order.
//
// Input shape is (batch, set, features), output shape (batch, summaryDim).
type DeepSet struct {
	inner *MLP

	batch, set int // cached by Forward for Backward
}

// Interface check.
var _ Summary = (*DeepSet)(nil)

// NewDeepSet creates a DeepSet whose inner embedding network has one hidden
// layer per width. The final width is the summary dimension.
func NewDeepSet(widths ...int) *DeepSet {
	return &DeepSet{inner: NewMLP(widths...)}
}

// SummaryDim returns the width of the pooled representation.
func (d *DeepSet) SummaryDim() int { return d.inner.OutputDim() }

// Forward embeds each set element and mean-pools over the set axis.
func (d *DeepSet) Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor {
	if x.NDim() != 3 {
		panic(fmt.Sprintf("deep set: input must be (batch, set, features), got %v", x.Shape()))
	}
	batch, set, features := x.Shape()[0], x.Shape()[1], x.Shape()[2]
	d.batch, d.set = batch, set

	flat := b.Reshape(x, tensor.Shape{batch * set, features})
	embedded := d.inner.Forward(b, flat)
	dim := embedded.Shape()[1]

	pooled := tensor.Zeros(tensor.Shape{batch, dim}, tensor.Float32)
	out := pooled.AsFloat32()
	emb := embedded.AsFloat32()
	for i := 0; i < batch; i++ {
		for s := 0; s < set; s++ {
			row := (i*set + s) * dim
			for j := 0; j < dim; j++ {
				out[i*dim+j] += emb[row+j]
			}
		}
	}
	inv := float32(1) / float32(set)
	for i := range out {
		out[i] *= inv
	}
	return pooled
}

// Backward distributes the pooled gradient evenly over the set elements and
// propagates it through the inner network.
func (d *DeepSet) Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor {
	if d.set == 0 {
		panic("deep set: backward without forward")
	}
	batch, set := d.batch, d.set
	dim := grad.Shape()[1]

	spread := tensor.Zeros(tensor.Shape{batch * set, dim}, tensor.Float32)
	dst := spread.AsFloat32()
	src := grad.AsFloat32()
	inv := float32(1) / float32(set)
	for i := 0; i < batch; i++ {
		for s := 0; s < set; s++ {
			row := (i*set + s) * dim
			for j := 0; j < dim; j++ {
				dst[row+j] = src[i*dim+j] * inv
			}
		}
	}

	flatGrad := d.inner.Backward(b, spread)
	features := flatGrad.Shape()[1]
	return b.Reshape(flatGrad, tensor.Shape{batch, set, features})
}

// Parameters returns the inner network parameters.
func (d *DeepSet) Parameters() []*Parameter {
	return d.inner.Parameters()
}

// ComputeMetrics runs the forward pass and returns the representation under
// "outputs". DeepSet has no self-supervised objective, so no "loss" entry.
func (d *DeepSet) ComputeMetrics(b tensor.Backend, x *tensor.RawTensor, stage Stage) (map[string]*tensor.RawTensor, error) {
	if x.NDim() != 3 {
		return nil, fmt.Errorf("deep set: summary variables must be (batch, set, features), got %v: %w",
			x.Shape(), tensor.ErrInvalidArgument)
	}
	return map[string]*tensor.RawTensor{"outputs": d.Forward(b, x)}, nil
}

// Kind implements serialization.Saveable.
func (*DeepSet) Kind() string { return "deep_set" }

// Config implements serialization.Saveable.
func (d *DeepSet) Config() map[string]any {
	return map[string]any{"widths": d.inner.widths}
}

func init() {
	serialization.Register("deep_set", func(config map[string]any) (any, error) {
		widths := serialization.Ints(config["widths"])
		if len(widths) == 0 {
			return nil, fmt.Errorf("deep_set: config has no layer widths")
		}
		return NewDeepSet(widths...), nil
	})
}
