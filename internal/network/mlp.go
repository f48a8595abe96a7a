package network

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// MLP is a feed-forward feature extractor: a stack of lazily built dense
// layers, each followed by ReLU. It serves as the classifier backbone; the
// final logits projection is applied by the approximator.
type MLP struct {
	widths []int
	layers []Layer
}

// Interface check.
var _ Classifier = (*MLP)(nil)

// NewMLP creates an MLP with one hidden layer per width.
func NewMLP(widths ...int) *MLP {
	if len(widths) == 0 {
		panic("mlp: at least one layer width required")
	}
	layers := make([]Layer, 0, 2*len(widths))
	for i, w := range widths {
		layers = append(layers, NewDense(fmt.Sprintf("mlp.dense_%d", i), w))
		layers = append(layers, NewReLU())
	}
	return &MLP{widths: append([]int(nil), widths...), layers: layers}
}

// OutputDim returns the width of the final layer.
func (m *MLP) OutputDim() int { return m.widths[len(m.widths)-1] }

// Forward runs the stack in order.
func (m *MLP) Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor {
	for _, layer := range m.layers {
		x = layer.Forward(b, x)
	}
	return x
}

// Backward runs the stack in reverse, accumulating parameter gradients.
func (m *MLP) Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor {
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(b, grad)
	}
	return grad
}

// Parameters returns the parameters of every built layer.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Kind implements serialization.Saveable.
func (*MLP) Kind() string { return "mlp" }

// Config implements serialization.Saveable.
func (m *MLP) Config() map[string]any {
	return map[string]any{"widths": m.widths}
}

func init() {
	serialization.Register("mlp", func(config map[string]any) (any, error) {
		widths := serialization.Ints(config["widths"])
		if len(widths) == 0 {
			return nil, fmt.Errorf("mlp: config has no layer widths")
		}
		return NewMLP(widths...), nil
	})
}
