package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/internal/network"
	"github.com/eodole/BayesFlow/internal/tensor"
)

func paramWithGrad(t *testing.T, value, grad []float32) *network.Parameter {
	t.Helper()
	b := cpu.New()
	vt, err := tensor.FromFloat32(value, tensor.Shape{len(value)})
	require.NoError(t, err)
	gt, err := tensor.FromFloat32(grad, tensor.Shape{len(grad)})
	require.NoError(t, err)
	p := network.NewParameter("p", vt)
	p.AddGrad(b, gt)
	return p
}

func TestSGDStep(t *testing.T) {
	p := paramWithGrad(t, []float32{1, 2}, []float32{10, 20})
	opt := NewSGD([]*network.Parameter{p}, SGDConfig{LR: 0.1})

	opt.Step()
	assert.InDelta(t, 0.0, p.Tensor().AsFloat32()[0], 1e-6)
	assert.InDelta(t, 0.0, p.Tensor().AsFloat32()[1], 1e-6)
}

func TestSGDMomentumAccelerates(t *testing.T) {
	b := cpu.New()
	p := paramWithGrad(t, []float32{0}, []float32{1})
	opt := NewSGD([]*network.Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})

	opt.Step()
	afterFirst := p.Tensor().AsFloat32()[0]
	assert.InDelta(t, -0.1, afterFirst, 1e-6)

	// Same gradient again: velocity compounds, second step is larger.
	p.ZeroGrad()
	gt, err := tensor.FromFloat32([]float32{1}, tensor.Shape{1})
	require.NoError(t, err)
	p.AddGrad(b, gt)
	opt.Step()
	secondDelta := p.Tensor().AsFloat32()[0] - afterFirst
	assert.Less(t, secondDelta, float32(-0.1))
}

func TestSGDSkipsParamsWithoutGrad(t *testing.T) {
	vt, err := tensor.FromFloat32([]float32{5}, tensor.Shape{1})
	require.NoError(t, err)
	p := network.NewParameter("p", vt)
	opt := NewSGD([]*network.Parameter{p}, SGDConfig{LR: 0.1})

	opt.Step()
	assert.Equal(t, float32(5), p.Tensor().AsFloat32()[0])
}

func TestAdamDefaultsAndStep(t *testing.T) {
	p := paramWithGrad(t, []float32{1}, []float32{1})
	opt := NewAdam([]*network.Parameter{p}, AdamConfig{})

	assert.InDelta(t, 0.001, opt.GetLR(), 1e-9)
	opt.Step()
	// First Adam step moves by roughly lr regardless of gradient scale.
	assert.InDelta(t, 1-0.001, p.Tensor().AsFloat32()[0], 1e-4)
}

func TestZeroGrad(t *testing.T) {
	p := paramWithGrad(t, []float32{1}, []float32{1})
	opt := NewAdam([]*network.Parameter{p}, AdamConfig{})

	require.NotNil(t, p.Grad())
	opt.ZeroGrad()
	assert.Nil(t, p.Grad())
}
