package adapter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

func mustTensor(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromFloat64(data, shape)
	require.NoError(t, err)
	return x
}

func TestToArrayConvertsRawValues(t *testing.T) {
	b := cpu.New()
	a := New().ToArray()

	out, err := a.Forward(b, map[string]any{
		"x": []float64{1, 2, 3},
		"n": 5,
	})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, out["x"].Shape())
	assert.Equal(t, tensor.Int64, out["n"].DType())
}

func TestForwardRejectsUnconvertedValues(t *testing.T) {
	b := cpu.New()
	a := New() // no ToArray stage

	_, err := a.Forward(b, map[string]any{"x": "not a tensor"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestConvertDType(t *testing.T) {
	b := cpu.New()
	a := New().ToArray().ConvertDType(tensor.Float64, tensor.Float32)

	out, err := a.Forward(b, map[string]any{"x": []float64{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out["x"].DType())

	back, err := a.InverseTensors(b, out)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, back["x"].(*tensor.RawTensor).DType())
}

func TestAsSetRoundTrip(t *testing.T) {
	b := cpu.New()
	a := New().AsSet("obs")

	x := mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out, err := a.Forward(b, map[string]any{"obs": x})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 1}, out["obs"].Shape())

	back, err := a.InverseTensors(b, out)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, back["obs"].(*tensor.RawTensor).Shape())
}

func TestRenameAndKeep(t *testing.T) {
	b := cpu.New()
	a := New().Rename("theta", "inference_variables").Keep("inference_variables")

	x := mustTensor(t, []float64{1, 2}, tensor.Shape{2})
	out, err := a.Forward(b, map[string]any{
		"theta": x,
		"junk":  mustTensor(t, []float64{0}, tensor.Shape{1}),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, x, out["inference_variables"])

	back, err := a.InverseTensors(b, out)
	require.NoError(t, err)
	_, ok := back["theta"]
	assert.True(t, ok)
}

func TestConcatenateRecordsSplits(t *testing.T) {
	b := cpu.New()
	a := New().Concatenate([]string{"alpha", "beta"}, "conditions")

	alpha := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	beta := mustTensor(t, []float64{5, 6, 7, 8, 9, 10}, tensor.Shape{2, 3})
	out, err := a.Forward(b, map[string]any{"alpha": alpha, "beta": beta})
	require.NoError(t, err)
	require.Contains(t, out, "conditions")
	assert.Equal(t, tensor.Shape{2, 5}, out["conditions"].Shape())
	_, stillThere := out["alpha"]
	assert.False(t, stillThere)

	back, err := a.InverseTensors(b, out)
	require.NoError(t, err)
	gotAlpha := back["alpha"].(*tensor.RawTensor)
	gotBeta := back["beta"].(*tensor.RawTensor)
	assert.Equal(t, alpha.AsFloat64(), gotAlpha.AsFloat64())
	assert.Equal(t, beta.AsFloat64(), gotBeta.AsFloat64())
}

func TestConcatenateInverseBeforeForward(t *testing.T) {
	b := cpu.New()
	tr := NewConcatenate([]string{"a", "b"}, "c", -1)

	_, err := tr.Inverse(b, map[string]any{
		"c": mustTensor(t, []float64{1, 2}, tensor.Shape{1, 2}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestConcatenateMissingKey(t *testing.T) {
	b := cpu.New()
	a := New().Concatenate([]string{"a", "b"}, "c")

	_, err := a.Forward(b, map[string]any{
		"a": mustTensor(t, []float64{1}, tensor.Shape{1, 1}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestStandardizeFitsOnceAndInverts(t *testing.T) {
	b := cpu.New()
	a := New().Standardize()

	x := mustTensor(t, []float64{1, 10, 2, 20, 3, 30}, tensor.Shape{3, 2})
	out, err := a.Forward(b, map[string]any{"x": x})
	require.NoError(t, err)

	y := out["x"].AsFloat64()
	// Per-feature mean is zero after standardization.
	assert.InDelta(t, 0, (y[0]+y[2]+y[4])/3, 1e-9)
	assert.InDelta(t, 0, (y[1]+y[3]+y[5])/3, 1e-9)

	// A second batch reuses the frozen statistics instead of refitting.
	x2 := mustTensor(t, []float64{100, 100}, tensor.Shape{1, 2})
	out2, err := a.Forward(b, map[string]any{"x": x2})
	require.NoError(t, err)
	assert.Greater(t, out2["x"].AsFloat64()[0], 1.0)

	back, err := a.InverseTensors(b, out)
	require.NoError(t, err)
	got := back["x"].(*tensor.RawTensor).AsFloat64()
	for i := range got {
		assert.InDelta(t, x.AsFloat64()[i], got[i], 1e-9)
	}
}

func TestStandardizeExcludeAndNonFloat(t *testing.T) {
	b := cpu.New()
	a := New().Standardize("skip")

	skip := mustTensor(t, []float64{7, 8}, tensor.Shape{2})
	idx, err := tensor.FromInt64([]int64{0, 1}, tensor.Shape{2})
	require.NoError(t, err)

	out, err := a.Forward(b, map[string]any{"skip": skip, "idx": idx})
	require.NoError(t, err)
	assert.Equal(t, skip.AsFloat64(), out["skip"].AsFloat64())
	assert.Equal(t, idx.AsInt64(), out["idx"].AsInt64())
}

func TestStandardizeConstantFeature(t *testing.T) {
	b := cpu.New()
	a := New().Standardize()

	x := mustTensor(t, []float64{4, 4, 4}, tensor.Shape{3, 1})
	out, err := a.Forward(b, map[string]any{"x": x})
	require.NoError(t, err)
	for _, v := range out["x"].AsFloat64() {
		assert.False(t, math.IsNaN(v))
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestAdapterSerializationRoundTrip(t *testing.T) {
	b := cpu.New()
	a := New().
		ToArray().
		ConvertDType(tensor.Float64, tensor.Float32).
		AsSet("obs").
		Concatenate([]string{"alpha", "beta"}, "conditions").
		Rename("theta", "inference_variables").
		Standardize("model_indices").
		Keep("obs", "conditions", "inference_variables")

	// Fit the stateful stages so their learned config is exercised.
	_, err := a.Forward(b, map[string]any{
		"obs":   []float64{1, 2, 3},
		"alpha": mustTensor(t, []float64{1, 2}, tensor.Shape{1, 2}),
		"beta":  mustTensor(t, []float64{3}, tensor.Shape{1, 1}),
		"theta": []float64{0.5},
	})
	require.NoError(t, err)

	payload, err := serialization.Serialize(a)
	require.NoError(t, err)

	obj, err := serialization.Deserialize(payload)
	require.NoError(t, err)
	restored, ok := obj.(*Adapter)
	require.True(t, ok)
	require.Equal(t, a.Len(), restored.Len())

	// The restored concatenate stage kept its split sizes, so the inverse
	// works without a new forward pass.
	conditions := mustTensor(t, []float64{9, 8, 7}, tensor.Shape{1, 3})
	var concat *Concatenate
	for _, tr := range restored.Transforms() {
		if c, isConcat := tr.(*Concatenate); isConcat {
			concat = c
		}
	}
	require.NotNil(t, concat)
	back, err := concat.Inverse(b, map[string]any{"conditions": conditions})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2}, back["alpha"].(*tensor.RawTensor).Shape())
	assert.Equal(t, tensor.Shape{1, 1}, back["beta"].(*tensor.RawTensor).Shape())
}

func TestBuilderIsImmutable(t *testing.T) {
	base := New().ToArray()
	withKeep := base.Keep("x")
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, withKeep.Len())
}
