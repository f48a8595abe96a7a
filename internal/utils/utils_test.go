package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/internal/tensor"
)

func fromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat32(data, shape)
	require.NoError(t, err)
	return raw
}

func TestExpand(t *testing.T) {
	x := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	left, err := Expand(x, 2, SideLeft)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 2, 3}, left.Shape())

	right, err := Expand(x, 1, SideRight)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 1}, right.Shape())

	zero, err := Expand(x, 0, SideLeft)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), zero.Shape())
}

func TestExpandErrors(t *testing.T) {
	x := fromFloat32(t, []float32{1}, tensor.Shape{1})

	_, err := Expand(x, -1, SideLeft)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = Expand(x, 1, Side("top"))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	// "both" is valid for Pad but not for Expand.
	_, err = Expand(x, 1, SideBoth)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestExpandToAndAs(t *testing.T) {
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	y := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})

	to, err := ExpandTo(x, 3, SideRight)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1, 1}, to.Shape())

	as, err := ExpandAs(x, y, SideLeft)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 2}, as.Shape())

	// x already has more dims than requested
	_, err = ExpandTo(y, 2, SideLeft)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestExpandShortcuts(t *testing.T) {
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	l, err := ExpandLeft(x, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2}, l.Shape())

	r, err := ExpandRightTo(x, 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1, 1}, r.Shape())
}

func TestPadBothShape(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	padded, err := Pad(b, x, 0.0, 2, 1, SideBoth)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 7}, padded.Shape())
}

func TestPadLeftValues(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	padded, err := Pad(b, x, 9.0, 1, 1, SideLeft)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 3}, padded.Shape())
	assert.Equal(t, []float32{9, 1, 2, 9, 3, 4}, padded.AsFloat32())
}

func TestPadZeroWidth(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	padded, err := Pad(b, x, 0.0, 0, 0, SideLeft)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, padded.Shape())
	assert.Equal(t, x.AsFloat32(), padded.AsFloat32())

	// Side is still validated when nothing would be padded.
	_, err = Pad(b, x, 0.0, 0, 0, Side("around"))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestPadTensorValue(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	// one pad value per row, broadcast along the pad axis
	v := fromFloat32(t, []float32{7, 8}, tensor.Shape{2, 1})

	padded, err := Pad(b, x, v, 2, 1, SideRight)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 7, 7, 3, 4, 8, 8}, padded.AsFloat32())
}

func TestPadErrors(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	_, err := Pad(b, x, 0.0, 1, 0, Side("around"))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = Pad(b, x, 0.0, -1, 0, SideLeft)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = Pad(b, x, "zero", 1, 0, SideLeft)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestTileAxis(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})

	tiled, err := TileAxis(b, x, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, tiled.Shape())
	assert.Equal(t, []float32{1, 2, 1, 2, 1, 2}, tiled.AsFloat32())
}

func TestExpandTile(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	tiled, err := ExpandTile(b, x, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, tiled.Shape())

	tiled, err = ExpandTile(b, x, 2, -1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, tiled.Shape())
	assert.Equal(t, []float32{1, 1, 2, 2}, tiled.AsFloat32())
}

func TestConcatenateDropsNil(t *testing.T) {
	b := cpu.New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})
	y := fromFloat32(t, []float32{3, 4}, tensor.Shape{1, 2})

	withNil, err := Concatenate(b, 0, x, nil, y)
	require.NoError(t, err)
	withoutNil, err := Concatenate(b, 0, x, y)
	require.NoError(t, err)

	require.NotNil(t, withNil)
	assert.Equal(t, withoutNil.AsFloat32(), withNil.AsFloat32())
	assert.Equal(t, withoutNil.Shape(), withNil.Shape())
}

func TestConcatenateAllNil(t *testing.T) {
	b := cpu.New()

	_, err := Concatenate(b, 0, nil, nil)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = Concatenate(b, 0)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestTreeConcatenatePreservesStructure(t *testing.T) {
	b := cpu.New()

	m1 := map[string]*tensor.RawTensor{
		"x": fromFloat32(t, []float32{1, 2}, tensor.Shape{1, 2}),
		"y": fromFloat32(t, []float32{5}, tensor.Shape{1, 1}),
	}
	m2 := map[string]*tensor.RawTensor{
		"x": fromFloat32(t, []float32{3, 4}, tensor.Shape{1, 2}),
		"y": fromFloat32(t, []float32{6}, tensor.Shape{1, 1}),
	}

	out, err := ConcatenateMaps(b, []map[string]*tensor.RawTensor{m1, m2}, 0)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, tensor.Shape{2, 2}, out["x"].Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, out["x"].AsFloat32())
	assert.Equal(t, []float32{5, 6}, out["y"].AsFloat32())
}

func TestTreeConcatenateStructureMismatch(t *testing.T) {
	b := cpu.New()

	t1, err := NewTree(map[string]*tensor.RawTensor{"x": fromFloat32(t, []float32{1}, tensor.Shape{1})})
	require.NoError(t, err)
	t2, err := NewTree(map[string]*tensor.RawTensor{"z": fromFloat32(t, []float32{1}, tensor.Shape{1})})
	require.NoError(t, err)

	_, err = TreeConcatenate(b, []*Tree{t1, t2}, 0)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestTreeStack(t *testing.T) {
	b := cpu.New()

	t1, err := NewTree(map[string]*tensor.RawTensor{"x": fromFloat32(t, []float32{1, 2}, tensor.Shape{2})})
	require.NoError(t, err)
	t2, err := NewTree(map[string]*tensor.RawTensor{"x": fromFloat32(t, []float32{3, 4}, tensor.Shape{2})})
	require.NoError(t, err)

	out, err := TreeStack(b, []*Tree{t1, t2}, 0)
	require.NoError(t, err)

	m, ok := out.AsMap()
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{2, 2}, m["x"].Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, m["x"].AsFloat32())
}

func TestTreeNestedStructures(t *testing.T) {
	x := fromFloat32(t, []float32{1}, tensor.Shape{1})
	y := fromFloat32(t, []float32{2}, tensor.Shape{1})

	tree, err := NewTree(map[string]any{
		"outer": []any{x, y},
	})
	require.NoError(t, err)

	flat := tree.Flatten()
	require.Len(t, flat, 2)
	if diff := cmp.Diff([]float32{1}, flat[0].AsFloat32()); diff != "" {
		t.Errorf("flatten order mismatch (-want +got):\n%s", diff)
	}
}

func TestSizeOfDedup(t *testing.T) {
	x := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4}) // 16 bytes

	single, err := SizeOf(x)
	require.NoError(t, err)
	assert.Equal(t, 16, single)

	shared, err := SizeOf([]*tensor.RawTensor{x, x})
	require.NoError(t, err)
	assert.Equal(t, single, shared, "shared tensors must be counted once")

	distinct, err := SizeOf([]*tensor.RawTensor{x, x.Clone()})
	require.NoError(t, err)
	assert.Equal(t, 2*single, distinct)
}

func TestSizeOfNested(t *testing.T) {
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})                 // 8 bytes
	h := tensor.Zeros(tensor.Shape{2}, tensor.Float16)                   // 4 bytes
	got, err := SizeOf(map[string]any{"a": x, "b": []any{h, x}})
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

// noSearchBackend wraps a backend while hiding the searchsorted capability.
type noSearchBackend struct {
	tensor.Backend
}

func (noSearchBackend) Name() string { return "nosearch" }

func TestSearchsortedDispatch(t *testing.T) {
	b := cpu.New()

	seq := fromFloat32(t, []float32{1, 3, 3, 5}, tensor.Shape{1, 4})
	vals := fromFloat32(t, []float32{3}, tensor.Shape{1, 1})

	left, err := Searchsorted(b, seq, vals, tensor.SearchLeft)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left.FloatAt(0))

	right, err := Searchsorted(b, seq, vals, tensor.SearchRight)
	require.NoError(t, err)
	assert.EqualValues(t, 3, right.FloatAt(0))
}

func TestSearchsortedNotImplemented(t *testing.T) {
	b := noSearchBackend{Backend: cpu.New()}

	seq := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	vals := fromFloat32(t, []float32{1}, tensor.Shape{1})

	_, err := Searchsorted(b, seq, vals, tensor.SearchLeft)
	assert.ErrorIs(t, err, tensor.ErrNotImplemented)
}
