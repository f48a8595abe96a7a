package utils

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// TileAxis repeats x along the given axis n times.
func TileAxis(b tensor.Backend, x *tensor.RawTensor, n, axis int) (*tensor.RawTensor, error) {
	axis, err := x.Shape().NormalizeAxis(axis)
	if err != nil {
		return nil, err
	}

	repeats := make([]int, x.NDim())
	for i := range repeats {
		repeats[i] = 1
	}
	repeats[axis] = n

	return b.Tile(x, repeats), nil
}

// ExpandTile inserts a new singleton axis at the given position, then tiles
// it n times.
func ExpandTile(b tensor.Backend, x *tensor.RawTensor, n, axis int) (*tensor.RawTensor, error) {
	ndim := x.NDim() + 1
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return nil, fmt.Errorf("%w: axis %d out of range for %dD result", tensor.ErrInvalidArgument, axis, ndim)
	}

	shape := x.Shape()
	newShape := make(tensor.Shape, 0, ndim)
	newShape = append(newShape, shape[:axis]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[axis:]...)

	expanded, err := x.WithShape(newShape)
	if err != nil {
		return nil, err
	}
	return TileAxis(b, expanded, n, axis)
}
