package utils

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Side selects where singleton axes or pad blocks are placed.
//
// Side is a typed string so an invalid token is caught as an
// ErrInvalidArgument at the call site rather than producing silent
// misbehavior.
type Side string

// Supported sides.
const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both" // pad only
)

// Expand inserts n new singleton axes on the given side of x.
//
// The result shares x's buffer; no data is copied. Fails with
// ErrInvalidArgument if n is negative or side is not "left"/"right".
func Expand(x *tensor.RawTensor, n int, side Side) (*tensor.RawTensor, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot expand %d times", tensor.ErrInvalidArgument, n)
	}

	shape := x.Shape()
	newShape := make(tensor.Shape, 0, len(shape)+n)
	switch side {
	case SideLeft:
		for i := 0; i < n; i++ {
			newShape = append(newShape, 1)
		}
		newShape = append(newShape, shape...)
	case SideRight:
		newShape = append(newShape, shape...)
		for i := 0; i < n; i++ {
			newShape = append(newShape, 1)
		}
	default:
		return nil, fmt.Errorf("%w: invalid side %q, must be \"left\" or \"right\"", tensor.ErrInvalidArgument, side)
	}

	return x.WithShape(newShape)
}

// ExpandTo expands x with singleton axes until it has dim dimensions.
// Fails with ErrInvalidArgument if x already has more than dim dimensions.
func ExpandTo(x *tensor.RawTensor, dim int, side Side) (*tensor.RawTensor, error) {
	return Expand(x, dim-x.NDim(), side)
}

// ExpandAs expands x with singleton axes until it matches the
// dimensionality of y.
func ExpandAs(x, y *tensor.RawTensor, side Side) (*tensor.RawTensor, error) {
	return ExpandTo(x, y.NDim(), side)
}

// ExpandLeft expands x to the left n times.
func ExpandLeft(x *tensor.RawTensor, n int) (*tensor.RawTensor, error) {
	return Expand(x, n, SideLeft)
}

// ExpandLeftTo expands x to the left, matching dim.
func ExpandLeftTo(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	return ExpandTo(x, dim, SideLeft)
}

// ExpandLeftAs expands x to the left, matching the dimensionality of y.
func ExpandLeftAs(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return ExpandAs(x, y, SideLeft)
}

// ExpandRight expands x to the right n times.
func ExpandRight(x *tensor.RawTensor, n int) (*tensor.RawTensor, error) {
	return Expand(x, n, SideRight)
}

// ExpandRightTo expands x to the right, matching dim.
func ExpandRightTo(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	return ExpandTo(x, dim, SideRight)
}

// ExpandRightAs expands x to the right, matching the dimensionality of y.
func ExpandRightAs(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return ExpandAs(x, y, SideRight)
}
