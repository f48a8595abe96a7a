package utils

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Pad pads x with n values along axis on the given side.
//
// value may be a numeric scalar or a *RawTensor; it must broadcast against
// x's shape with the pad axis replaced by n. Side "both" concatenates the
// same pad block on both sides.
func Pad(b tensor.Backend, x *tensor.RawTensor, value any, n, axis int, side Side) (*tensor.RawTensor, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot pad %d values", tensor.ErrInvalidArgument, n)
	}

	axis, err := x.Shape().NormalizeAxis(axis)
	if err != nil {
		return nil, err
	}

	switch side {
	case SideLeft, SideRight, SideBoth:
	default:
		return nil, fmt.Errorf("%w: invalid side %q, must be \"left\", \"right\", or \"both\"", tensor.ErrInvalidArgument, side)
	}

	// A zero-width pad block is a no-op.
	if n == 0 {
		return x, nil
	}

	var fill *tensor.RawTensor
	switch v := value.(type) {
	case *tensor.RawTensor:
		fill = v
	case float64:
		fill = b.Full(tensor.Shape{}, x.DType(), v)
	case float32:
		fill = b.Full(tensor.Shape{}, x.DType(), float64(v))
	case int:
		fill = b.Full(tensor.Shape{}, x.DType(), float64(v))
	default:
		return nil, fmt.Errorf("%w: pad value must be a scalar or tensor, got %T", tensor.ErrInvalidArgument, value)
	}

	blockShape := x.Shape().Clone()
	blockShape[axis] = n
	block := b.BroadcastTo(fill, blockShape)

	switch side {
	case SideLeft:
		return b.Cat([]*tensor.RawTensor{block, x}, axis), nil
	case SideRight:
		return b.Cat([]*tensor.RawTensor{x, block}, axis), nil
	default:
		return b.Cat([]*tensor.RawTensor{block, x, block}, axis), nil
	}
}
