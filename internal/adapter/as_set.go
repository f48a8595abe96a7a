package adapter

import (
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// AsSet marks a variable's second axis as a permutation-invariant "set"
// axis for exchangeable modeling, e.g. i.i.d. observations whose order
// carries no information.
//
// Forward normalizes the array to at least 3 axes (batch, set element,
// feature), inserting singleton axes as needed. Inverse squeezes the
// trailing feature axis away when it has size exactly 1.
//
// The inverse squeeze is a heuristic: a genuine single-feature set cannot
// be distinguished from a variable whose feature axis was created by
// Forward. This is a documented limitation of the set convention, not
// something the transform tries to fix.
type AsSet struct{}

// Forward returns x reshaped to at least 3 axes.
//
//	()      -> (1, 1, 1)
//	(n)     -> (1, n, 1)
//	(m, n)  -> (m, n, 1)
//	3+ axes -> unchanged
func (AsSet) Forward(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := x.Shape()
	switch len(shape) {
	case 0:
		return x.WithShape(tensor.Shape{1, 1, 1})
	case 1:
		return x.WithShape(tensor.Shape{1, shape[0], 1})
	case 2:
		return x.WithShape(tensor.Shape{shape[0], shape[1], 1})
	default:
		return x, nil
	}
}

// Inverse squeezes the trailing feature axis of a 3-axis array when it has
// size exactly 1; everything else passes through unchanged.
func (AsSet) Inverse(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if len(shape) == 3 && shape[2] == 1 {
		return x.WithShape(tensor.Shape{shape[0], shape[1]})
	}
	return x, nil
}

// NewAsSet creates the transform applying set semantics to the given keys.
func NewAsSet(keys []string) *ElementwiseTransform {
	return NewElementwiseTransform("as_set", AsSet{}, keys)
}

func init() {
	serialization.Register("as_set", func(config map[string]any) (any, error) {
		return NewAsSet(serialization.Strings(config["keys"])), nil
	})
}
