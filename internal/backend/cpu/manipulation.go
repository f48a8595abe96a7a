package cpu

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Cat concatenates tensors along the specified axis.
//
// All tensors must share dtype and shape except along the concatenation
// axis. Supports negative axis indexing (-1 = last axis).
func (b *Backend) Cat(tensors []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	axis, err := shape.NormalizeAxis(axis)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == axis {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[axis] = totalDim

	result, err := tensor.NewRaw(outShape, dtype)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Copy row blocks: each input contributes one contiguous block per
	// position in the axes preceding the concatenation axis.
	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}

	elemSize := dtype.Size()
	dst := result.Data()
	offset := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			block := t.NumElements() / outer * elemSize
			copy(dst[offset:offset+block], t.Data()[o*block:(o+1)*block])
			offset += block
		}
	}

	return result
}

// Stack stacks tensors along a new axis.
//
// All tensors must have identical shapes and dtypes. The new axis is
// inserted at the given position of the result (negative indexing allowed).
func (b *Backend) Stack(tensors []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("stack: at least one tensor required")
	}

	shape := tensors[0].Shape()
	outNdim := len(shape) + 1
	if axis < 0 {
		axis += outNdim
	}
	if axis < 0 || axis >= outNdim {
		panic(fmt.Sprintf("stack: axis %d out of range for %dD result", axis, outNdim))
	}

	expanded := make([]*tensor.RawTensor, len(tensors))
	for i, t := range tensors {
		if !t.Shape().Equal(shape) {
			panic(fmt.Sprintf("stack: tensor %d has shape %v, expected %v", i, t.Shape(), shape))
		}
		newShape := make(tensor.Shape, 0, outNdim)
		newShape = append(newShape, shape[:axis]...)
		newShape = append(newShape, 1)
		newShape = append(newShape, shape[axis:]...)
		expanded[i] = b.Reshape(t, newShape)
	}

	return b.Cat(expanded, axis)
}

// Tile repeats x along each axis the given number of times.
// len(repeats) must equal the tensor's rank.
func (b *Backend) Tile(x *tensor.RawTensor, repeats []int) *tensor.RawTensor {
	shape := x.Shape()
	if len(repeats) != len(shape) {
		panic(fmt.Sprintf("tile: got %d repeats for %dD tensor", len(repeats), len(shape)))
	}

	outShape := shape.Clone()
	for i, r := range repeats {
		if r <= 0 {
			panic(fmt.Sprintf("tile: repeat count must be positive, got %d", r))
		}
		outShape[i] *= r
	}

	result, err := tensor.NewRaw(outShape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("tile: %v", err))
	}

	outStrides := outShape.ComputeStrides()
	inStrides := shape.ComputeStrides()
	for i := 0; i < result.NumElements(); i++ {
		flat := i
		src := 0
		for d, stride := range outStrides {
			coord := flat / stride
			flat %= stride
			src += (coord % shape[d]) * inStrides[d]
		}
		result.SetFloatAt(i, x.FloatAt(src))
	}
	return result
}

// Slice extracts length elements starting at start along axis.
func (b *Backend) Slice(x *tensor.RawTensor, axis, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	axis, err := shape.NormalizeAxis(axis)
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}
	if start < 0 || length <= 0 || start+length > shape[axis] {
		panic(fmt.Sprintf("slice: range [%d:%d] out of bounds for axis %d of size %d", start, start+length, axis, shape[axis]))
	}

	outShape := shape.Clone()
	outShape[axis] = length

	result, err := tensor.NewRaw(outShape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}

	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := axis + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	elemSize := x.DType().Size()
	rowBytes := inner * elemSize
	src := x.Data()
	dst := result.Data()
	for o := 0; o < outer; o++ {
		from := (o*shape[axis] + start) * rowBytes
		to := o * length * rowBytes
		copy(dst[to:to+length*rowBytes], src[from:from+length*rowBytes])
	}

	return result
}

// BroadcastTo materializes x broadcast to the target shape.
func (b *Backend) BroadcastTo(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("broadcast: cannot broadcast %v to %v", x.Shape(), shape))
	}

	result, err := tensor.NewRaw(shape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("broadcast: %v", err))
	}

	idx := newBroadcastIndexer(x.Shape(), shape)
	for i := 0; i < result.NumElements(); i++ {
		result.SetFloatAt(i, x.FloatAt(idx.at(i)))
	}
	return result
}
