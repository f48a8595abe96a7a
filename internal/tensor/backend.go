package tensor

// SearchSide selects which insertion index a sorted search returns when the
// searched value already occurs in the sequence.
type SearchSide string

// Supported search sides.
const (
	SearchLeft  SearchSide = "left"
	SearchRight SearchSide = "right"
)

// Backend defines the narrow interface every numeric engine must implement.
//
// Backends own the actual computation. The rest of the toolkit only performs
// shape bookkeeping and delegates numerics here, so swapping the engine is a
// process-configuration decision, not a call-site branch.
type Backend interface {
	// Name identifies the backend (e.g. "cpu").
	Name() string

	// Creation
	Zeros(shape Shape, dtype DataType) *RawTensor
	Full(shape Shape, dtype DataType, value float64) *RawTensor

	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(x *RawTensor, shape Shape) *RawTensor
	BroadcastTo(x *RawTensor, shape Shape) *RawTensor
	Cat(tensors []*RawTensor, axis int) *RawTensor
	Stack(tensors []*RawTensor, axis int) *RawTensor
	Tile(x *RawTensor, repeats []int) *RawTensor

	// Slice extracts length elements starting at start along axis.
	// The inverse of Cat.
	Slice(x *RawTensor, axis, start, length int) *RawTensor

	// Linear algebra on 2-D tensors.
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(x *RawTensor) *RawTensor

	// Type conversion
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Reductions
	Mean(x *RawTensor) *RawTensor
	Argmax(x *RawTensor, axis int) *RawTensor

	// CategoricalCrossEntropy computes the per-sample cross-entropy between
	// targets (one-hot or index-encoded, shape [batch, classes] or [batch])
	// and logits (shape [batch, classes]). Computed from logits, not
	// probabilities.
	CategoricalCrossEntropy(targets, logits *RawTensor) *RawTensor
}

// SearchsortedBackend is an optional capability: batched order-preserving
// insertion search. Backends without it cause utils.Searchsorted to fail with
// ErrNotImplemented rather than silently falling back to different semantics.
type SearchsortedBackend interface {
	// Searchsorted returns, for each value, the insertion index into the
	// corresponding (already sorted) row of sortedSequence that preserves
	// order. Rows are matched over the leading axes.
	Searchsorted(sortedSequence, values *RawTensor, side SearchSide) (*RawTensor, error)
}
