// Package utils provides backend-agnostic shape manipulation primitives.
//
// Higher layers (adapter transforms, approximators) never hand-roll
// broadcasting or structure-walking logic; they call into this package.
package utils

import (
	"fmt"
	"sort"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// Tree is a tagged-variant nested structure of tensors: either a leaf
// tensor, a named mapping of subtrees, or a sequence of subtrees.
//
// Exactly one of the three variants is set. Trees are immutable once built;
// structural operations return new trees.
type Tree struct {
	leaf    *tensor.RawTensor
	mapping map[string]*Tree
	seq     []*Tree
	isSeq   bool
}

// Leaf creates a leaf tree holding a single tensor.
func Leaf(t *tensor.RawTensor) *Tree {
	return &Tree{leaf: t}
}

// Mapping creates a named-branch tree.
func Mapping(children map[string]*Tree) *Tree {
	return &Tree{mapping: children}
}

// Sequence creates a sequence-branch tree.
func Sequence(children ...*Tree) *Tree {
	return &Tree{seq: children, isSeq: true}
}

// NewTree converts a Go value into a Tree.
//
// Accepted inputs: *RawTensor, *Tree, map[string]*RawTensor,
// []*RawTensor, map[string]any, and []any (recursively).
func NewTree(value any) (*Tree, error) {
	switch v := value.(type) {
	case *Tree:
		return v, nil
	case *tensor.RawTensor:
		return Leaf(v), nil
	case map[string]*tensor.RawTensor:
		children := make(map[string]*Tree, len(v))
		for k, t := range v {
			children[k] = Leaf(t)
		}
		return Mapping(children), nil
	case []*tensor.RawTensor:
		children := make([]*Tree, len(v))
		for i, t := range v {
			children[i] = Leaf(t)
		}
		return Sequence(children...), nil
	case map[string]any:
		children := make(map[string]*Tree, len(v))
		for k, item := range v {
			child, err := NewTree(item)
			if err != nil {
				return nil, err
			}
			children[k] = child
		}
		return Mapping(children), nil
	case []any:
		children := make([]*Tree, len(v))
		for i, item := range v {
			child, err := NewTree(item)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return Sequence(children...), nil
	default:
		return nil, fmt.Errorf("%w: cannot build a tensor tree from %T", tensor.ErrInvalidArgument, value)
	}
}

// IsLeaf reports whether the tree is a single tensor.
func (t *Tree) IsLeaf() bool {
	return t.mapping == nil && !t.isSeq
}

// Tensor returns the leaf tensor, or nil for branch nodes.
func (t *Tree) Tensor() *tensor.RawTensor {
	return t.leaf
}

// AsMap returns the tree as a flat variable mapping when it is a mapping of
// leaves. The second return is false otherwise.
func (t *Tree) AsMap() (map[string]*tensor.RawTensor, bool) {
	if t.mapping == nil {
		return nil, false
	}
	out := make(map[string]*tensor.RawTensor, len(t.mapping))
	for k, child := range t.mapping {
		if !child.IsLeaf() {
			return nil, false
		}
		out[k] = child.leaf
	}
	return out, true
}

// sortedKeys returns the mapping keys in deterministic order.
func (t *Tree) sortedKeys() []string {
	keys := make([]string, 0, len(t.mapping))
	for k := range t.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten returns all leaf tensors in deterministic order (mapping keys
// sorted lexicographically, sequences in index order).
func (t *Tree) Flatten() []*tensor.RawTensor {
	var out []*tensor.RawTensor
	t.walk(func(leaf *tensor.RawTensor) {
		out = append(out, leaf)
	})
	return out
}

func (t *Tree) walk(fn func(leaf *tensor.RawTensor)) {
	switch {
	case t.IsLeaf():
		fn(t.leaf)
	case t.mapping != nil:
		for _, k := range t.sortedKeys() {
			t.mapping[k].walk(fn)
		}
	default:
		for _, child := range t.seq {
			child.walk(fn)
		}
	}
}

// SameStructure reports whether two trees have an identical layout
// (same variant at every node, same mapping keys, same sequence lengths).
// Leaf shapes are not compared.
func SameStructure(a, b *Tree) bool {
	switch {
	case a.IsLeaf() || b.IsLeaf():
		return a.IsLeaf() && b.IsLeaf()
	case a.mapping != nil || b.mapping != nil:
		if a.mapping == nil || b.mapping == nil || len(a.mapping) != len(b.mapping) {
			return false
		}
		for k, ac := range a.mapping {
			bc, ok := b.mapping[k]
			if !ok || !SameStructure(ac, bc) {
				return false
			}
		}
		return true
	default:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !SameStructure(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	}
}

// zipMap applies fn to corresponding leaves across trees of identical
// structure, producing a tree with the same layout.
func zipMap(trees []*Tree, fn func(leaves []*tensor.RawTensor) (*tensor.RawTensor, error)) (*Tree, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: at least one structure required", tensor.ErrInvalidArgument)
	}
	for i, t := range trees[1:] {
		if !SameStructure(trees[0], t) {
			return nil, fmt.Errorf("%w: structure %d does not match structure 0", tensor.ErrInvalidArgument, i+1)
		}
	}
	return zipMapChecked(trees, fn)
}

func zipMapChecked(trees []*Tree, fn func(leaves []*tensor.RawTensor) (*tensor.RawTensor, error)) (*Tree, error) {
	first := trees[0]
	switch {
	case first.IsLeaf():
		leaves := make([]*tensor.RawTensor, len(trees))
		for i, t := range trees {
			leaves[i] = t.leaf
		}
		result, err := fn(leaves)
		if err != nil {
			return nil, err
		}
		return Leaf(result), nil
	case first.mapping != nil:
		children := make(map[string]*Tree, len(first.mapping))
		for _, k := range first.sortedKeys() {
			sub := make([]*Tree, len(trees))
			for i, t := range trees {
				sub[i] = t.mapping[k]
			}
			child, err := zipMapChecked(sub, fn)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			children[k] = child
		}
		return Mapping(children), nil
	default:
		children := make([]*Tree, len(first.seq))
		for j := range first.seq {
			sub := make([]*Tree, len(trees))
			for i, t := range trees {
				sub[i] = t.seq[j]
			}
			child, err := zipMapChecked(sub, fn)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", j, err)
			}
			children[j] = child
		}
		return Sequence(children...), nil
	}
}
