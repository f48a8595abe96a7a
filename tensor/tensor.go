// Copyright 2025 The BayesFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the toolkit's tensors and
// shape-safe utilities.
//
// The package re-exports the raw dynamic-dtype tensor, the Backend strategy
// interface, and the shape-manipulation primitives (expansion, padding,
// tiling, tree-structured concatenation, batched sorted search) that
// adapters and networks build on.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{3})
//	y, _ := tensor.ExpandLeft(x, 2) // shape (1, 1, 3)
package tensor

import (
	"github.com/eodole/BayesFlow/internal/tensor"
	"github.com/eodole/BayesFlow/internal/utils"
)

// DataType identifies the storage type of a tensor's elements.
type DataType = tensor.DataType

// Data type constants.
const (
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the dynamic-dtype n-dimensional array underlying all toolkit
// data.
type RawTensor = tensor.RawTensor

// Backend is the strategy interface every numeric engine implements.
type Backend = tensor.Backend

// SearchsortedBackend is the optional batched-search capability.
type SearchsortedBackend = tensor.SearchsortedBackend

// SearchSide selects the insertion index for values already present in a
// sorted sequence.
type SearchSide = tensor.SearchSide

// Search sides.
const (
	SearchLeft  SearchSide = tensor.SearchLeft
	SearchRight SearchSide = tensor.SearchRight
)

// Side selects where expansion or padding applies.
type Side = utils.Side

// Expansion and padding sides.
const (
	SideLeft  Side = utils.SideLeft
	SideRight Side = utils.SideRight
	SideBoth  Side = utils.SideBoth
)

// Tree is a nested structure of tensors: a leaf, a string-keyed mapping, or
// a sequence.
type Tree = utils.Tree

// Sentinel errors.
var (
	ErrInvalidArgument = tensor.ErrInvalidArgument
	ErrNotImplemented  = tensor.ErrNotImplemented
)

// Creation.
var (
	Zeros       = tensor.Zeros
	Full        = tensor.Full
	Scalar      = tensor.Scalar
	FromFloat32 = tensor.FromFloat32
	FromFloat64 = tensor.FromFloat64
	FromInt64   = tensor.FromInt64
	FromAny     = tensor.FromAny
)

// Shape helpers.
var (
	ParseDataType   = tensor.ParseDataType
	BroadcastShapes = tensor.BroadcastShapes
)

// Expansion utilities: insert singleton axes on either side of a tensor.
var (
	Expand        = utils.Expand
	ExpandTo      = utils.ExpandTo
	ExpandAs      = utils.ExpandAs
	ExpandLeft    = utils.ExpandLeft
	ExpandLeftTo  = utils.ExpandLeftTo
	ExpandLeftAs  = utils.ExpandLeftAs
	ExpandRight   = utils.ExpandRight
	ExpandRightTo = utils.ExpandRightTo
	ExpandRightAs = utils.ExpandRightAs
)

// Padding, tiling, and concatenation utilities.
var (
	Pad         = utils.Pad
	TileAxis    = utils.TileAxis
	ExpandTile  = utils.ExpandTile
	Concatenate = utils.Concatenate
)

// Tree utilities: generic operations over nested tensor structures.
var (
	NewTree         = utils.NewTree
	TreeConcatenate = utils.TreeConcatenate
	TreeStack       = utils.TreeStack
	ConcatenateMaps = utils.ConcatenateMaps
	SizeOf          = utils.SizeOf
)

// Searchsorted performs a batched order-preserving insertion search on
// backends that support it.
var Searchsorted = utils.Searchsorted
