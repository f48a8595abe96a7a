package tensor

import "errors"

// Sentinel errors shared across the toolkit.
//
// All errors in this core are raised synchronously at the point of detection
// and propagate to the caller unmodified: failures here are programming or
// configuration mistakes, not transient conditions to retry.
var (
	// ErrInvalidArgument indicates malformed or jointly-inconsistent
	// parameters (negative expansion count, unrecognized side token,
	// missing mandatory conditioning source, conflicting fit arguments).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented indicates the active numeric backend lacks a
	// needed primitive (e.g. batched search).
	ErrNotImplemented = errors.New("not implemented")
)
