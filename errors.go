package graphbind

import (
	"errors"
	"fmt"
)

// Shared error taxonomy. Every layer wraps its failures into exactly one of
// these sentinels so callers can dispatch with errors.Is regardless of which
// package raised the error.
var (
	// ErrConstruction is returned for an invalid vertex count or edge list
	// during graph construction.
	ErrConstruction = errors.New("graphbind: invalid construction")

	// ErrLengthMismatch is returned when a vertex or edge attribute sequence
	// does not match the current vertex or edge count.
	ErrLengthMismatch = errors.New("graphbind: attribute length mismatch")

	// ErrBadType is returned for a non-numeric sequence element or a
	// non-invocable destructor callback.
	ErrBadType = errors.New("graphbind: unexpected value type")

	// ErrBadValue is returned for out-of-range indices, malformed matrices,
	// and invalid mode arguments.
	ErrBadValue = errors.New("graphbind: invalid value")

	// ErrIO is returned for file open, read, and write failures.
	ErrIO = errors.New("graphbind: i/o failure")

	// ErrAlgorithm wraps an opaque failure reported by the graph library.
	ErrAlgorithm = errors.New("graphbind: graph library failure")
)

// AlgorithmError wraps an opaque library failure with the name of the
// operation that triggered it.
func AlgorithmError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrAlgorithm, op, err)
}
