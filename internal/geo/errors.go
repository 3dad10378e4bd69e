package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle is returned when a handle does not name a node of the collection.
	ErrInvalidHandle = errors.New("geo: invalid handle")

	// ErrOwnership is returned when a node would get a second owner.
	ErrOwnership = errors.New("geo: node already owned")

	// ErrDestroyed is returned by every operation on a destroyed collection.
	ErrDestroyed = errors.New("geo: feature collection destroyed")
)

// AllocError indicates the allocator refused a node.
type AllocError struct {
	Err  error
	Node Node
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("geo: allocate %s: %v", e.Node, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

// WriteError indicates the output sink rejected a write during serialization.
// Bytes written before the failure stay in the sink.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("geo: write: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FormatError indicates a malformed template passed to Format.
type FormatError struct {
	Template string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("geo: format %q: %s", e.Template, e.Reason)
}
