package elem

import "github.com/cockroachdb/errors"

// Errors returned by the containers. Operations wrap them with
// context, so they should be tested for with errors.Is.
var (
	// ErrNullArgument is returned when a container or a required
	// element pointer is nil, or when the container has been destroyed.
	ErrNullArgument = errors.New("null argument")

	// ErrEmpty is returned by pop and peek operations on an empty container.
	ErrEmpty = errors.New("container is empty")

	// ErrOutOfRange is returned when an index is outside the container.
	ErrOutOfRange = errors.New("index out of range")

	// ErrAllocation is returned when the registered allocator
	// fails to provide storage. It is the only error that does
	// not indicate caller misuse.
	ErrAllocation = errors.New("allocation failure")

	// ErrNotFound is returned when a find or delete finds no match.
	ErrNotFound = errors.New("element not found")
)
