package elem

import "fmt"

// Flag selects how an inserted value is stored.
type Flag int

const (
	// Static stores a reference to the caller's value. The caller
	// must keep the value alive, and unchanged if ordering matters,
	// for as long as the container refers to it.
	Static Flag = iota

	// Dynamic stores a copy of the value in storage obtained from the
	// registry's allocator. The container releases the copy when the
	// element is removed or the container is destroyed.
	Dynamic
)

// Valid reports whether f is Static or Dynamic.
func (f Flag) Valid() bool {
	return f == Static || f == Dynamic
}

func (f Flag) String() string {
	switch f {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}
