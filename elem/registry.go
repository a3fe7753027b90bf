package elem

import (
	"io"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Funcs holds the behavior functions used to build a Registry.
// Any nil function, and a zero ElemSize, takes the default
// documented on the corresponding Registry setter.
type Funcs[T any] struct {
	ElemSize uintptr
	Alloc    func() *T
	Dealloc  func(*T)
	Compare  func(a, b T) int
	RCompare func(a, b T) int
	Print    func(w io.Writer, v T)
	Copy     func(dst, src *T) *T
}

// Registry holds the customization functions for a single
// container instance. A container makes its own Registry from the
// Funcs it is given, so registries are never shared.
//
// Replacing a function affects only later operations; values
// already stored are never reprocessed.
type Registry[T any] struct {
	size     uintptr
	alloc    func() *T
	dealloc  func(*T)
	compare  func(a, b T) int
	rcompare func(a, b T) int
	print    func(w io.Writer, v T)
	copy     func(dst, src *T) *T
}

// NewRegistry returns a registry holding the functions in f.
func NewRegistry[T any](f Funcs[T]) *Registry[T] {
	r := &Registry[T]{
		alloc:    f.Alloc,
		dealloc:  f.Dealloc,
		compare:  f.Compare,
		rcompare: f.RCompare,
		print:    f.Print,
		copy:     f.Copy,
	}
	r.SetElemSize(f.ElemSize)
	return r
}

// Funcs returns the functions currently installed in r.
// Functions that were never set are returned as nil.
func (r *Registry[T]) Funcs() Funcs[T] {
	return Funcs[T]{
		ElemSize: r.size,
		Alloc:    r.alloc,
		Dealloc:  r.dealloc,
		Compare:  r.compare,
		RCompare: r.rcompare,
		Print:    r.print,
		Copy:     r.copy,
	}
}

// ElemSize returns the declared size of one element.
func (r *Registry[T]) ElemSize() uintptr {
	return r.size
}

// SetElemSize sets the declared element size. The size bounds the
// bytes examined by the default comparator; zero restores
// the default of unsafe.Sizeof(T).
func (r *Registry[T]) SetElemSize(n uintptr) {
	if n == 0 {
		var v T
		n = unsafe.Sizeof(v)
	}
	r.size = n
}

// SetAlloc sets the function used to obtain storage for one
// Dynamic element. It should return nil if storage is not available.
// The default is new(T).
func (r *Registry[T]) SetAlloc(f func() *T) {
	r.alloc = f
}

// SetDealloc sets the function used to release storage obtained
// from the allocator. The default zeroes the value so that
// it no longer refers to anything.
func (r *Registry[T]) SetDealloc(f func(*T)) {
	r.dealloc = f
}

// SetCompare sets the ordering function. It must return a negative
// number, zero or a positive number when a sorts before, equal to or
// after b. The default compares the first ElemSize bytes of the
// two values' memory.
func (r *Registry[T]) SetCompare(f func(a, b T) int) {
	r.compare = f
}

// SetRCompare sets the reverse ordering function, which must be the
// exact inverse of the ordering function. The default is Compare
// with its arguments swapped.
func (r *Registry[T]) SetRCompare(f func(a, b T) int) {
	r.rcompare = f
}

// SetPrint sets the diagnostic formatter. The default prints nothing.
func (r *Registry[T]) SetPrint(f func(w io.Writer, v T)) {
	r.print = f
}

// SetCopy sets the function used to copy a value into
// container-owned storage. It returns dst, or nil on failure.
// The default is a plain assignment.
func (r *Registry[T]) SetCopy(f func(dst, src *T) *T) {
	r.copy = f
}

// Compare compares a and b with the registered ordering.
func (r *Registry[T]) Compare(a, b T) int {
	if r.compare == nil {
		return r.compareBytes(a, b)
	}
	return r.compare(a, b)
}

// RCompare compares a and b with the registered reverse ordering.
func (r *Registry[T]) RCompare(a, b T) int {
	if r.rcompare == nil {
		return r.Compare(b, a)
	}
	return r.rcompare(a, b)
}

// Equal reports whether Compare considers a and b equal.
func (r *Registry[T]) Equal(a, b T) bool {
	return r.Compare(a, b) == 0
}

// Print writes v to w with the registered formatter.
func (r *Registry[T]) Print(w io.Writer, v T) {
	if r.print != nil {
		r.print(w, v)
	}
}

// Acquire resolves p against the ownership flag. A Static flag
// yields a reference to *p itself; a Dynamic flag allocates fresh
// storage and copies *p into it.
//
// On failure nothing is retained: storage allocated before a failing
// copy is released before Acquire returns.
func (r *Registry[T]) Acquire(p *T, flag Flag) (Ref[T], error) {
	if p == nil {
		return Ref[T]{}, errors.Wrap(ErrNullArgument, "nil element")
	}
	switch flag {
	case Static:
		return Ref[T]{p: p}, nil
	case Dynamic:
	default:
		return Ref[T]{}, errors.Wrapf(ErrNullArgument, "invalid ownership flag %v", flag)
	}
	free := r.releaser()
	dst := r.allocate()
	if dst == nil {
		return Ref[T]{}, errors.Wrapf(ErrAllocation, "cannot allocate %d byte element", r.size)
	}
	if r.copyInto(dst, p) == nil {
		free(dst)
		return Ref[T]{}, errors.Wrap(ErrAllocation, "copy into owned storage failed")
	}
	return Ref[T]{p: dst, free: free}, nil
}

func (r *Registry[T]) allocate() *T {
	if r.alloc == nil {
		return new(T)
	}
	return r.alloc()
}

// releaser returns the deallocator in effect now. It is captured by
// each owned Ref so that storage always goes back to the
// deallocator paired with the allocator that produced it.
func (r *Registry[T]) releaser() func(*T) {
	if r.dealloc == nil {
		return zero[T]
	}
	return r.dealloc
}

func (r *Registry[T]) copyInto(dst, src *T) *T {
	if r.copy == nil {
		*dst = *src
		return dst
	}
	return r.copy(dst, src)
}

func (r *Registry[T]) compareBytes(a, b T) int {
	n := min(r.size, unsafe.Sizeof(a))
	return CompareBytes(
		unsafe.Slice((*byte)(unsafe.Pointer(&a)), n),
		unsafe.Slice((*byte)(unsafe.Pointer(&b)), n),
	)
}

func zero[T any](p *T) {
	*p = *new(T)
}
