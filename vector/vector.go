// Package vector implements a contiguous, growable sequence of
// elements whose behavior is supplied by an elem.Registry.
package vector

import (
	"fmt"
	"io"
	"iter"
	"math/bits"
	"slices"
	"sort"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/rogpeppe/gencontainer/elem"
)

// maxAlloc bounds the backing storage a Vector will request.
// Larger requests fail with elem.ErrAllocation.
const maxAlloc = 1 << 46

// Vector holds a slice-backed sequence of elements. Each element is
// either borrowed from the caller or owned by the vector, as decided
// by the flag it was inserted with.
//
// Operations at the back are amortized O(1); operations at the front
// shift every element and are O(n).
//
// A Vector must be created with New or NewFunc. It is not safe for
// concurrent use; callers that share one must lock around it.
type Vector[T any] struct {
	// buf holds the backing slice. Its length is the
	// capacity of the vector.
	buf []elem.Ref[T]

	// n holds the number of elements in the vector.
	n int

	flag elem.Flag
	reg  *elem.Registry[T]
}

// New returns an empty vector with the default registry.
// The flag is used by InsertAt.
func New[T any](flag elem.Flag) *Vector[T] {
	return NewFunc(flag, elem.Funcs[T]{})
}

// NewFunc returns an empty vector with a registry built from f.
func NewFunc[T any](flag elem.Flag, f elem.Funcs[T]) *Vector[T] {
	return &Vector[T]{
		flag: flag,
		reg:  elem.NewRegistry(f),
	}
}

// Registry returns the vector's registry. Its setters may be used
// to change the behavior of later operations.
func (v *Vector[T]) Registry() *elem.Registry[T] {
	return v.reg
}

// Flag returns the ownership flag used by InsertAt.
func (v *Vector[T]) Flag() elem.Flag {
	return v.flag
}

// Len returns the number of elements in the vector.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.n
}

// Cap returns the capacity of the backing storage.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return len(v.buf)
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.Len() == 0
}

// Resize reallocates the backing storage to hold exactly n elements.
// The first min(v.Len(), n) elements are kept; any beyond n are
// removed and released.
func (v *Vector[T]) Resize(n int) error {
	if err := v.check(); err != nil {
		return err
	}
	if n < 0 {
		return errors.Wrapf(elem.ErrOutOfRange, "resize to %d", n)
	}
	return v.resize(n)
}

// Reserve ensures that the vector can hold n elements
// without growing its storage.
func (v *Vector[T]) Reserve(n int) error {
	if err := v.check(); err != nil {
		return err
	}
	return v.ensureCap(n)
}

// InsertSorted inserts *p before the first element that compares
// greater than it, so equal elements keep their insertion order.
// It assumes the vector is already sorted by the registry ordering.
func (v *Vector[T]) InsertSorted(p *T, flag elem.Flag) error {
	if err := v.check(); err != nil {
		return err
	}
	ref, err := v.reg.Acquire(p, flag)
	if err != nil {
		return err
	}
	x := *ref.Ptr()
	i := sort.Search(v.n, func(i int) bool {
		return v.reg.Compare(*v.buf[i].Ptr(), x) > 0
	})
	return v.insert(i, ref)
}

// InsertAt stores *p at index i using the vector's own flag,
// replacing and releasing the element already there. When i equals
// v.Len() the element is appended. It fails with elem.ErrOutOfRange
// when i is beyond the end.
func (v *Vector[T]) InsertAt(p *T, i int) error {
	if err := v.check(); err != nil {
		return err
	}
	if i < 0 || i > v.n {
		return errors.Wrapf(elem.ErrOutOfRange, "insert at %d of %d", i, v.n)
	}
	ref, err := v.reg.Acquire(p, v.flag)
	if err != nil {
		return err
	}
	if i == v.n {
		return v.insert(i, ref)
	}
	old := v.buf[i]
	v.buf[i] = ref
	old.Release()
	return nil
}

// PushBack appends *p to the vector.
func (v *Vector[T]) PushBack(p *T, flag elem.Flag) error {
	if err := v.check(); err != nil {
		return err
	}
	ref, err := v.reg.Acquire(p, flag)
	if err != nil {
		return err
	}
	return v.insert(v.n, ref)
}

// PushFront inserts *p at the start of the vector, moving every
// other element up by one.
func (v *Vector[T]) PushFront(p *T, flag elem.Flag) error {
	if err := v.check(); err != nil {
		return err
	}
	ref, err := v.reg.Acquire(p, flag)
	if err != nil {
		return err
	}
	return v.insert(0, ref)
}

// PopBack removes and releases the last element.
func (v *Vector[T]) PopBack() error {
	ref, err := v.TakeBack()
	if err != nil {
		return err
	}
	ref.Release()
	return nil
}

// PopFront removes and releases the first element, moving every
// other element down by one.
func (v *Vector[T]) PopFront() error {
	return v.RemoveAt(0)
}

// RemoveAt removes and releases the element at index i.
func (v *Vector[T]) RemoveAt(i int) error {
	if err := v.check(); err != nil {
		return err
	}
	if v.n == 0 {
		return elem.ErrEmpty
	}
	if i < 0 || i >= v.n {
		return errors.Wrapf(elem.ErrOutOfRange, "remove at %d of %d", i, v.n)
	}
	ref := v.buf[i]
	copy(v.buf[i:], v.buf[i+1:v.n])
	v.n--
	v.buf[v.n] = elem.Ref[T]{}
	ref.Release()
	return nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (*T, error) {
	return v.At(0)
}

// Back returns the last element.
func (v *Vector[T]) Back() (*T, error) {
	return v.At(v.Len() - 1)
}

// At returns the stored element at index i. The returned
// pointer refers to the stored value; it is not a copy.
func (v *Vector[T]) At(i int) (*T, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if v.n == 0 {
		return nil, elem.ErrEmpty
	}
	if i < 0 || i >= v.n {
		return nil, errors.Wrapf(elem.ErrOutOfRange, "index %d of %d", i, v.n)
	}
	return v.buf[i].Ptr(), nil
}

// Get is like At but panics if i is out of range.
func (v *Vector[T]) Get(i int) *T {
	if i < 0 || i >= v.Len() {
		panic("vector.Vector.Get called with index out of range")
	}
	return v.buf[i].Ptr()
}

// Swap exchanges the elements at indexes i and j.
// It panics if either is out of range.
func (v *Vector[T]) Swap(i, j int) {
	if i < 0 || i >= v.Len() || j < 0 || j >= v.Len() {
		panic("vector.Vector.Swap called with index out of range")
	}
	v.buf[i], v.buf[j] = v.buf[j], v.buf[i]
}

// IndexOf returns the index of the first element equal to x
// according to the registry, or -1 if there is none.
func (v *Vector[T]) IndexOf(x T) int {
	if v.check() != nil {
		return -1
	}
	for i := range v.n {
		if v.reg.Equal(*v.buf[i].Ptr(), x) {
			return i
		}
	}
	return -1
}

// Find returns the first element equal to x.
func (v *Vector[T]) Find(x T) (*T, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	i := v.IndexOf(x)
	if i < 0 {
		return nil, elem.ErrNotFound
	}
	return v.buf[i].Ptr(), nil
}

// Delete removes and releases the first element equal to x.
func (v *Vector[T]) Delete(x T) error {
	if err := v.check(); err != nil {
		return err
	}
	i := v.IndexOf(x)
	if i < 0 {
		return elem.ErrNotFound
	}
	return v.RemoveAt(i)
}

// Sort sorts the vector by the registry ordering.
// Equal elements keep their relative order.
func (v *Vector[T]) Sort() error {
	if err := v.check(); err != nil {
		return err
	}
	v.sort(v.reg.Compare)
	return nil
}

// RSort sorts the vector by the registry's reverse ordering.
// Equal elements keep their relative order.
func (v *Vector[T]) RSort() error {
	if err := v.check(); err != nil {
		return err
	}
	v.sort(v.reg.RCompare)
	return nil
}

func (v *Vector[T]) sort(cmp func(a, b T) int) {
	slices.SortStableFunc(v.buf[:v.n], func(a, b elem.Ref[T]) int {
		return cmp(*a.Ptr(), *b.Ptr())
	})
}

// TakeBack removes the last element without releasing it and
// returns it. The caller becomes responsible for the Ref.
func (v *Vector[T]) TakeBack() (elem.Ref[T], error) {
	if err := v.check(); err != nil {
		return elem.Ref[T]{}, err
	}
	if v.n == 0 {
		return elem.Ref[T]{}, elem.ErrEmpty
	}
	v.n--
	ref := v.buf[v.n]
	v.buf[v.n] = elem.Ref[T]{}
	return ref, nil
}

// PutBack appends a Ref taken from another container. The vector
// takes over responsibility for releasing it.
func (v *Vector[T]) PutBack(ref elem.Ref[T]) error {
	if err := v.check(); err != nil {
		return err
	}
	if ref.Ptr() == nil {
		return errors.Wrap(elem.ErrNullArgument, "empty ref")
	}
	return v.insert(v.n, ref)
}

// Clear removes and releases every element. The capacity is kept.
func (v *Vector[T]) Clear() error {
	if err := v.check(); err != nil {
		return err
	}
	elem.ReleaseAll(v.buf[:v.n])
	v.n = 0
	return nil
}

// Destroy releases every element and the backing storage.
// Every later operation fails with elem.ErrNullArgument.
func (v *Vector[T]) Destroy() error {
	if err := v.Clear(); err != nil {
		return err
	}
	v.buf = nil
	v.reg = nil
	return nil
}

// Values returns a copy of the elements as a slice.
func (v *Vector[T]) Values() []T {
	vals := make([]T, 0, v.Len())
	for _, p := range v.All() {
		vals = append(vals, *p)
	}
	return vals
}

// All returns an iterator over the index and stored element of
// every element in the vector. The vector must not be modified
// during iteration.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range v.Len() {
			if !yield(i, v.buf[i].Ptr()) {
				return
			}
		}
	}
}

// Print writes every element to w with the registered print function.
func (v *Vector[T]) Print(w io.Writer) error {
	if err := v.check(); err != nil {
		return err
	}
	for _, p := range v.All() {
		v.reg.Print(w, *p)
	}
	return nil
}

// Dump is like Print but also shows the vector's layout and
// the ownership of each element.
func (v *Vector[T]) Dump(w io.Writer) error {
	if err := v.check(); err != nil {
		return err
	}
	fmt.Fprintf(w, "vector len %d cap %d elemsize %d\n", v.n, len(v.buf), v.reg.ElemSize())
	for i := range v.n {
		fmt.Fprintf(w, "[%d] %v: ", i, v.buf[i].Flag())
		v.reg.Print(w, *v.buf[i].Ptr())
	}
	return nil
}

func (v *Vector[T]) check() error {
	if v == nil || v.reg == nil {
		return errors.Wrap(elem.ErrNullArgument, "vector not initialized")
	}
	return nil
}

// insert inserts ref at index i, growing the storage if needed.
// If the storage cannot grow, ref is released.
func (v *Vector[T]) insert(i int, ref elem.Ref[T]) error {
	if err := v.ensureCap(v.n + 1); err != nil {
		ref.Release()
		return err
	}
	copy(v.buf[i+1:v.n+1], v.buf[i:v.n])
	v.buf[i] = ref
	v.n++
	return nil
}

// ensureCap resizes the storage if needed to ensure that the
// capacity is at least n. Capacities are powers of two, so growth
// at least doubles the storage.
func (v *Vector[T]) ensureCap(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.resize(1 << bits.Len(uint(n-1)))
}

func (v *Vector[T]) resize(newCap int) error {
	if newCap == len(v.buf) {
		return nil
	}
	if uint64(newCap) > maxAlloc/uint64(unsafe.Sizeof(elem.Ref[T]{})) {
		return errors.Wrapf(elem.ErrAllocation, "cannot allocate %d elements", newCap)
	}
	buf := make([]elem.Ref[T], newCap)
	copy(buf, v.buf[:min(v.n, newCap)])
	if newCap < v.n {
		elem.ReleaseAll(v.buf[newCap:v.n])
		v.n = newCap
	}
	v.buf = buf
	return nil
}
