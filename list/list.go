// Package list implements a doubly linked list whose nodes are
// recycled through a free pool instead of being released when
// elements are removed.
//
// Nodes live in an arena and are linked by index, so a recycled
// node can never be reached through a stale pointer.
package list

import (
	"fmt"
	"io"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/rogpeppe/gencontainer/elem"
)

const nilIndex = -1

type node[T any] struct {
	ref        elem.Ref[T]
	prev, next int
}

// List is a doubly linked sequence of elements.
//
// Removing an element releases its payload if the list owns it, but
// the node itself goes to a free pool and is reused by the next
// insertion. Only Destroy gives node storage back.
//
// A List must be created with New or NewFunc. It is not safe for
// concurrent use.
type List[T any] struct {
	// nodes holds every node, whether live or pooled.
	nodes []node[T]

	// free holds the indexes of pooled nodes.
	free []int

	head, tail int
	n          int

	// version changes on every structural modification.
	// It is used to detect stale iterators.
	version int

	flag elem.Flag
	reg  *elem.Registry[T]
}

// New returns an empty list with the default registry.
func New[T any](flag elem.Flag) *List[T] {
	return NewFunc(flag, elem.Funcs[T]{})
}

// NewFunc returns an empty list with a registry built from f.
func NewFunc[T any](flag elem.Flag, f elem.Funcs[T]) *List[T] {
	return &List[T]{
		head: nilIndex,
		tail: nilIndex,
		flag: flag,
		reg:  elem.NewRegistry(f),
	}
}

// Registry returns the list's registry.
func (l *List[T]) Registry() *elem.Registry[T] {
	return l.reg
}

// Flag returns the flag the list was created with.
func (l *List[T]) Flag() elem.Flag {
	return l.flag
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool {
	return l.Len() == 0
}

// Pooled returns the number of nodes waiting in the free pool.
func (l *List[T]) Pooled() int {
	if l == nil {
		return 0
	}
	return len(l.free)
}

// PushFront inserts *p at the start of the list.
func (l *List[T]) PushFront(p *T, flag elem.Flag) error {
	i, err := l.newNode(p, flag)
	if err != nil {
		return err
	}
	l.linkBefore(i, l.head)
	return nil
}

// PushBack appends *p to the end of the list.
func (l *List[T]) PushBack(p *T, flag elem.Flag) error {
	i, err := l.newNode(p, flag)
	if err != nil {
		return err
	}
	l.linkBefore(i, nilIndex)
	return nil
}

// Insert inserts *p before the first element that compares greater
// than it and returns the stored element. If the list is sorted it
// stays sorted, with equal elements in insertion order.
func (l *List[T]) Insert(p *T, flag elem.Flag) (*T, error) {
	i, err := l.newNode(p, flag)
	if err != nil {
		return nil, err
	}
	x := l.value(i)
	at := l.head
	for at != nilIndex && l.reg.Compare(l.value(at), x) <= 0 {
		at = l.nodes[at].next
	}
	l.linkBefore(i, at)
	return l.nodes[i].ref.Ptr(), nil
}

// PopFront removes the first element.
func (l *List[T]) PopFront() error {
	if err := l.checkNonEmpty(); err != nil {
		return err
	}
	l.remove(l.head)
	return nil
}

// PopBack removes the last element.
func (l *List[T]) PopBack() error {
	if err := l.checkNonEmpty(); err != nil {
		return err
	}
	l.remove(l.tail)
	return nil
}

// Front returns the first element.
func (l *List[T]) Front() (*T, error) {
	if err := l.checkNonEmpty(); err != nil {
		return nil, err
	}
	return l.nodes[l.head].ref.Ptr(), nil
}

// Back returns the last element.
func (l *List[T]) Back() (*T, error) {
	if err := l.checkNonEmpty(); err != nil {
		return nil, err
	}
	return l.nodes[l.tail].ref.Ptr(), nil
}

// Find returns the first element that compares equal to x.
func (l *List[T]) Find(x T) (*T, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	i := l.find(x)
	if i == nilIndex {
		return nil, elem.ErrNotFound
	}
	return l.nodes[i].ref.Ptr(), nil
}

// Delete removes the first element that compares equal to x.
func (l *List[T]) Delete(x T) error {
	if err := l.check(); err != nil {
		return err
	}
	i := l.find(x)
	if i == nilIndex {
		return elem.ErrNotFound
	}
	l.remove(i)
	return nil
}

// Sort sorts the list by the registry ordering. Equal
// elements keep their relative order.
func (l *List[T]) Sort() error {
	if err := l.check(); err != nil {
		return err
	}
	l.sort(l.reg.Compare)
	return nil
}

// RSort sorts the list by the registry's reverse ordering. Equal
// elements keep their relative order.
func (l *List[T]) RSort() error {
	if err := l.check(); err != nil {
		return err
	}
	l.sort(l.reg.RCompare)
	return nil
}

// Clear removes every element, releasing owned payloads, and moves
// all the nodes to the free pool.
func (l *List[T]) Clear() error {
	if err := l.check(); err != nil {
		return err
	}
	for i := l.head; i != nilIndex; {
		next := l.nodes[i].next
		l.recycle(i)
		i = next
	}
	l.head, l.tail, l.n = nilIndex, nilIndex, 0
	l.version++
	return nil
}

// Destroy releases every owned payload and all node storage,
// including the free pool. Every later operation fails with
// elem.ErrNullArgument.
func (l *List[T]) Destroy() error {
	if err := l.Clear(); err != nil {
		return err
	}
	l.nodes = nil
	l.free = nil
	l.reg = nil
	return nil
}

// Values returns a copy of the elements as a slice.
func (l *List[T]) Values() []T {
	vals := make([]T, 0, l.Len())
	for p := range l.All() {
		vals = append(vals, *p)
	}
	return vals
}

// All returns an iterator over the stored elements from front to
// back. The list must not be modified during iteration; use Iter
// to remove elements while walking the list.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		if l.check() != nil {
			return
		}
		for i := l.head; i != nilIndex; i = l.nodes[i].next {
			if !yield(l.nodes[i].ref.Ptr()) {
				return
			}
		}
	}
}

// Print writes every element to w with the registered print function.
func (l *List[T]) Print(w io.Writer) error {
	if err := l.check(); err != nil {
		return err
	}
	for p := range l.All() {
		l.reg.Print(w, *p)
	}
	return nil
}

// Dump is like Print but also shows the node layout and the
// ownership of each element.
func (l *List[T]) Dump(w io.Writer) error {
	if err := l.check(); err != nil {
		return err
	}
	fmt.Fprintf(w, "list len %d pooled %d elemsize %d\n", l.n, len(l.free), l.reg.ElemSize())
	for i := l.head; i != nilIndex; i = l.nodes[i].next {
		fmt.Fprintf(w, "node %d %v: ", i, l.nodes[i].ref.Flag())
		l.reg.Print(w, l.value(i))
	}
	return nil
}

func (l *List[T]) check() error {
	if l == nil || l.reg == nil {
		return errors.Wrap(elem.ErrNullArgument, "list not initialized")
	}
	return nil
}

func (l *List[T]) checkNonEmpty() error {
	if err := l.check(); err != nil {
		return err
	}
	if l.n == 0 {
		return elem.ErrEmpty
	}
	return nil
}

func (l *List[T]) value(i int) T {
	return *l.nodes[i].ref.Ptr()
}

func (l *List[T]) find(x T) int {
	for i := l.head; i != nilIndex; i = l.nodes[i].next {
		if l.reg.Equal(l.value(i), x) {
			return i
		}
	}
	return nilIndex
}

// newNode returns an unlinked node holding *p, taken from
// the free pool when possible.
func (l *List[T]) newNode(p *T, flag elem.Flag) (int, error) {
	if err := l.check(); err != nil {
		return nilIndex, err
	}
	ref, err := l.reg.Acquire(p, flag)
	if err != nil {
		return nilIndex, err
	}
	n := node[T]{
		ref:  ref,
		prev: nilIndex,
		next: nilIndex,
	}
	if k := len(l.free); k > 0 {
		i := l.free[k-1]
		l.free = l.free[:k-1]
		l.nodes[i] = n
		return i, nil
	}
	l.nodes = append(l.nodes, n)
	return len(l.nodes) - 1, nil
}

// linkBefore links the unlinked node i into the chain before
// node at, or at the end if at is nilIndex.
func (l *List[T]) linkBefore(i, at int) {
	prev := l.tail
	if at != nilIndex {
		prev = l.nodes[at].prev
		l.nodes[at].prev = i
	} else {
		l.tail = i
	}
	if prev != nilIndex {
		l.nodes[prev].next = i
	} else {
		l.head = i
	}
	l.nodes[i].prev = prev
	l.nodes[i].next = at
	l.n++
	l.version++
}

// remove unlinks node i, releases its payload and recycles it.
func (l *List[T]) remove(i int) {
	nd := &l.nodes[i]
	if nd.prev != nilIndex {
		l.nodes[nd.prev].next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != nilIndex {
		l.nodes[nd.next].prev = nd.prev
	} else {
		l.tail = nd.prev
	}
	l.recycle(i)
	l.n--
	l.version++
}

// recycle releases the payload of node i and puts the
// node in the free pool.
func (l *List[T]) recycle(i int) {
	nd := &l.nodes[i]
	nd.ref.Release()
	nd.prev, nd.next = nilIndex, nilIndex
	l.free = append(l.free, i)
}
