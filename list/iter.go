package list

import (
	"github.com/cockroachdb/errors"

	"github.com/rogpeppe/gencontainer/elem"
)

// Iter is a position in a List. It is either on an element or at
// the end of the list.
//
// An Iter is only valid while the list is modified through its own
// Extract method. Any other structural change (a push, pop, sort,
// clear, or Extract on a different Iter) invalidates it, and
// further use panics.
type Iter[T any] struct {
	l       *List[T]
	cur     int
	version int
}

// Begin returns an iterator positioned on the first element,
// or at the end if the list is empty.
func (l *List[T]) Begin() *Iter[T] {
	return l.iterAt(l.head)
}

// Last returns an iterator positioned on the last element,
// or at the end if the list is empty.
func (l *List[T]) Last() *Iter[T] {
	return l.iterAt(l.tail)
}

func (l *List[T]) iterAt(i int) *Iter[T] {
	if l.check() != nil {
		i = nilIndex
	}
	return &Iter[T]{
		l:       l,
		cur:     i,
		version: l.version,
	}
}

// Valid reports whether it is positioned on an element.
func (it *Iter[T]) Valid() bool {
	it.checkVersion()
	return it.cur != nilIndex
}

// Value returns the element it is positioned on,
// or nil at the end of the list.
func (it *Iter[T]) Value() *T {
	if !it.Valid() {
		return nil
	}
	return it.l.nodes[it.cur].ref.Ptr()
}

// Next moves it to the following element and
// reports whether there is one.
func (it *Iter[T]) Next() bool {
	if it.Valid() {
		it.cur = it.l.nodes[it.cur].next
	}
	return it.cur != nilIndex
}

// Prev moves it to the preceding element and
// reports whether there is one.
func (it *Iter[T]) Prev() bool {
	if it.Valid() {
		it.cur = it.l.nodes[it.cur].prev
	}
	return it.cur != nilIndex
}

// Extract removes the element it is positioned on, releasing the
// payload if the list owns it, and recycles the node.
//
// The iterator moves to the removed element's successor and Extract
// returns true. If the removed element was the last one, the
// iterator moves to the new last element, or to the end if the
// list is now empty, and Extract returns false. A loop that removes
// elements while walking forward should therefore stop when Extract
// returns false:
//
//	for it := l.Begin(); it.Valid(); {
//		if !remove(*it.Value()) {
//			it.Next()
//			continue
//		}
//		if more, _ := it.Extract(); !more {
//			break
//		}
//	}
//
// Extract fails with elem.ErrEmpty on an empty list and
// elem.ErrOutOfRange when it is at the end.
func (it *Iter[T]) Extract() (bool, error) {
	if it.l.check() != nil {
		return false, errors.Wrap(elem.ErrNullArgument, "extract from destroyed list")
	}
	if !it.Valid() {
		if it.l.n == 0 {
			return false, elem.ErrEmpty
		}
		return false, errors.Wrap(elem.ErrOutOfRange, "extract at end of list")
	}
	i := it.cur
	next := it.l.nodes[i].next
	it.l.remove(i)
	it.version = it.l.version
	if next != nilIndex {
		it.cur = next
		return true, nil
	}
	it.cur = it.l.tail
	return false, nil
}

func (it *Iter[T]) checkVersion() {
	if it.version != it.l.version {
		panic("list.Iter used after the list was modified")
	}
}
