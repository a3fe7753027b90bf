// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap provides a priority container built on a vector.Vector.
// A heap is a tree with the property that each node is the
// first-ordered node in its subtree, so the root, at index 0,
// is the element that Pop will remove next.
//
// Ordering comes from the registry: a Min heap orders by Compare
// and yields the least element first; a Max heap orders by
// RCompare and yields the greatest element first.
package heap

import (
	"fmt"
	"io"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/rogpeppe/gencontainer/elem"
	"github.com/rogpeppe/gencontainer/vector"
)

// Order selects which end of the registry ordering is at the root.
type Order int

const (
	// Min puts the least element, by Compare, at the root.
	Min Order = iota

	// Max puts the greatest element, by RCompare, at the root.
	Max
)

func (o Order) String() string {
	switch o {
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Heap implements a binary heap. Ties between elements are broken
// only by the registered comparator, not by insertion order.
//
// A Heap must be created with New or NewFunc. It is not safe for
// concurrent use.
type Heap[T any] struct {
	vec   *vector.Vector[T]
	order Order
}

// New returns an empty heap with the default registry.
func New[T any](order Order) *Heap[T] {
	return NewFunc(order, elem.Funcs[T]{})
}

// NewFunc returns an empty heap with a registry built from f.
func NewFunc[T any](order Order, f elem.Funcs[T]) *Heap[T] {
	return &Heap[T]{
		vec:   vector.NewFunc(elem.Dynamic, f),
		order: order,
	}
}

// Registry returns the heap's registry.
func (h *Heap[T]) Registry() *elem.Registry[T] {
	return h.vec.Registry()
}

// Order returns the heap's ordering.
func (h *Heap[T]) Order() Order {
	return h.order
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	if h == nil {
		return 0
	}
	return h.vec.Len()
}

// Empty reports whether the heap holds no elements.
func (h *Heap[T]) Empty() bool {
	return h.Len() == 0
}

// Insert adds *p to the heap.
// The complexity is O(log n) where n = h.Len().
func (h *Heap[T]) Insert(p *T, flag elem.Flag) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := h.vec.PushBack(p, flag); err != nil {
		return err
	}
	h.up(h.vec.Len() - 1)
	return nil
}

// Front returns the element at the root: the one the next
// Pop will remove.
func (h *Heap[T]) Front() (*T, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	return h.vec.Front()
}

// Pop removes the element at the root, releasing it if the heap
// owns it. The complexity is O(log n) where n = h.Len().
func (h *Heap[T]) Pop() error {
	if err := h.check(); err != nil {
		return err
	}
	n := h.vec.Len() - 1
	if n < 0 {
		return elem.ErrEmpty
	}
	h.vec.Swap(0, n)
	h.down(0, n)
	return h.vec.PopBack()
}

// Merge moves every element of src into h and leaves src empty.
// Elements are transferred, not copied: owned elements are
// still released through the deallocator that allocated them.
// The complexity is O(n) where n = h.Len() + src.Len().
func (h *Heap[T]) Merge(src *Heap[T]) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := src.check(); err != nil {
		return err
	}
	if h == src {
		return errors.New("cannot merge a heap into itself")
	}
	if err := h.vec.Reserve(h.vec.Len() + src.vec.Len()); err != nil {
		return err
	}
	for src.vec.Len() > 0 {
		ref, err := src.vec.TakeBack()
		if err != nil {
			return err
		}
		if err := h.vec.PutBack(ref); err != nil {
			return err
		}
	}
	h.Init()
	return nil
}

// Init re-establishes the heap order. It need only be called after
// borrowed elements have been changed in place.
// The complexity is O(n) where n = h.Len().
func (h *Heap[T]) Init() {
	n := h.Len()
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// Clear removes and releases every element.
func (h *Heap[T]) Clear() error {
	if err := h.check(); err != nil {
		return err
	}
	return h.vec.Clear()
}

// Destroy releases every element and the backing storage.
// Every later operation fails with elem.ErrNullArgument.
func (h *Heap[T]) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	return h.vec.Destroy()
}

// All returns an iterator over the stored elements in heap
// order, which is not sorted order. The heap must not be
// modified during iteration.
func (h *Heap[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		if h == nil {
			return
		}
		for _, p := range h.vec.All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Print writes every element, in heap order, to w with the
// registered print function.
func (h *Heap[T]) Print(w io.Writer) error {
	if err := h.check(); err != nil {
		return err
	}
	return h.vec.Print(w)
}

// Dump is like Print but also shows the heap's ordering and the
// ownership of each element.
func (h *Heap[T]) Dump(w io.Writer) error {
	if err := h.check(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v heap ", h.order)
	return h.vec.Dump(w)
}

func (h *Heap[T]) check() error {
	if h == nil || h.vec == nil || h.vec.Registry() == nil {
		return errors.Wrap(elem.ErrNullArgument, "heap not initialized")
	}
	return nil
}

func (h *Heap[T]) less(i, j int) bool {
	reg := h.vec.Registry()
	a, b := *h.vec.Get(i), *h.vec.Get(j)
	if h.order == Max {
		return reg.RCompare(a, b) < 0
	}
	return reg.Compare(a, b) < 0
}

func (h *Heap[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.vec.Swap(i, j)
		j = i
	}
}

func (h *Heap[T]) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.vec.Swap(i, j)
		i = j
	}
	return i > i0
}
