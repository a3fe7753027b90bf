// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/gencontainer/elem"
)

func newIntHeap(order Order, items ...int) *Heap[int] {
	h := NewFunc(order, elem.OrderedFuncs[int]())
	for _, x := range items {
		if err := h.Insert(&x, elem.Dynamic); err != nil {
			panic(err)
		}
	}
	return h
}

func at(h *Heap[int], i int) int {
	return *h.vec.Get(i)
}

func verifyHeap(t *testing.T, h *Heap[int], i int) {
	t.Helper()
	n := h.Len()
	j1 := 2*i + 1
	j2 := 2*i + 2
	if j1 < n {
		if h.less(j1, i) {
			t.Errorf("heap invariant invalidated [%d] = %d > [%d] = %d", i, at(h, i), j1, at(h, j1))
			return
		}
		verifyHeap(t, h, j1)
	}
	if j2 < n {
		if h.less(j2, i) {
			t.Errorf("heap invariant invalidated [%d] = %d > [%d] = %d", i, at(h, i), j1, at(h, j2))
			return
		}
		verifyHeap(t, h, j2)
	}
}

// popFront returns the root and pops it.
func popFront(t *testing.T, h *Heap[int]) int {
	t.Helper()
	p, err := h.Front()
	if err != nil {
		t.Fatalf("Front: %v", err)
	}
	x := *p
	if err := h.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	return x
}

func TestInit0(t *testing.T) {
	h := newIntHeap(Min, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0) // all elements are the same
	verifyHeap(t, h, 0)

	for i := 1; h.Len() > 0; i++ {
		x := popFront(t, h)
		verifyHeap(t, h, 0)
		if x != 0 {
			t.Errorf("%d.th pop got %d; want %d", i, x, 0)
		}
	}
}

func Test(t *testing.T) {
	h := newIntHeap(Min)
	for i := 20; i > 10; i-- {
		h.Insert(&i, elem.Dynamic)
	}
	verifyHeap(t, h, 0)

	for i := 10; i > 0; i-- {
		h.Insert(&i, elem.Dynamic)
		verifyHeap(t, h, 0)
	}

	for i := 1; h.Len() > 0; i++ {
		x := popFront(t, h)
		if i < 20 {
			y := 20 + i
			h.Insert(&y, elem.Dynamic)
		}
		verifyHeap(t, h, 0)
		if x != i {
			t.Errorf("%d.th pop got %d; want %d", i, x, i)
		}
	}
}

func TestPopOrder(t *testing.T) {
	c := qt.New(t)
	h := newIntHeap(Min, 10, 3, 7)
	c.Assert(popFront(t, h), qt.Equals, 3)
	c.Assert(popFront(t, h), qt.Equals, 7)
	c.Assert(popFront(t, h), qt.Equals, 10)
	c.Assert(h.Pop(), qt.ErrorIs, elem.ErrEmpty)
	_, err := h.Front()
	c.Assert(err, qt.ErrorIs, elem.ErrEmpty)
}

func TestFrontTracksExtreme(t *testing.T) {
	for _, order := range []Order{Min, Max} {
		t.Run(order.String(), func(t *testing.T) {
			c := qt.New(t)
			h := newIntHeap(order)
			var live []int
			extreme := func() int {
				if order == Min {
					return slices.Min(live)
				}
				return slices.Max(live)
			}
			for range 500 {
				if len(live) > 0 && rand.Intn(3) == 0 {
					x := popFront(t, h)
					c.Assert(x, qt.Equals, extreme())
					live = slices.Delete(live, slices.Index(live, x), slices.Index(live, x)+1)
					continue
				}
				x := rand.Intn(100)
				c.Assert(h.Insert(&x, elem.Dynamic), qt.IsNil)
				live = append(live, x)
				p, err := h.Front()
				c.Assert(err, qt.IsNil)
				c.Assert(*p, qt.Equals, extreme())
				verifyHeap(t, h, 0)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	c := qt.New(t)
	a := newIntHeap(Min, 5, 1, 9, 3)
	b := newIntHeap(Min, 8, 2, 7, 2, 6)
	c.Assert(a.Merge(b), qt.IsNil)
	c.Assert(a.Len(), qt.Equals, 9)
	c.Assert(b.Len(), qt.Equals, 0)
	verifyHeap(t, a, 0)

	var got []int
	for a.Len() > 0 {
		got = append(got, popFront(t, a))
	}
	c.Assert(got, qt.DeepEquals, []int{1, 2, 2, 3, 5, 6, 7, 8, 9})

	c.Assert(a.Merge(a), qt.ErrorMatches, "cannot merge a heap into itself")
	c.Assert(a.Merge(nil), qt.ErrorIs, elem.ErrNullArgument)
}

func TestMergeKeepsOwnership(t *testing.T) {
	c := qt.New(t)
	var srcFrees, dstFrees int
	funcs := func(frees *int) elem.Funcs[int] {
		f := elem.OrderedFuncs[int]()
		f.Dealloc = func(*int) {
			*frees++
		}
		return f
	}
	dst := NewFunc(Max, funcs(&dstFrees))
	src := NewFunc(Max, funcs(&srcFrees))
	x, y, borrowed := 1, 2, 3
	c.Assert(dst.Insert(&x, elem.Dynamic), qt.IsNil)
	c.Assert(src.Insert(&y, elem.Dynamic), qt.IsNil)
	c.Assert(src.Insert(&borrowed, elem.Static), qt.IsNil)

	c.Assert(dst.Merge(src), qt.IsNil)
	p, err := dst.Front()
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, &borrowed)

	c.Assert(dst.Destroy(), qt.IsNil)
	c.Assert(dstFrees, qt.Equals, 1)
	c.Assert(srcFrees, qt.Equals, 1)
	c.Assert(borrowed, qt.Equals, 3)
}

func TestStaticInit(t *testing.T) {
	c := qt.New(t)
	h := newIntHeap(Min)
	vals := []int{4, 5, 6}
	for i := range vals {
		c.Assert(h.Insert(&vals[i], elem.Static), qt.IsNil)
	}
	vals[2] = 1
	h.Init()
	verifyHeap(t, h, 0)
	c.Assert(popFront(t, h), qt.Equals, 1)
}

func TestDestroy(t *testing.T) {
	c := qt.New(t)
	h := newIntHeap(Min, 1, 2)
	c.Assert(h.Clear(), qt.IsNil)
	c.Assert(h.Clear(), qt.IsNil)
	c.Assert(h.Empty(), qt.IsTrue)
	c.Assert(h.Destroy(), qt.IsNil)
	x := 1
	c.Assert(h.Insert(&x, elem.Dynamic), qt.ErrorIs, elem.ErrNullArgument)
	c.Assert(h.Pop(), qt.ErrorIs, elem.ErrNullArgument)
}

func TestDump(t *testing.T) {
	c := qt.New(t)
	h := NewFunc(Max, elem.OrderedFuncs[int64]())
	for _, x := range []int64{1, 3, 2} {
		c.Assert(h.Insert(&x, elem.Dynamic), qt.IsNil)
	}
	var buf bytes.Buffer
	c.Assert(h.Dump(&buf), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, `
max heap vector len 3 cap 4 elemsize 8
[0] dynamic: 3
[1] dynamic: 1
[2] dynamic: 2
`[1:])
}

func BenchmarkDup(b *testing.B) {
	const n = 10000
	h := newIntHeap(Min)
	zero := 0
	for i := 0; i < b.N; i++ {
		for j := 0; j < n; j++ {
			h.Insert(&zero, elem.Static) // all elements are the same
		}
		for h.Len() > 0 {
			h.Pop()
		}
	}
}
