package elem

// Ref is a stored element: a pointer to the value together with the
// ownership decided when it was inserted. The zero Ref holds nothing.
//
// A borrowed Ref points at caller memory. An owned Ref points at
// registry-allocated storage and carries the deallocator that must
// release it, so an owned Ref may be moved between containers
// without losing track of how its storage is freed.
type Ref[T any] struct {
	p    *T
	free func(*T)
}

// Ptr returns the stored pointer.
func (r Ref[T]) Ptr() *T {
	return r.p
}

// Owned reports whether the container owns the referenced storage.
func (r Ref[T]) Owned() bool {
	return r.free != nil
}

// Flag returns the ownership flag the element was inserted with.
func (r Ref[T]) Flag() Flag {
	if r.Owned() {
		return Dynamic
	}
	return Static
}

// Release releases owned storage and clears r. Borrowed values are
// left alone. Calling Release on a cleared Ref does nothing.
func (r *Ref[T]) Release() {
	if r.free != nil {
		r.free(r.p)
	}
	*r = Ref[T]{}
}

// ReleaseAll releases every Ref in refs.
func ReleaseAll[T any](refs []Ref[T]) {
	for i := range refs {
		refs[i].Release()
	}
}
