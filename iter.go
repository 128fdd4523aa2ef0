package vector

import (
	"fmt"
	"iter"
)

// Positions are plain indices. A position, slice or pointer obtained before an
// operation that reallocates (a growing Reserve, Resize, PushBack or Insert)
// refers to the old buffer afterwards. One obtained before a shift that does
// not reallocate stays valid below the point of the change.

// Begin returns the position of the first element.
func (v *Vector[T]) Begin() int {
	return 0
}

// End returns the position one past the last element.
func (v *Vector[T]) End() int {
	return v.Len()
}

// Slice returns the live elements. The slice aliases the buffer; its capacity
// is clipped to Len() so appending to it never touches the vector.
func (v *Vector[T]) Slice() []T {
	if v == nil {
		return nil
	}
	return v.buf.items[:v.size:v.size]
}

// All returns an iterator over positions and elements in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.buf.items[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.buf.items[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over positions and elements from the last to the first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.Len() - 1; i >= 0; i-- {
			if !yield(i, v.buf.items[i]) {
				return
			}
		}
	}
}

// Refs returns an iterator over positions and pointers to the elements, for
// updating them in place.
func (v *Vector[T]) Refs() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, &v.buf.items[i]) {
				return
			}
		}
	}
}

// String formats the elements like a slice.
func (v *Vector[T]) String() string {
	return fmt.Sprint(v.Slice())
}
