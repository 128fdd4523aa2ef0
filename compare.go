package vector

import (
	"cmp"
	"slices"
)

// Equal reports whether a and b have the same length and equal elements in
// the same order. A vector is always equal to itself.
func Equal[T comparable](a, b *Vector[T]) bool {
	if a == b {
		return true
	}
	return slices.Equal(a.Slice(), b.Slice())
}

// NotEqual is !Equal(a, b).
func NotEqual[T comparable](a, b *Vector[T]) bool {
	return !Equal(a, b)
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	if a == b {
		return true
	}
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Less reports whether a orders before b lexicographically, comparing
// elements with <. A proper prefix orders before the longer vector.
func Less[T cmp.Ordered](a, b *Vector[T]) bool {
	x, y := a.Slice(), b.Slice()
	for i := 0; i < len(x) && i < len(y); i++ {
		if x[i] < y[i] {
			return true
		}
		if y[i] < x[i] {
			return false
		}
	}
	return len(x) < len(y)
}

// LessOrEqual is !Less(b, a).
func LessOrEqual[T cmp.Ordered](a, b *Vector[T]) bool {
	return !Less(b, a)
}

// Greater is Less(b, a).
func Greater[T cmp.Ordered](a, b *Vector[T]) bool {
	return Less(b, a)
}

// GreaterOrEqual is !Less(a, b).
func GreaterOrEqual[T cmp.Ordered](a, b *Vector[T]) bool {
	return !Less(a, b)
}

// Compare returns -1, 0 or +1 by lexicographic order, using cmp.Compare on
// the elements.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// CompareFunc is like Compare but compares elements with c.
func CompareFunc[T any](a, b *Vector[T], c func(T, T) int) int {
	return slices.CompareFunc(a.Slice(), b.Slice(), c)
}
