package vector

import (
	"math"

	"github.com/pkg/errors"
)

// Vector is a growable sequence of T stored in one contiguous Buffer.
// The zero value is an empty vector ready to use. Not goroutine-safe.
// A nil *Vector reads as empty: Len, Cap, the checked accessors, Clone,
// the iterators and the comparisons accept it; mutators do not.
//
// Elements [0, Len()) are live. Slots [Len(), Cap()) hold zero values and are
// never observed through the checked API.
type Vector[T any] struct {
	buf  Buffer[T]
	size int
}

// Reservation asks for capacity without changing the length. See FromReservation.
type Reservation struct {
	Capacity int
}

// Reserve returns a Reservation of n slots.
func Reserve(n int) Reservation {
	return Reservation{Capacity: n}
}

// New returns an empty vector. No memory is allocated.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// Make returns a vector of n zero values with capacity n.
func Make[T any](n int) (*Vector[T], error) {
	mustNotBeNegative(n)
	v := &Vector[T]{}
	if err := v.buf.alloc(n); err != nil {
		return nil, errors.Wrapf(err, "vector: make %d", n)
	}
	v.size = n
	return v, nil
}

// Fill returns a vector of n copies of value with capacity n.
func Fill[T any](n int, value T) (*Vector[T], error) {
	mustNotBeNegative(n)
	v := &Vector[T]{}
	if err := v.buf.alloc(n); err != nil {
		return nil, errors.Wrapf(err, "vector: fill %d", n)
	}
	for i := range v.buf.items {
		v.buf.items[i] = value
	}
	v.size = n
	return v, nil
}

// Of returns a vector holding copies of values, in order, with capacity len(values).
func Of[T any](values ...T) (*Vector[T], error) {
	v := &Vector[T]{}
	if err := v.buf.alloc(len(values)); err != nil {
		return nil, errors.Wrapf(err, "vector: of %d values", len(values))
	}
	v.size = copy(v.buf.items, values)
	return v, nil
}

// WithCapacity returns an empty vector with room for n elements.
func WithCapacity[T any](n int) (*Vector[T], error) {
	mustNotBeNegative(n)
	v := &Vector[T]{}
	if err := v.buf.alloc(n); err != nil {
		return nil, errors.Wrapf(err, "vector: with capacity %d", n)
	}
	return v, nil
}

// FromReservation is WithCapacity(r.Capacity).
func FromReservation[T any](r Reservation) (*Vector[T], error) {
	return WithCapacity[T](r.Capacity)
}

// Clone returns a deep copy of v whose capacity equals v.Len(). Element
// values are copied by assignment. Cloning a nil vector returns an empty one.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c, err := v.clone()
	if err != nil {
		return nil, errors.Wrap(err, "vector: clone")
	}
	return c, nil
}

func (v *Vector[T]) clone() (*Vector[T], error) {
	c := &Vector[T]{}
	if err := c.buf.alloc(v.Len()); err != nil {
		return nil, err
	}
	c.size = copy(c.buf.items, v.Slice())
	return c, nil
}

// Move returns a new vector that owns v's buffer. v is left empty.
func (v *Vector[T]) Move() *Vector[T] {
	m := &Vector[T]{}
	m.MoveFrom(v)
	return m
}

// Assign replaces the contents of v with a deep copy of other. A nil other
// is an empty vector. If the copy can't be allocated, v is left unmodified.
func (v *Vector[T]) Assign(other *Vector[T]) error {
	if v == other {
		return nil
	}
	tmp, err := other.clone()
	if err != nil {
		return errors.Wrap(err, "vector: assign")
	}
	v.Swap(tmp)
	tmp.Free()
	return nil
}

// MoveFrom frees v's buffer, takes ownership of other's buffer and leaves
// other empty.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	if v == other {
		return
	}
	v.Free()
	v.Swap(other)
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return v.buf.Cap()
}

// IsEmpty reports whether Len() == 0.
func (v *Vector[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Reserve grows the capacity to exactly n if n > Cap(). It never shrinks.
// Slices and pointers into v are stale after a growing Reserve.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	if err := v.realloc(n); err != nil {
		return errors.Wrapf(err, "vector: reserve %d", n)
	}
	return nil
}

// Resize sets the length to n. New elements are zero values. Growing past
// the capacity reallocates to max(2*Cap(), n); shrinking keeps the capacity.
func (v *Vector[T]) Resize(n int) error {
	mustNotBeNegative(n)
	switch {
	case n > v.Cap():
		// Slots past the old length are zero in a fresh buffer.
		if err := v.realloc(v.grow(n)); err != nil {
			return errors.Wrapf(err, "vector: resize %d", n)
		}
	case n > v.size:
		clear(v.buf.items[v.size:n])
	default:
		clear(v.buf.items[n:v.size])
	}
	v.size = n
	return nil
}

// Clear sets the length to zero. The capacity is kept.
func (v *Vector[T]) Clear() {
	clear(v.buf.items[:v.size])
	v.size = 0
}

// Get returns element i without a bounds check against Len().
// The caller guarantees 0 <= i < Len(); use At otherwise.
func (v *Vector[T]) Get(i int) T {
	return v.buf.items[i]
}

// Ref returns a pointer to element i without a bounds check against Len().
func (v *Vector[T]) Ref(i int) *T {
	return &v.buf.items[i]
}

// Set stores x at index i without a bounds check against Len().
func (v *Vector[T]) Set(i int, x T) {
	v.buf.items[i] = x
}

// At returns element i, or an *OutOfRangeError if i is not in [0, Len()).
func (v *Vector[T]) At(i int) (T, error) {
	if err := v.check(i); err != nil {
		var zero T
		return zero, err
	}
	return v.buf.items[i], nil
}

// RefAt is the bounds-checked form of Ref.
func (v *Vector[T]) RefAt(i int) (*T, error) {
	if err := v.check(i); err != nil {
		return nil, err
	}
	return &v.buf.items[i], nil
}

// SetAt is the bounds-checked form of Set.
func (v *Vector[T]) SetAt(i int, x T) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.buf.items[i] = x
	return nil
}

// PushBack appends x. A full vector grows to max(2*Cap(), Len()+1).
func (v *Vector[T]) PushBack(x T) error {
	if err := v.ensure(v.size + 1); err != nil {
		return errors.Wrap(err, "vector: push back")
	}
	v.buf.items[v.size] = x
	v.size++
	return nil
}

// EmplaceBack appends an element built in place by init, which receives a
// pointer to the zeroed slot. Use it instead of PushBack to avoid copying
// large values. If init panics, the length is unchanged.
func (v *Vector[T]) EmplaceBack(init func(*T)) error {
	if err := v.ensure(v.size + 1); err != nil {
		return errors.Wrap(err, "vector: emplace back")
	}
	init(&v.buf.items[v.size])
	v.size++
	return nil
}

// Insert places x at position pos, shifting elements [pos, Len()) one slot
// to the right, and returns the position of x. pos must be in [0, Len()];
// Insert at Len() is PushBack. A full vector grows to max(2*Cap(), Len()+1).
func (v *Vector[T]) Insert(pos int, x T) (int, error) {
	slot, err := v.open(pos)
	if err != nil {
		return 0, errors.Wrapf(err, "vector: insert at %d", pos)
	}
	*slot = x
	return pos, nil
}

// EmplaceAt is Insert with the element built in place by init, which
// receives a pointer to the zeroed slot at pos. If init panics, the slot
// stays in the vector holding a zero value.
func (v *Vector[T]) EmplaceAt(pos int, init func(*T)) (int, error) {
	slot, err := v.open(pos)
	if err != nil {
		return 0, errors.Wrapf(err, "vector: emplace at %d", pos)
	}
	init(slot)
	return pos, nil
}

// open makes a zeroed slot at pos, counts it as live and returns it.
// On allocation failure v is unchanged.
func (v *Vector[T]) open(pos int) (*T, error) {
	if pos < 0 || pos > v.size {
		panic("vector: insert position out of range")
	}

	if v.size < v.Cap() {
		// copy handles the overlap.
		copy(v.buf.items[pos+1:v.size+1], v.buf.items[pos:v.size])
		v.drop(pos)
		v.size++
		return &v.buf.items[pos], nil
	}

	var nb Buffer[T]
	if err := nb.alloc(v.grow(v.size + 1)); err != nil {
		return nil, err
	}
	copy(nb.items, v.buf.items[:pos])
	copy(nb.items[pos+1:], v.buf.items[pos:v.size])
	v.buf.Swap(&nb)
	nb.Free()

	v.size++
	return &v.buf.items[pos], nil
}

// Erase removes the element at pos, shifting the following elements one slot
// to the left, and returns pos, which now holds the next element or equals
// End(). pos must be in [0, Len()).
func (v *Vector[T]) Erase(pos int) int {
	if pos < 0 || pos >= v.size {
		panic("vector: erase position out of range")
	}
	copy(v.buf.items[pos:], v.buf.items[pos+1:v.size])
	v.size--
	v.drop(v.size)
	return pos
}

// PopBack removes the last element. It panics if the vector is empty.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.size--
	v.drop(v.size)
}

// Swap exchanges the contents of v and other without copying elements.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
}

// Free returns the buffer to the heap. v is empty afterwards and may be reused.
func (v *Vector[T]) Free() {
	v.buf.Free()
	v.size = 0
}

// Release hands the elements to the caller as a plain slice whose capacity
// is the vector's capacity, and leaves v empty.
func (v *Vector[T]) Release() []T {
	n := v.size
	items := v.buf.Release()
	v.size = 0
	return items[:n]
}

func (v *Vector[T]) check(i int) error {
	if n := v.Len(); i < 0 || i >= n {
		return &OutOfRangeError{Index: i, Size: n}
	}
	return nil
}

// ensure makes room for n elements using the growth policy.
func (v *Vector[T]) ensure(n int) error {
	if n <= v.Cap() {
		return nil
	}
	return v.realloc(v.grow(n))
}

// grow returns the capacity to move to when at least n slots are needed.
func (v *Vector[T]) grow(n int) int {
	c := v.Cap()
	if c > math.MaxInt/2 {
		return max(c, n)
	}
	return max(2*c, n)
}

// realloc moves the live elements into a new buffer of n slots. v is not
// touched unless the allocation succeeds.
func (v *Vector[T]) realloc(n int) error {
	var nb Buffer[T]
	if err := nb.alloc(n); err != nil {
		return err
	}
	copy(nb.items, v.buf.items[:v.size])
	v.buf.Swap(&nb)
	nb.Free()
	return nil
}

// drop zeroes a slot that left the live range so it doesn't pin memory.
func (v *Vector[T]) drop(i int) {
	var zero T
	v.buf.items[i] = zero
}

func mustNotBeNegative(n int) {
	if n < 0 {
		panic("vector: negative size")
	}
}
