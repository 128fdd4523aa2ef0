package vector

import (
	"github.com/pavanmanishd/vector/internal/heap"
)

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527 for details;
// go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer owns one contiguous allocation of a fixed number of slots. It has no
// notion of how many slots hold live values; that is the caller's business.
//
// A Buffer must not be copied. Ownership moves only through Swap and Release,
// so at most one Buffer references an allocation at any time.
type Buffer[T any] struct {
	_     noCopy
	items []T
	lease heap.Lease
}

// NewBuffer allocates a buffer of n zeroed slots. A zero n allocates nothing.
// It fails with ErrAllocation if the heap cannot satisfy the request.
func NewBuffer[T any](n int) (*Buffer[T], error) {
	b := &Buffer[T]{}
	if err := b.alloc(n); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Buffer[T]) alloc(n int) error {
	items, lease, err := heap.Alloc[T](memory, n)
	if err != nil {
		return err
	}
	b.items, b.lease = items, lease
	return nil
}

// Cap returns the number of slots.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// At returns a pointer to slot i. The caller guarantees i < Cap().
func (b *Buffer[T]) At(i int) *T {
	return &b.items[i]
}

// Raw returns all slots starting at slot 0, or nil for an empty buffer. The
// slice aliases the buffer and must not outlive it.
func (b *Buffer[T]) Raw() []T {
	return b.items
}

// Release gives up ownership and returns the slots to the caller. The buffer
// is empty afterwards.
func (b *Buffer[T]) Release() []T {
	items := b.items
	b.lease.Forget()
	b.items = nil
	return items
}

// Swap exchanges the allocations of b and other.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.items, other.items = other.items, b.items
	b.lease, other.lease = other.lease, b.lease
}

// Free returns the allocation to the heap. The buffer is empty afterwards;
// freeing an empty buffer does nothing.
func (b *Buffer[T]) Free() {
	b.lease.Free()
	b.items = nil
}
