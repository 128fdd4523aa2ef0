package heap

import (
	"math"
	"runtime"
	"unsafe"
)

// Lease records one accounted allocation. The zero Lease owns nothing and
// all of its methods are no-ops.
type Lease struct {
	h       *Heap
	bytes   int64
	cleanup runtime.Cleanup
	tracked bool
}

type reclaimArg struct {
	h     *Heap
	bytes int64
}

// Alloc returns n zeroed elements of T charged against h, together with the
// lease that returns them. It fails with an *AllocationError when n is
// negative, when n elements do not fit the address space, or when the heap
// limit would be exceeded. Alloc with n == 0 does not touch the heap.
func Alloc[T any](h *Heap, n int) ([]T, Lease, error) {
	if n == 0 {
		return nil, Lease{}, nil
	}

	bytes, ok := sizeOf[T](n)
	if !ok {
		h.failures.Inc()
		return nil, Lease{}, &AllocationError{Requested: bytes, Count: n}
	}
	if err := h.reserve(bytes, n); err != nil {
		return nil, Lease{}, err
	}

	items, ok := makeSlice[T](n)
	if !ok {
		h.forget(bytes)
		h.failures.Inc()
		return nil, Lease{}, &AllocationError{Requested: bytes, Count: n}
	}
	lease := Lease{h: h, bytes: bytes}
	if bytes > 0 {
		// Buffers that become unreachable without Free still give their bytes back.
		lease.cleanup = runtime.AddCleanup(&items[0], func(a reclaimArg) {
			a.h.reclaim(a.bytes)
		}, reclaimArg{h: h, bytes: bytes})
		lease.tracked = true
	}
	return items, lease, nil
}

// Free returns the leased bytes to the heap. Calling Free more than once is a no-op.
func (l *Lease) Free() {
	if l.h == nil {
		return
	}
	l.stop()
	l.h.release(l.bytes)
	*l = Lease{}
}

// Forget drops the allocation from the heap's accounting without counting a
// free. The memory now belongs to whoever holds the slice.
func (l *Lease) Forget() {
	if l.h == nil {
		return
	}
	l.stop()
	l.h.forget(l.bytes)
	*l = Lease{}
}

// Bytes returns the number of bytes charged for the lease.
func (l *Lease) Bytes() int64 {
	return l.bytes
}

func (l *Lease) stop() {
	if l.tracked {
		l.cleanup.Stop()
	}
}

// makeSlice turns the runtime's "len out of range" panic into a failure.
func makeSlice[T any](n int) (items []T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isRuntime := r.(runtime.Error); !isRuntime {
				panic(r)
			}
			items, ok = nil, false
		}
	}()
	return make([]T, n), true
}

// sizeOf returns the aligned byte size of n elements of T.
func sizeOf[T any](n int) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	var zero T
	elem := uint64(unsafe.Sizeof(zero))
	if elem == 0 {
		return 0, true
	}
	if uint64(n) > (math.MaxInt64-uint64(align)+1)/elem {
		return math.MaxInt64, false
	}
	return int64(alignUp(elem * uint64(n))), true
}

const align = uint64(unsafe.Sizeof(uintptr(0)))

// alignUp rounds size up to pointer alignment.
func alignUp(size uint64) uint64 {
	mask := align - 1
	return (size + mask) &^ mask
}
