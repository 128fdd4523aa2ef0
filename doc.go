// Package vector implements a growable, contiguous sequence container for Go
// together with the owning buffer it is built on.
//
// # Overview
//
// A Vector[T] keeps its elements in a single Buffer[T]. The buffer owns one
// allocation of a fixed number of slots; the vector layers a length, a
// capacity and a growth policy on top of it. Exactly one buffer owns an
// allocation at any time: ownership moves through Swap, Move and Release and
// is never shared.
//
// # Basic Usage
//
//	v, err := vector.Of(1, 2, 3)
//	if err != nil {
//		return err
//	}
//	defer v.Free() // Return the buffer when done
//
//	// Append and insert
//	_ = v.PushBack(4)
//	pos, _ := v.Insert(1, 9) // {1, 9, 2, 3, 4}
//
//	// Unchecked and checked access
//	x := v.Get(pos)
//	y, err := v.At(10) // ErrOutOfRange
//
//	// Remove
//	v.Erase(0)
//	v.PopBack()
//
// # Capacity
//
// Reserve grows the capacity to exactly the requested size. PushBack, Insert
// and Resize grow a full vector to twice its capacity, or to the required
// size if that is larger. Clear, Erase, PopBack and shrinking Resize never
// release memory. Growth allocates the new buffer and copies the live
// elements before the old buffer is dropped, so a failed allocation leaves
// the vector as it was.
//
// # Copy and Move
//
// Vectors must not be copied by value (go vet reports it). Clone and Assign
// make deep copies; Move and MoveFrom transfer the buffer and leave the
// source empty.
//
// # Positions
//
// Positions are indices in [Begin(), End()]. Slices, pointers and positions
// taken before a reallocation refer to the old buffer afterwards; shifts that
// don't reallocate keep them valid below the point of the change.
//
// # Errors
//
// Capacity requests the heap can't satisfy fail with ErrAllocation; checked
// accessors fail with ErrOutOfRange. Misuse of the unchecked API (Insert or
// Erase outside the live range, PopBack on an empty vector, negative sizes)
// panics.
//
// # Memory Accounting
//
// Every buffer is charged against a process-wide heap that can be capped:
//
//	vector.SetMemoryLimit(512 << 20) // or VECTOR_MEMORY_LIMIT=512MB
//	stats := vector.ReadMemoryStats()
//	fmt.Printf("Memory in use: %d bytes\n", stats.BytesInUse)
//
// RegisterMetrics exports the same statistics to Prometheus and SetLogger
// routes allocation failures to a zap logger.
//
// # Thread Safety
//
// A Vector is not goroutine-safe. Concurrent reads are fine while no
// goroutine writes. The memory accounting is shared and goroutine-safe.
package vector
