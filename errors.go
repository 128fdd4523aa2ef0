package vector

import (
	"fmt"

	"github.com/pavanmanishd/vector/internal/heap"
	"github.com/pkg/errors"
)

// ErrAllocation is matched by every error caused by a capacity request the
// heap could not satisfy.
var ErrAllocation = heap.ErrAllocation

// AllocationError describes a failed capacity request.
type AllocationError = heap.AllocationError

// ErrOutOfRange is matched by every *OutOfRangeError.
var ErrOutOfRange = errors.New("index out of range")

// OutOfRangeError is returned by the bounds-checked accessors.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d)", e.Index, e.Size)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
