package heap

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrAllocation is matched by every *AllocationError.
var ErrAllocation = errors.New("allocation failed")

// AllocationError reports a capacity request the heap could not satisfy.
type AllocationError struct {
	Requested int64 // bytes asked for
	Count     int   // elements asked for
	InUse     int64 // bytes held by live buffers at the time of the request
	Limit     int64 // configured limit, zero if unlimited
}

func (e *AllocationError) Error() string {
	switch {
	case e.Count < 0:
		return fmt.Sprintf("allocation failed: negative element count %d", e.Count)
	case e.Limit > 0 && e.Requested <= e.Limit:
		return fmt.Sprintf("allocation failed: %d bytes requested with %d of %d bytes in use", e.Requested, e.InUse, e.Limit)
	case e.Limit > 0:
		return fmt.Sprintf("allocation failed: %d bytes requested, limit is %d bytes", e.Requested, e.Limit)
	default:
		return fmt.Sprintf("allocation failed: %d elements can't be allocated", e.Count)
	}
}

// Is reports whether target is ErrAllocation.
func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}

type envError struct {
	key   string
	value string
	err   error
}

func (e *envError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.key, e.value, e.err)
}

func (e *envError) Unwrap() error {
	return e.err
}
