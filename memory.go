package vector

import (
	"github.com/pavanmanishd/vector/internal/heap"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// MemoryLimitEnv names the environment variable holding the initial memory
// limit, e.g. VECTOR_MEMORY_LIMIT=512MB. Unset means unlimited.
const MemoryLimitEnv = "VECTOR_MEMORY_LIMIT"

// memory accounts for every buffer in the process.
var memory = heap.New(heap.LimitFromEnv(MemoryLimitEnv))

// MemoryStats is a snapshot of the memory held by all buffers.
type MemoryStats = heap.Metrics

// ReadMemoryStats returns the current memory statistics.
func ReadMemoryStats() MemoryStats {
	return memory.Metrics()
}

// SetMemoryLimit caps the bytes all buffers together may hold and returns
// the previous limit. Zero removes the limit. Requests that would exceed it
// fail with ErrAllocation; memory already held is not affected.
func SetMemoryLimit(bytes int64) int64 {
	return memory.SetLimit(bytes)
}

// SetLogger sets the logger that receives allocation failures and limit
// changes. Nil disables logging, which is the default.
func SetLogger(logger *zap.Logger) {
	memory.SetLogger(logger)
}

// RegisterMetrics registers the memory statistics with reg under the
// vector_heap_ prefix.
func RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(heap.NewCollector(memory))
}
