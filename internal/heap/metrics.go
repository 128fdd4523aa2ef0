package heap

// BytesInUse returns the number of bytes held by live buffers.
func (h *Heap) BytesInUse() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inUse
}

// PeakBytes returns the highest value BytesInUse has reached.
func (h *Heap) PeakBytes() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.peak
}

// LiveAllocs returns the number of allocations that were not freed yet.
func (h *Heap) LiveAllocs() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.live
}

// Limit returns the byte limit, zero if unlimited.
func (h *Heap) Limit() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}

// Utilization returns the ratio of bytes in use to the limit (0.0 to 1.0).
// Returns 0.0 if the heap is unlimited.
func (h *Heap) Utilization() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return utilization(h.inUse, h.limit)
}

// Metrics returns a snapshot of heap statistics.
func (h *Heap) Metrics() Metrics {
	h.mu.Lock()
	m := Metrics{
		BytesInUse:  h.inUse,
		PeakBytes:   h.peak,
		LiveAllocs:  h.live,
		Limit:       h.limit,
		Utilization: utilization(h.inUse, h.limit),
	}
	h.mu.Unlock()

	m.Allocs = h.allocs.Load()
	m.Frees = h.frees.Load()
	m.Failures = h.failures.Load()
	m.Reclaims = h.reclaims.Load()
	return m
}

// Metrics contains statistical information about a heap.
type Metrics struct {
	BytesInUse  int64   // Bytes held by live buffers
	PeakBytes   int64   // High-water mark of BytesInUse
	LiveAllocs  int64   // Allocations not freed yet
	Limit       int64   // Byte limit, zero if unlimited
	Allocs      int64   // Successful allocations since creation
	Frees       int64   // Allocations returned, including GC reclaims
	Failures    int64   // Rejected allocation requests
	Reclaims    int64   // Allocations returned by the GC instead of Free
	Utilization float64 // Ratio of BytesInUse to Limit (0.0-1.0)
}

func utilization(inUse, limit int64) float64 {
	if limit == 0 {
		return 0
	}
	return float64(inUse) / float64(limit)
}
