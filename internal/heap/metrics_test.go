package heap

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeapMetrics(t *testing.T) {
	h := New(WithLimit(1024))

	// Test initial state
	require.Equal(t, Metrics{Limit: 1024}, h.Metrics())

	_, a, err := Alloc[int64](h, 16)
	require.NoError(t, err)
	_, b, err := Alloc[int32](h, 64)
	require.NoError(t, err)

	require.Equal(t, int64(384), h.BytesInUse())
	require.Equal(t, int64(2), h.LiveAllocs())
	require.InDelta(t, 0.375, h.Utilization(), 1e-9)

	a.Free()
	m := h.Metrics()
	require.Equal(t, Metrics{
		BytesInUse:  256,
		PeakBytes:   384,
		LiveAllocs:  1,
		Limit:       1024,
		Allocs:      2,
		Frees:       1,
		Utilization: 0.25,
	}, m)

	b.Free()
	require.Zero(t, h.BytesInUse())
	require.Equal(t, int64(384), h.PeakBytes())
}

func TestPeakBytes(t *testing.T) {
	h := New()

	_, a, err := Alloc[byte](h, 1000)
	require.NoError(t, err)
	a.Free()
	_, b, err := Alloc[byte](h, 200)
	require.NoError(t, err)
	defer b.Free()

	require.Equal(t, int64(1000), h.PeakBytes())
	require.Equal(t, int64(200), h.BytesInUse())
}

func TestUtilizationEdgeCases(t *testing.T) {
	// Unlimited heaps report no utilization
	h := New()
	_, l, err := Alloc[int64](h, 100)
	require.NoError(t, err)
	require.Zero(t, h.Utilization())
	l.Free()

	// Full heap
	h = New(WithLimit(800))
	_, l, err = Alloc[int64](h, 100)
	require.NoError(t, err)
	require.InDelta(t, 1.0, h.Utilization(), 1e-9)
	l.Free()
	require.Zero(t, h.Utilization())
}

func TestReclaim(t *testing.T) {
	h := New()

	func() {
		items, _, err := Alloc[int64](h, 512)
		require.NoError(t, err)
		items[0] = 1
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return h.Metrics().Reclaims == 1
	}, 5*time.Second, 10*time.Millisecond)

	m := h.Metrics()
	require.Zero(t, m.BytesInUse)
	require.Zero(t, m.LiveAllocs)
	require.Equal(t, int64(1), m.Frees)
}

func TestFreedLeaseIsNotReclaimed(t *testing.T) {
	h := New()

	func() {
		_, lease, err := Alloc[int64](h, 512)
		require.NoError(t, err)
		lease.Free()
	}()

	for range 3 {
		runtime.GC()
	}
	m := h.Metrics()
	require.Zero(t, m.Reclaims)
	require.Equal(t, int64(1), m.Frees)
}

func BenchmarkMetrics(b *testing.B) {
	h := New(WithLimit(1 << 30))
	// Pre-allocate some data
	leases := make([]Lease, 100)
	for i := range leases {
		_, leases[i], _ = Alloc[byte](h, 1000)
	}
	defer func() {
		for i := range leases {
			leases[i].Free()
		}
	}()

	b.Run("BytesInUse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			h.BytesInUse()
		}
	})

	b.Run("Utilization", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			h.Utilization()
		}
	})

	b.Run("Metrics", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			h.Metrics()
		}
	})
}
