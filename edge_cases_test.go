package vector_test

import (
	"testing"

	"github.com/pavanmanishd/vector"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

// TestEdgeCases covers element types and sizes the arithmetic has to get right
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroSizeElements", func(t *testing.T) {
		var v vector.Vector[struct{}]
		defer v.Free()

		for range 1000 {
			require.NoError(t, v.PushBack(struct{}{}))
		}
		require.Equal(t, 1000, v.Len())
		require.GreaterOrEqual(t, v.Cap(), 1000)

		v.Erase(500)
		v.PopBack()
		require.Equal(t, 998, v.Len())
	})

	t.Run("LargeElements", func(t *testing.T) {
		v, err := vector.Make[[4096]byte](16)
		require.NoError(t, err)
		defer v.Free()

		for i := range v.Len() {
			v.Ref(i)[4095] = byte(i)
		}
		_, err = v.Insert(8, [4096]byte{0: 0xff})
		require.NoError(t, err)

		require.Equal(t, byte(0xff), v.Get(8)[0])
		require.Equal(t, byte(7), v.Get(7)[4095])
		require.Equal(t, byte(8), v.Get(9)[4095])
	})

	t.Run("PointerElements", func(t *testing.T) {
		var v vector.Vector[*int]
		defer v.Free()

		for i := range 64 {
			require.NoError(t, v.PushBack(&i))
		}
		for i := range v.Len() {
			require.Equal(t, i, *v.Get(i))
		}
	})

	t.Run("EmptyVectors", func(t *testing.T) {
		var zero vector.Vector[int]
		empty, err := vector.Make[int](0)
		require.NoError(t, err)

		assert.True(t, vector.Equal(&zero, empty))
		assert.False(t, vector.Less(&zero, empty))
		assert.Equal(t, zero.Begin(), zero.End())
		assert.Empty(t, zero.Slice())
		assert.Equal(t, "[]", empty.String())
	})
}

// TestMemoryCorruption checks that shifting never mixes up element contents
func TestMemoryCorruption(t *testing.T) {
	var v vector.Vector[[64]byte]
	defer v.Free()

	// Alternate front and back inserts so most of them shift and some reallocate.
	for i := range 100 {
		var elem [64]byte
		for j := range elem {
			elem[j] = byte(i)
		}
		pos := 0
		if i%2 == 1 {
			pos = v.Len()
		}
		_, err := v.Insert(pos, elem)
		require.NoError(t, err)
	}

	for i, elem := range v.All() {
		want := elem[0]
		for j, b := range elem {
			if b != want {
				t.Fatalf("corruption at [%d][%d]: got %d, want %d", i, j, b, want)
			}
		}
	}
	// Evens were pushed to the front in reverse, odds appended in order.
	require.Equal(t, byte(98), v.Get(0)[0])
	require.Equal(t, byte(0), v.Get(49)[0])
	require.Equal(t, byte(1), v.Get(50)[0])
	require.Equal(t, byte(99), v.Get(99)[0])
}

// TestManyVectors checks that freed vectors give their accounting back
func TestManyVectors(t *testing.T) {
	before := vector.ReadMemoryStats()

	vs := make([]*vector.Vector[int64], 1000)
	for i := range vs {
		v, err := vector.Fill(64, int64(i))
		require.NoError(t, err)
		vs[i] = v
	}
	mid := vector.ReadMemoryStats()
	require.GreaterOrEqual(t, mid.Allocs-before.Allocs, int64(1000))

	for _, v := range vs {
		v.Free()
	}
	after := vector.ReadMemoryStats()
	require.GreaterOrEqual(t, after.Frees-mid.Frees, int64(1000))
	require.LessOrEqual(t, after.LiveAllocs, before.LiveAllocs)
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, vector.RegisterMetrics(reg))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "vector_heap_bytes_in_use")
	require.Contains(t, names, "vector_heap_allocation_failures_total")

	var are prometheus.AlreadyRegisteredError
	require.ErrorAs(t, vector.RegisterMetrics(reg), &are)
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	vector.SetLogger(zap.New(core))
	defer vector.SetLogger(nil)

	prev := vector.SetMemoryLimit(1 << 20)
	defer vector.SetMemoryLimit(prev)

	_, err := vector.Make[int64](1 << 20)
	require.ErrorIs(t, err, vector.ErrAllocation)

	require.Equal(t, 1, logs.FilterMessage("heap limit changed").Len())
	rejected := logs.FilterMessage("allocation rejected").All()
	require.Len(t, rejected, 1)
	require.Equal(t, zapcore.WarnLevel, rejected[0].Level)
	require.Equal(t, "8.0 MiB", rejected[0].ContextMap()["requested"])
	require.Equal(t, "1.0 MiB", rejected[0].ContextMap()["limit"])
}

// TestConcurrentVectors runs independent vectors against the shared accounting
func TestConcurrentVectors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	const (
		numWorkers      = 16
		numOpsPerWorker = 2000
	)

	var g errgroup.Group
	for w := range numWorkers {
		g.Go(func() error {
			var v vector.Vector[int]
			defer v.Free()

			for j := range numOpsPerWorker {
				switch j % 4 {
				case 0, 1:
					if err := v.PushBack(w*numOpsPerWorker + j); err != nil {
						return err
					}
				case 2:
					if _, err := v.Insert(v.Len()/2, -1); err != nil {
						return err
					}
				case 3:
					v.Erase(v.Len() / 2)
				}
			}
			c, err := v.Clone()
			if err != nil {
				return err
			}
			defer c.Free()
			if !vector.Equal(&v, c) {
				t.Errorf("worker %d: clone differs", w)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
