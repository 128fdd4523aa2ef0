// Package heap implements the accounted allocator behind every vector buffer.
// Memory itself comes from the Go runtime; the heap tracks how many bytes are
// owned by live buffers, enforces an optional limit, and reports metrics.
package heap

import (
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Config is the configuration of a [Heap].
type Config struct {
	// Limit is the maximum number of bytes live buffers may hold. Zero means unlimited.
	Limit int64
	// Logger receives allocation failures and limit changes. Nil means no logging.
	Logger *zap.Logger

	errs []error
}

// WithLimit sets the byte limit of the heap.
func WithLimit(bytes int64) func(c *Config) {
	if bytes < 0 {
		panic("heap: limit can't be < 0")
	}
	return func(c *Config) {
		c.Limit = bytes
	}
}

// WithLogger sets the logger of the heap.
func WithLogger(logger *zap.Logger) func(c *Config) {
	return func(c *Config) {
		c.Logger = logger
	}
}

// LimitFromEnv reads the byte limit from the environment variable key.
// The value is a human size such as "512MB" or "1gb"; an empty or unset
// variable leaves the limit unchanged. Invalid values are logged once the
// heap is built and ignored.
func LimitFromEnv(key string) func(c *Config) {
	return func(c *Config) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		var size datasize.ByteSize
		if err := size.UnmarshalText([]byte(raw)); err != nil {
			c.errs = append(c.errs, &envError{key: key, value: raw, err: err})
			return
		}
		if size.Bytes() > math.MaxInt64 {
			c.errs = append(c.errs, &envError{key: key, value: raw, err: strconv.ErrRange})
			return
		}
		c.Limit = int64(size.Bytes())
	}
}

// Heap is a goroutine-safe allocation accountant. Buffers on any goroutine,
// as well as GC cleanups, report into the same Heap.
type Heap struct {
	mu       sync.Mutex
	inUse    int64
	peak     int64
	live     int64
	limit    int64
	logger   *zap.Logger
	allocs   atomic.Int64
	frees    atomic.Int64
	failures atomic.Int64
	reclaims atomic.Int64
}

// New creates a heap. Configuration funcs are applied in order; nil funcs are skipped.
func New(configFuncs ...func(c *Config)) *Heap {
	var c Config
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Limit < 0 {
		c.Limit = 0
	}

	h := &Heap{limit: c.Limit, logger: c.Logger}
	for _, err := range c.errs {
		h.logger.Warn("ignoring heap configuration", zap.Error(err))
	}
	return h
}

// SetLimit replaces the byte limit and returns the previous one. Zero
// disables the limit. Bytes already in use are never reclaimed by lowering it;
// only new allocations are checked.
func (h *Heap) SetLimit(bytes int64) int64 {
	if bytes < 0 {
		panic("heap: limit can't be < 0")
	}
	h.mu.Lock()
	prev := h.limit
	h.limit = bytes
	logger := h.logger
	h.mu.Unlock()

	logger.Info("heap limit changed",
		zap.String("previous", formatLimit(prev)),
		zap.String("limit", formatLimit(bytes)),
	)
	return prev
}

// SetLogger replaces the logger. A nil logger disables logging.
func (h *Heap) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h.mu.Lock()
	h.logger = logger
	h.mu.Unlock()
}

// reserve charges bytes for count elements against the limit.
func (h *Heap) reserve(bytes int64, count int) error {
	h.mu.Lock()
	if h.limit > 0 && (bytes > h.limit || h.inUse > h.limit-bytes) {
		inUse, limit, logger := h.inUse, h.limit, h.logger
		h.mu.Unlock()

		h.failures.Inc()
		logger.Warn("allocation rejected",
			zap.String("requested", humanize.IBytes(uint64(bytes))),
			zap.String("in_use", humanize.IBytes(uint64(inUse))),
			zap.String("limit", humanize.IBytes(uint64(limit))),
		)
		return &AllocationError{Requested: bytes, Count: count, InUse: inUse, Limit: limit}
	}
	h.inUse += bytes
	h.live++
	if h.inUse > h.peak {
		h.peak = h.inUse
	}
	h.mu.Unlock()

	h.allocs.Inc()
	return nil
}

// release returns bytes previously charged by reserve.
func (h *Heap) release(bytes int64) {
	h.mu.Lock()
	h.inUse -= bytes
	h.live--
	h.mu.Unlock()

	h.frees.Inc()
}

// forget drops bytes from the accounting without counting a free.
func (h *Heap) forget(bytes int64) {
	h.mu.Lock()
	h.inUse -= bytes
	h.live--
	h.mu.Unlock()
}

// reclaim is release for buffers the GC found unreachable before they were freed.
func (h *Heap) reclaim(bytes int64) {
	h.release(bytes)
	h.reclaims.Inc()

	h.mu.Lock()
	logger := h.logger
	h.mu.Unlock()
	logger.Debug("reclaimed unreleased buffer", zap.String("size", humanize.IBytes(uint64(bytes))))
}

func formatLimit(bytes int64) string {
	if bytes == 0 {
		return "unlimited"
	}
	return humanize.IBytes(uint64(bytes))
}
