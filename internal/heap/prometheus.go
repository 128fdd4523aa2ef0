package heap

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig configures the metrics exported by [Collector].
//
// An instance is created by [NewCollector]; configuration funcs may change
// any field before the descriptors are built.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// ConstLabels are attached to every metric.
	ConstLabels prometheus.Labels
}

// Collector exports a heap's statistics as Prometheus metrics. Values are
// read from the heap on every scrape.
type Collector struct {
	h *Heap

	bytesInUse  *prometheus.Desc
	peakBytes   *prometheus.Desc
	liveAllocs  *prometheus.Desc
	limit       *prometheus.Desc
	allocs      *prometheus.Desc
	frees       *prometheus.Desc
	failures    *prometheus.Desc
	reclaims    *prometheus.Desc
	utilization *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for h. Many default parameters can be
// configured by passing configuration funcs.
func NewCollector(h *Heap, configFuncs ...func(c *PrometheusConfig)) *Collector {
	c := PrometheusConfig{
		Namespace: "vector",
		Subsystem: "heap",
	}
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(c.Namespace, c.Subsystem, name),
			help,
			nil,
			c.ConstLabels,
		)
	}

	return &Collector{
		h:           h,
		bytesInUse:  desc("bytes_in_use", "Number of bytes held by live buffers"),
		peakBytes:   desc("peak_bytes", "Highest number of bytes held by live buffers"),
		liveAllocs:  desc("live_allocations", "Number of allocations not freed yet"),
		limit:       desc("limit_bytes", "Configured byte limit, 0 if unlimited"),
		allocs:      desc("allocations_total", "Number of successful allocations"),
		frees:       desc("frees_total", "Number of allocations returned to the heap"),
		failures:    desc("allocation_failures_total", "Number of rejected allocation requests"),
		reclaims:    desc("reclaims_total", "Number of allocations returned by the garbage collector"),
		utilization: desc("utilization_ratio", "Ratio of bytes in use to the limit"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.bytesInUse
	ch <- c.peakBytes
	ch <- c.liveAllocs
	ch <- c.limit
	ch <- c.allocs
	ch <- c.frees
	ch <- c.failures
	ch <- c.reclaims
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.h.Metrics()

	ch <- prometheus.MustNewConstMetric(c.bytesInUse, prometheus.GaugeValue, float64(m.BytesInUse))
	ch <- prometheus.MustNewConstMetric(c.peakBytes, prometheus.GaugeValue, float64(m.PeakBytes))
	ch <- prometheus.MustNewConstMetric(c.liveAllocs, prometheus.GaugeValue, float64(m.LiveAllocs))
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(m.Limit))
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(m.Allocs))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(m.Frees))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(m.Failures))
	ch <- prometheus.MustNewConstMetric(c.reclaims, prometheus.CounterValue, float64(m.Reclaims))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}
