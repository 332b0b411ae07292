package arena

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes an arena's metrics to Prometheus.
type Collector struct {
	arena *Arena

	used           *prometheus.Desc
	capacity       *prometheus.Desc
	peak           *prometheus.Desc
	stranded       *prometheus.Desc
	allocs         *prometheus.Desc
	frees          *prometheus.Desc
	fallbackAllocs *prometheus.Desc
	fallbackBytes  *prometheus.Desc
}

// NewCollector creates a Collector for a. Every series carries an "arena"
// label set to name, so several arenas can share one registry.
func NewCollector(a *Arena, name string) *Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc("stackarena_"+metric, help, nil, labels)
	}
	return &Collector{
		arena:          a,
		used:           desc("used_bytes", "Arena buffer bytes currently in use, including alignment padding."),
		capacity:       desc("capacity_bytes", "Arena buffer size in bytes."),
		peak:           desc("peak_bytes", "Highest number of arena buffer bytes ever in use."),
		stranded:       desc("stranded_bytes", "Bytes freed out of LIFO order and not reclaimable until reset."),
		allocs:         desc("allocations_total", "Allocations served from the arena buffer."),
		frees:          desc("frees_total", "Deallocations of arena buffer blocks."),
		fallbackAllocs: desc("fallback_allocations_total", "Allocations that overflowed the arena buffer."),
		fallbackBytes:  desc("fallback_bytes_total", "Bytes requested from the fallback allocator."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.used
	ch <- c.capacity
	ch <- c.peak
	ch <- c.stranded
	ch <- c.allocs
	ch <- c.frees
	ch <- c.fallbackAllocs
	ch <- c.fallbackBytes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.arena.Metrics()
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(m.Used))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(m.Peak))
	ch <- prometheus.MustNewConstMetric(c.stranded, prometheus.GaugeValue, float64(m.Stranded))
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(m.Allocs))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(m.Frees))
	ch <- prometheus.MustNewConstMetric(c.fallbackAllocs, prometheus.CounterValue, float64(m.FallbackAllocs))
	ch <- prometheus.MustNewConstMetric(c.fallbackBytes, prometheus.CounterValue, float64(m.FallbackBytes))
}
