package arena

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// atomicStats mirrors arena state so metrics can be read from another
// goroutine, e.g. a Prometheus scrape, while the owner keeps allocating.
type atomicStats struct {
	Used           atomic.Int64
	Peak           atomic.Int64
	Allocs         atomic.Uint64
	Frees          atomic.Uint64
	Stranded       atomic.Uint64
	FallbackAllocs atomic.Uint64
	FallbackBytes  atomic.Uint64
}

// Peak returns the highest number of buffer bytes ever in use.
// Unlike Used, it is not cleared by Reset.
func (a *Arena) Peak() int {
	return int(a.stats.Peak.Load())
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
func (a *Arena) Utilization() float64 {
	return float64(a.stats.Used.Load()) / float64(a.capacity)
}

// Metrics returns a snapshot of arena statistics.
// It is safe to call concurrently with allocation.
func (a *Arena) Metrics() ArenaMetrics {
	used := int(a.stats.Used.Load())
	return ArenaMetrics{
		Used:           used,
		Capacity:       a.capacity,
		Peak:           int(a.stats.Peak.Load()),
		Utilization:    float64(used) / float64(a.capacity),
		Allocs:         a.stats.Allocs.Load(),
		Frees:          a.stats.Frees.Load(),
		Stranded:       a.stats.Stranded.Load(),
		FallbackAllocs: a.stats.FallbackAllocs.Load(),
		FallbackBytes:  a.stats.FallbackBytes.Load(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	Used           int     // Buffer bytes in use, including alignment padding
	Capacity       int     // Buffer size in bytes
	Peak           int     // High-water mark of Used
	Utilization    float64 // Used / Capacity (0.0-1.0)
	Allocs         uint64  // In-buffer allocations
	Frees          uint64  // In-buffer deallocations, reclaimed or not
	Stranded       uint64  // Bytes freed out of LIFO order since the last Reset
	FallbackAllocs uint64  // Allocations served by the fallback
	FallbackBytes  uint64  // Bytes requested from the fallback
}

// String formats the snapshot for logs, with byte counts in IEC units.
func (m ArenaMetrics) String() string {
	return fmt.Sprintf("used=%s/%s (%.1f%%) peak=%s stranded=%s allocs=%d frees=%d fallback=%d (%s)",
		humanize.IBytes(uint64(m.Used)), humanize.IBytes(uint64(m.Capacity)), m.Utilization*100,
		humanize.IBytes(uint64(m.Peak)), humanize.IBytes(m.Stranded),
		m.Allocs, m.Frees, m.FallbackAllocs, humanize.IBytes(m.FallbackBytes))
}
