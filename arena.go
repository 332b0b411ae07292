package arena

import (
	"log/slog"
	"unsafe"
)

// DefaultCapacity is the buffer size used when New is given a non-positive capacity (64 KiB).
const DefaultCapacity = 1 << 16

// MaxAlign is the alignment of every block handed out from the arena buffer.
// It is at least the alignment of any Go value and of 128-bit vector loads.
const MaxAlign = 16

// Arena is a fixed-capacity bump allocator with LIFO reclamation.
// Not goroutine-safe; only the metrics accessors may be called concurrently.
type Arena struct {
	raw      []byte  // backing allocation, over-sized for alignment
	buf      []byte  // MaxAlign-aligned window of raw, len == capacity
	base     uintptr // address of buf[0], kept after Release
	capacity int
	offset   int // first free byte, always a multiple of MaxAlign

	fallback Fallback
	logger   *slog.Logger
	stats    atomicStats
}

// New creates an Arena whose buffer holds capacity bytes.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int, opts ...Option) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	a := &Arena{
		capacity: capacity,
		fallback: Heap{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.raw = make([]byte, capacity+MaxAlign-1)
	shift := int(alignUp(addr(a.raw)) - addr(a.raw))
	a.buf = a.raw[shift : shift+capacity : shift+capacity]
	a.base = addr(a.buf)
	return a
}

// Allocate returns a zeroed block of n bytes. The block comes from the arena
// buffer when align(n) bytes remain, otherwise from the fallback. A fallback
// error is returned as is. Returns nil, nil if n <= 0.
func (a *Arena) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	a.panicIfReleased()

	// Compare before rounding so that huge n cannot overflow alignUp.
	free := a.capacity - a.offset
	if n <= free {
		size := int(alignUp(uintptr(n)))
		if size <= free {
			start := a.offset
			a.setOffset(start + size)
			a.stats.Allocs.Add(1)

			b := a.buf[start : start+n : start+n]
			clear(b)
			return b, nil
		}
	}
	return a.allocateFallback(n)
}

func (a *Arena) allocateFallback(n int) ([]byte, error) {
	b, err := a.fallback.Allocate(n)
	if err != nil {
		return nil, err
	}
	a.stats.FallbackAllocs.Add(1)
	a.stats.FallbackBytes.Add(uint64(n))
	a.logger.Debug("arena overflow, serving from fallback",
		"size", n, "used", a.offset, "capacity", a.capacity)
	return b, nil
}

// Deallocate gives back a block obtained from Allocate; its size is len(b).
// Only the most recently allocated in-buffer block is reclaimed; releasing any
// other in-buffer block is a no-op and its space stays in use until Reset.
// Blocks outside the buffer go to the fallback. Deallocate never panics.
func (a *Arena) Deallocate(b []byte) {
	if len(b) == 0 {
		return
	}
	p := addr(b)
	if !a.contains(p) {
		a.fallback.Deallocate(b)
		return
	}
	if a.buf == nil {
		return
	}

	start := int(p - a.base)
	size := int(alignUp(uintptr(len(b))))
	a.stats.Frees.Add(1)
	if start+size == a.offset {
		poison(a.buf[start : start+size])
		a.setOffset(start)
		return
	}

	a.stats.Stranded.Add(uint64(size))
	a.logger.Debug("arena free out of LIFO order, space kept until reset",
		"size", len(b), "offset", start, "used", a.offset)
}

// Reset makes the whole buffer available again. Every in-buffer block handed
// out before the call becomes invalid; fallback blocks are unaffected.
func (a *Arena) Reset() {
	a.panicIfReleased()
	poison(a.buf[:a.offset])
	a.setOffset(0)
	a.stats.Stranded.Store(0)
}

// Release drops the buffer and makes the arena unusable.
// Any subsequent Allocate or Reset will panic.
func (a *Arena) Release() {
	if a.buf != nil {
		a.logger.Debug("arena released", "stats", a.Metrics())
	}
	a.raw = nil
	a.buf = nil
	a.setOffset(0)
}

// InBuffer reports whether b starts inside the arena buffer.
func (a *Arena) InBuffer(b []byte) bool {
	return a.buf != nil && a.contains(addr(b))
}

// Used returns the number of buffer bytes in use, including alignment padding.
func (a *Arena) Used() int {
	return a.offset
}

// Size returns the capacity of the buffer in bytes.
func (a *Arena) Size() int {
	return a.capacity
}

func (a *Arena) contains(p uintptr) bool {
	return p >= a.base && p < a.base+uintptr(a.capacity)
}

func (a *Arena) setOffset(off int) {
	a.offset = off
	a.stats.Used.Store(int64(off))
	if int64(off) > a.stats.Peak.Load() {
		a.stats.Peak.Store(int64(off))
	}
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.buf == nil {
		panic("arena: use after Release()")
	}
}

// alignUp rounds off up to a multiple of MaxAlign.
func alignUp(off uintptr) uintptr {
	const mask = MaxAlign - 1
	return (off + mask) &^ mask
}

// addr returns the address of b's first element, or 0 for a nil slice.
func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
