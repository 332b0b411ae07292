package arena

import "math"

// Fallback serves requests that do not fit in an arena's buffer.
type Fallback interface {
	// Allocate returns a block of n bytes aligned to MaxAlign, or nil for n <= 0.
	Allocate(n int) ([]byte, error)
	// Deallocate releases a block returned by Allocate. It must not panic.
	Deallocate(b []byte)
}

// Heap is a Fallback backed by the Go heap. Blocks are reclaimed by the
// garbage collector once unreferenced, so Deallocate does nothing.
// All Heap values are interchangeable.
type Heap struct{}

// Allocate returns a zeroed, MaxAlign-aligned block of n bytes.
// Returns nil, nil if n <= 0.
func (Heap) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > math.MaxInt-(MaxAlign-1) {
		return nil, ErrSizeOverflow
	}
	buf := make([]byte, n+MaxAlign-1) // padding for MaxAlign alignment
	shift := int(alignUp(addr(buf)) - addr(buf))
	return buf[shift : shift+n : shift+n], nil
}

// Deallocate implements Fallback.
func (Heap) Deallocate([]byte) {}
