// Package arena implements a fixed-capacity stack allocator (memory arena) for Go.
//
// # Overview
//
// An Arena owns one buffer of a fixed size and serves requests by bumping an
// offset through it. Every block starts on a MaxAlign boundary. Only the most
// recently allocated block can be returned early (LIFO discipline); freeing
// any other block is accepted but its space stays in use until Reset.
// Requests that do not fit in the remaining space are routed to a Fallback,
// the Go heap by default, and never touch the offset.
//
// # Basic Usage
//
//	a := arena.New(4096)
//	defer a.Release()
//
//	buf, err := a.Allocate(128) // raw bytes
//	if err != nil {
//		return err
//	}
//	a.Deallocate(buf) // top of the stack, space is reclaimed
//
//	p, err := arena.Alloc[Point](a)        // one zeroed value
//	s, err := arena.AllocSlice[int64](a, 8) // zeroed slice
//
//	a.Reset() // everything handed out from the buffer is now invalid
//
// # Allocators
//
// Allocator[T] is a copyable handle that views an Arena as typed storage. Any
// number of allocators, of any element types, may share one Arena; Rebind
// derives an allocator for another element type and Equal compares the arena
// they draw from. The vector package accepts an Allocator as its storage:
//
//	al := arena.NewAllocator[float64](a)
//	v := vector.New(vector.WithStorage[float64](al))
//
// Element types must not contain Go pointers: arena memory is a []byte and is
// never scanned by the garbage collector. NewAllocator panics for such types.
//
// # Fallback
//
// Heap serves overflow from the Go heap. Mmap serves each overflow block from
// its own anonymous mapping and unmaps it on Deallocate (unix and windows;
// elsewhere every Mmap allocation fails with errors.ErrUnsupported).
//
// # Important Notes
//
//   - Arenas are not goroutine-safe; Metrics may be read concurrently
//   - Allocated memory is only valid until Reset, LIFO Deallocate or Release
//   - Blocks handed out by Allocate are zeroed
//   - Build with -tags arenadebug to poison reclaimed bytes with 0xdd
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Stranded: %d bytes\n", m.Stranded)
//	log.Println(m) // used=176 B/256 B (68.8%) peak=176 B ...
//
//	prometheus.MustRegister(arena.NewCollector(a, "request"))
package arena
