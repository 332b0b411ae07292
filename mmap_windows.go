//go:build windows

package arena

import (
	"errors"
	"log/slog"

	mmap "github.com/edsrzf/mmap-go"
)

// Mmap is a Fallback that serves each request from its own anonymous
// mapping, keeping overflow blocks off the Go heap.
type Mmap struct {
	mappings map[uintptr]mmap.MMap
	logger   *slog.Logger
}

// NewMmap creates an Mmap fallback. Unmap failures during Deallocate are
// reported to logger; a nil logger discards them.
func NewMmap(logger *slog.Logger) *Mmap {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Mmap{
		mappings: make(map[uintptr]mmap.MMap),
		logger:   logger,
	}
}

// Allocate maps n zeroed bytes. The mapping error is returned as is.
func (m *Mmap) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	data, err := mmap.MapRegion(nil, n, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, err
	}
	m.mappings[addr(data)] = data
	return data, nil
}

// Deallocate unmaps a block returned by Allocate. Unknown blocks are ignored.
func (m *Mmap) Deallocate(b []byte) {
	p := addr(b)
	data, ok := m.mappings[p]
	if !ok {
		return
	}
	delete(m.mappings, p)
	if err := data.Unmap(); err != nil {
		m.logger.Warn("failed to unmap fallback block", "size", len(data), "err", err)
	}
}

// Len returns the number of live mappings.
func (m *Mmap) Len() int {
	return len(m.mappings)
}

// Close unmaps every live mapping. Blocks still referenced become invalid.
func (m *Mmap) Close() error {
	var errs []error
	for p, data := range m.mappings {
		if err := data.Unmap(); err != nil {
			errs = append(errs, err)
		}
		delete(m.mappings, p)
	}
	return errors.Join(errs...)
}
