//go:build !unix && !windows

package arena

import (
	"errors"
	"log/slog"
)

// Mmap is unavailable on this platform; every Allocate fails with errors.ErrUnsupported.
type Mmap struct{}

// NewMmap creates an Mmap fallback.
func NewMmap(*slog.Logger) *Mmap {
	return &Mmap{}
}

// Allocate implements Fallback.
func (*Mmap) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	return nil, errors.ErrUnsupported
}

// Deallocate implements Fallback.
func (*Mmap) Deallocate([]byte) {}

// Len returns the number of live mappings.
func (*Mmap) Len() int { return 0 }

// Close implements io.Closer.
func (*Mmap) Close() error { return nil }
