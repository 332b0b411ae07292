package vector

// Storage supplies and takes back element buffers for a Vector.
// arena.Allocator satisfies it.
type Storage[T any] interface {
	// Allocate returns a buffer of exactly n elements.
	Allocate(n int) ([]T, error)
	// Deallocate takes back a buffer returned by Allocate, with its full length.
	Deallocate(s []T)
}

// HeapStorage allocates buffers on the Go heap. It is the default Storage.
type HeapStorage[T any] struct{}

// Allocate implements Storage.
func (HeapStorage[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

// Deallocate implements Storage. The garbage collector reclaims the buffer.
func (HeapStorage[T]) Deallocate([]T) {}

// Option is a configuration option for Vector.
type Option[T any] func(*Vector[T])

// WithStorage sets where the vector's buffers come from.
// A nil storage is ignored.
func WithStorage[T any](s Storage[T]) Option[T] {
	return func(v *Vector[T]) {
		if s != nil {
			v.storage = s
		}
	}
}
