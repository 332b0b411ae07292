package arena

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

// Bound is implemented by every Allocator, whatever its element type.
type Bound interface {
	Arena() *Arena
}

// Allocator hands out []T storage from a shared Arena. It is a cheap value:
// copies refer to the same Arena. The Arena must not be released while an
// Allocator, or anything built from one, is still in use.
//
// T must not contain Go pointers; the garbage collector does not scan arena
// memory.
type Allocator[T any] struct {
	a *Arena
}

// NewAllocator returns an Allocator for T drawing from a.
// It panics if T contains pointers.
func NewAllocator[T any](a *Arena) Allocator[T] {
	mustBePointerFree[T]()
	return Allocator[T]{a: a}
}

// Rebind returns an Allocator for U bound to the same Arena as al.
func Rebind[U, T any](al Allocator[T]) Allocator[U] {
	return NewAllocator[U](al.a)
}

// Arena returns the arena al draws from.
func (al Allocator[T]) Arena() *Arena {
	return al.a
}

// Equal reports whether al and other draw from the same Arena.
// The element types may differ.
func (al Allocator[T]) Equal(other Bound) bool {
	return other != nil && al.a == other.Arena()
}

// Allocate returns storage for n values of T. Returns nil, nil if n <= 0.
func (al Allocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	size := int(unsafe.Sizeof(*new(T)))
	if size == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/size {
		return nil, ErrSizeOverflow
	}
	b, err := al.a.Allocate(n * size)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// Deallocate gives back storage returned by Allocate; s must have the
// length it was allocated with.
func (al Allocator[T]) Deallocate(s []T) {
	size := int(unsafe.Sizeof(*new(T)))
	if len(s) == 0 || size == 0 {
		return
	}
	al.a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*size))
}

// Alloc returns a pointer to a zeroed T stored in the arena.
func Alloc[T any](a *Arena) (*T, error) {
	s, err := NewAllocator[T](a).Allocate(1)
	if err != nil {
		return nil, err
	}
	return &s[0], nil
}

// AllocSlice allocates a zeroed slice of n elements of type T.
// Returns nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	return NewAllocator[T](a).Allocate(n)
}

func mustBePointerFree[T any]() {
	if t := reflect.TypeFor[T](); hasPointers(t) {
		panic(fmt.Errorf("%w: %s", ErrPointerType, t))
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	default:
		return false
	}
}
