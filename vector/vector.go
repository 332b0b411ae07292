// Package vector implements a growable, owning dynamic array whose buffers
// come from a pluggable Storage.
//
// Growth is all-or-nothing: a new buffer is allocated and filled before the
// old one is given back, so a failed allocation or a failed element
// initializer leaves the vector exactly as it was.
package vector

import (
	"fmt"
	"iter"
	"unsafe"
)

// MinGrowth is the capacity of the first buffer a push allocates for an empty vector.
// Later growth doubles the capacity.
const MinGrowth = 16

// Vector is a growable array of T that owns its buffer. The zero value is an
// empty heap-backed vector ready to use. Not goroutine-safe.
type Vector[T any] struct {
	elems    []T // len(elems) == capacity; elems[:n] are live
	n        int
	storage  Storage[T]
	released bool
}

// New creates an empty vector. No buffer is allocated until the first insertion.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{storage: HeapStorage[T]{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewFilled creates a vector holding n copies of x, with capacity n.
func NewFilled[T any](n int, x T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if n <= 0 {
		return v, nil
	}
	buf, err := v.store().Allocate(n)
	if err != nil {
		return nil, err
	}
	for i := range buf {
		buf[i] = x
	}
	v.elems = buf
	v.n = n
	return v, nil
}

// From creates a vector holding a copy of vals, with capacity len(vals).
func From[T any](vals []T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if len(vals) == 0 {
		return v, nil
	}
	buf, err := v.store().Allocate(len(vals))
	if err != nil {
		return nil, err
	}
	v.elems = buf
	v.n = copy(buf, vals)
	return v, nil
}

// Of creates a heap-backed vector holding vals.
func Of[T any](vals ...T) *Vector[T] {
	v, _ := From(vals) // heap storage does not fail
	return v
}

// Clone returns an independent copy that uses the same Storage.
// The copy's capacity equals v's size.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.panicIfReleased()
	return From(v.Slice(), WithStorage(v.store()))
}

// Move transfers v's buffer and elements to a new vector. v is left empty,
// with no buffer, and stays usable.
func (v *Vector[T]) Move() *Vector[T] {
	v.panicIfReleased()
	dst := &Vector[T]{elems: v.elems, n: v.n, storage: v.storage}
	v.elems = nil
	v.n = 0
	return dst
}

// Release gives the buffer back to its Storage. The vector cannot be used
// afterwards; any further call other than Release panics.
func (v *Vector[T]) Release() {
	if v.released {
		return
	}
	if v.elems != nil {
		v.store().Deallocate(v.elems)
	}
	v.elems = nil
	v.n = 0
	v.released = true
}

// Size returns the number of elements.
func (v *Vector[T]) Size() int { return v.n }

// Cap returns the number of elements the current buffer can hold.
func (v *Vector[T]) Cap() int { return len(v.elems) }

// Empty reports whether the vector has no elements.
func (v *Vector[T]) Empty() bool { return v.n == 0 }

// At returns the element at index i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T {
	return v.elems[:v.n][i]
}

// Ptr returns a pointer to the element at index i. The pointer is invalidated
// by any operation that reallocates or shifts elements.
func (v *Vector[T]) Ptr(i int) *T {
	return &v.elems[:v.n][i]
}

// Set replaces the element at index i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, x T) {
	v.elems[:v.n][i] = x
}

// Front returns the first element. It panics if the vector is empty.
func (v *Vector[T]) Front() T { return v.At(0) }

// Back returns the last element. It panics if the vector is empty.
func (v *Vector[T]) Back() T { return v.At(v.n - 1) }

// Slice returns the live elements. The slice aliases the vector's buffer and
// is capped at Size, so appending to it never writes into the vector.
func (v *Vector[T]) Slice() []T {
	return v.elems[:v.n:v.n]
}

// All returns an iterator over index/element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.elems[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.elems[i]) {
				return
			}
		}
	}
}

// PushBack appends x, growing the buffer first if it is full.
func (v *Vector[T]) PushBack(x T) error {
	v.panicIfReleased()
	if v.full() {
		buf, err := v.transfer(v.nextCap())
		if err != nil {
			return err
		}
		v.commit(buf)
	}
	v.elems[v.n] = x
	v.n++
	return nil
}

// EmplaceBack appends a zero T, lets init fill it in place and returns a
// pointer to it. If init returns an error or panics the vector is left as it
// was before the call, including its buffer. A nil init appends a zero T.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	v.panicIfReleased()
	grown := v.full()
	buf := v.elems
	if grown {
		var err error
		if buf, err = v.transfer(v.nextCap()); err != nil {
			return nil, err
		}
	}

	slot := &buf[v.n]
	done := false
	defer func() {
		if done {
			return
		}
		if grown {
			v.store().Deallocate(buf)
			return
		}
		var zero T
		*slot = zero
	}()

	if init != nil {
		if err := init(slot); err != nil {
			return nil, err
		}
	}
	done = true
	if grown {
		v.commit(buf)
	}
	v.n++
	return slot, nil
}

// Insert inserts vals before index pos, keeping the order of both the
// existing and the inserted elements. If the buffer is too small it is
// replaced by one holding exactly Size()+len(vals) elements.
// It panics if pos is out of range [0, Size()].
func (v *Vector[T]) Insert(pos int, vals ...T) error {
	v.panicIfReleased()
	if pos < 0 || pos > v.n {
		panic(fmt.Sprintf("vector: insert position %d out of range [0:%d]", pos, v.n))
	}
	m := len(vals)
	if m == 0 {
		return nil
	}

	if len(v.elems)-v.n < m {
		buf, err := v.store().Allocate(v.n + m)
		if err != nil {
			return err
		}
		copy(buf, v.elems[:pos])
		copy(buf[pos+m:], v.elems[pos:v.n])
		copy(buf[pos:pos+m], vals)
		v.commit(buf)
		v.n += m
		return nil
	}

	if overlaps(v.elems, vals) {
		vals = append([]T(nil), vals...)
	}
	copy(v.elems[pos+m:v.n+m], v.elems[pos:v.n])
	copy(v.elems[pos:pos+m], vals)
	v.n += m
	return nil
}

// Erase removes the element at pos, shifting later elements left, and
// returns pos. Erasing at Size() is a no-op.
// It panics if pos is out of range [0, Size()].
func (v *Vector[T]) Erase(pos int) int {
	v.panicIfReleased()
	if pos == v.n {
		return pos
	}
	if pos < 0 || pos > v.n {
		panic(fmt.Sprintf("vector: erase position %d out of range [0:%d]", pos, v.n))
	}
	copy(v.elems[pos:v.n-1], v.elems[pos+1:v.n])
	var zero T
	v.elems[v.n-1] = zero
	v.n--
	return pos
}

// PopBack removes and returns the last element.
// ok is false if the vector is empty.
func (v *Vector[T]) PopBack() (x T, ok bool) {
	v.panicIfReleased()
	if v.n == 0 {
		return x, false
	}
	v.n--
	x = v.elems[v.n]
	var zero T
	v.elems[v.n] = zero
	return x, true
}

// Clear removes all elements and keeps the buffer.
func (v *Vector[T]) Clear() {
	v.panicIfReleased()
	clear(v.elems[:v.n])
	v.n = 0
}

// Reserve makes sure the buffer holds at least n elements, reallocating to
// exactly n if it does not.
func (v *Vector[T]) Reserve(n int) error {
	v.panicIfReleased()
	if n <= len(v.elems) {
		return nil
	}
	buf, err := v.transfer(n)
	if err != nil {
		return err
	}
	v.commit(buf)
	return nil
}

// store returns the vector's Storage; the zero Vector uses the heap.
func (v *Vector[T]) store() Storage[T] {
	if v.storage == nil {
		v.storage = HeapStorage[T]{}
	}
	return v.storage
}

func (v *Vector[T]) full() bool { return v.n == len(v.elems) }

func (v *Vector[T]) nextCap() int {
	if len(v.elems) == 0 {
		return MinGrowth
	}
	return 2 * len(v.elems)
}

// transfer allocates a buffer of newCap elements holding a copy of the live
// elements. The vector itself is not modified.
func (v *Vector[T]) transfer(newCap int) ([]T, error) {
	buf, err := v.store().Allocate(newCap)
	if err != nil {
		return nil, err
	}
	copy(buf, v.elems[:v.n])
	return buf, nil
}

// commit installs buf and only then gives the old buffer back.
func (v *Vector[T]) commit(buf []T) {
	old := v.elems
	v.elems = buf
	if old != nil {
		v.store().Deallocate(old)
	}
}

func (v *Vector[T]) panicIfReleased() {
	if v.released {
		panic("vector: use after Release()")
	}
}

// overlaps reports whether the memory ranges a[:len(a)] and b[:len(b)] overlap.
func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	elemSize := unsafe.Sizeof(a[0])
	if elemSize == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&a[0])) <= uintptr(unsafe.Pointer(&b[len(b)-1]))+(elemSize-1) &&
		uintptr(unsafe.Pointer(&b[0])) <= uintptr(unsafe.Pointer(&a[len(a)-1]))+(elemSize-1)
}
