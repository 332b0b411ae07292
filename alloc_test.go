package arena

import (
	"math"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

func TestAllocatorAllocate(t *testing.T) {
	a := New(512)
	al := NewAllocator[int](a)

	p, err := al.Allocate(4)
	require.NoError(t, err)
	require.Len(t, p, 4)
	for i := range p {
		p[i] = i * 2
	}
	for i := range p {
		assert.Equal(t, i*2, p[i])
	}
	assert.Equal(t, int(alignUp(4*unsafe.Sizeof(int(0)))), a.Used())

	al.Deallocate(p)
	assert.Equal(t, 0, a.Used())
}

func TestAllocatorAllocateZero(t *testing.T) {
	al := NewAllocator[int](New(64))
	p, err := al.Allocate(0)
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NotPanics(t, func() { al.Deallocate(nil) })
}

func TestAllocatorSizeOverflow(t *testing.T) {
	al := NewAllocator[int64](New(64))
	p, err := al.Allocate(math.MaxInt / 4)
	assert.ErrorIs(t, err, ErrSizeOverflow)
	assert.Nil(t, p)
}

func TestAllocatorZeroSizedType(t *testing.T) {
	a := New(64)
	al := NewAllocator[struct{}](a)

	p, err := al.Allocate(5)
	require.NoError(t, err)
	assert.Len(t, p, 5)
	assert.Equal(t, 0, a.Used())
	al.Deallocate(p)
}

func TestAllocatorFallback(t *testing.T) {
	a := New(64)
	al := NewAllocator[int64](a)

	p, err := al.Allocate(100)
	require.NoError(t, err)
	require.Len(t, p, 100)
	p[99] = 7

	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&p[0])), 800)
	assert.False(t, a.InBuffer(bytes))
	assert.Equal(t, 0, a.Used())
	al.Deallocate(p)
	assert.Equal(t, 0, a.Used())
}

func TestAllocatorEquality(t *testing.T) {
	arena1 := New(256)
	arena2 := New(256)

	a1 := NewAllocator[int](arena1)
	a2 := NewAllocator[int](arena1)
	a3 := NewAllocator[int](arena2)
	a4 := NewAllocator[float32](arena1)

	assert.True(t, a1.Equal(a2))
	assert.True(t, a1 == a2)
	assert.False(t, a1.Equal(a3))
	assert.True(t, a1 != a3)
	assert.True(t, a1.Equal(a4), "equality ignores the element type")
	assert.True(t, a4.Equal(a1))
	assert.False(t, a4.Equal(a3))
	assert.False(t, a1.Equal(nil))
}

func TestRebind(t *testing.T) {
	a := New(256)
	al := NewAllocator[int](a)

	rebound := Rebind[float64](al)
	assert.Equal(t, reflect.TypeFor[Allocator[float64]](), reflect.TypeOf(rebound))
	assert.Same(t, a, rebound.Arena())
	assert.True(t, rebound.Equal(al))

	f, err := rebound.Allocate(2)
	require.NoError(t, err)
	i, err := al.Allocate(2)
	require.NoError(t, err)
	f[0], i[0] = 1.5, 3
	assert.Equal(t, 32, a.Used(), "both element types draw from one arena")
}

func TestNewAllocatorRejectsPointers(t *testing.T) {
	a := New(64)

	assert.Panics(t, func() { NewAllocator[string](a) })
	assert.Panics(t, func() { NewAllocator[*int](a) })
	assert.Panics(t, func() { NewAllocator[[]byte](a) })
	assert.Panics(t, func() { Rebind[map[int]int](NewAllocator[int](a)) })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPointerType)
	}()
	NewAllocator[struct {
		id   int
		name string
	}](a)
}

func TestHasPointers(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"int", reflect.TypeFor[int](), false},
		{"float64", reflect.TypeFor[float64](), false},
		{"complex128", reflect.TypeFor[complex128](), false},
		{"flat struct", reflect.TypeFor[testStruct](), false},
		{"array of ints", reflect.TypeFor[[4]int32](), false},
		{"empty array of pointers", reflect.TypeFor[[0]*int](), false},
		{"array of strings", reflect.TypeFor[[2]string](), true},
		{"pointer", reflect.TypeFor[*int](), true},
		{"unsafe pointer", reflect.TypeFor[unsafe.Pointer](), true},
		{"slice", reflect.TypeFor[[]int](), true},
		{"map", reflect.TypeFor[map[string]int](), true},
		{"chan", reflect.TypeFor[chan int](), true},
		{"func", reflect.TypeFor[func()](), true},
		{"interface", reflect.TypeFor[any](), true},
		{"nested struct", reflect.TypeFor[struct{ inner struct{ p *int } }](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasPointers(tt.typ))
		})
	}
}

func TestAlloc(t *testing.T) {
	a := New(1024)

	ptr, err := Alloc[int](a)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, 0, *ptr)

	s, err := Alloc[testStruct](a)
	require.NoError(t, err)
	assert.Equal(t, testStruct{}, *s)

	*ptr = 42
	s.a = 100
	assert.Equal(t, 42, *ptr)
	assert.Equal(t, int64(100), s.a)
}

func TestAllocZeroedAfterReset(t *testing.T) {
	a := New(64)

	p, err := Alloc[int64](a)
	require.NoError(t, err)
	*p = -1

	a.Reset()
	q, err := Alloc[int64](a)
	require.NoError(t, err)
	assert.Equal(t, unsafe.Pointer(p), unsafe.Pointer(q))
	assert.Equal(t, int64(0), *q)
}

func TestAllocSlice(t *testing.T) {
	a := New(1024)

	s, err := AllocSlice[int](a, 10)
	require.NoError(t, err)
	assert.Len(t, s, 10)
	for _, x := range s {
		assert.Equal(t, 0, x)
	}

	empty, err := AllocSlice[int](a, 0)
	assert.NoError(t, err)
	assert.Nil(t, empty)
}

func BenchmarkAlloc(b *testing.B) {
	a := New(1024 * 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Alloc[testStruct](a)
		if i%10000 == 9999 {
			a.Reset()
		}
	}
}

func BenchmarkAllocatorAllocate(b *testing.B) {
	a := New(1024 * 1024)
	al := NewAllocator[float64](a)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := al.Allocate(64)
		al.Deallocate(s)
	}
}
