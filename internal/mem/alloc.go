package mem

import (
	"unsafe"

	"github.com/hupe1980/agnostic/tuple"
)

// Alignment is the byte alignment of every buffer returned by this package.
// It matches a cache line and the widest vector register in use.
const Alignment = 64

// AllocAligned allocates size bytes starting at an address divisible by
// Alignment. The backing array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// Alloc allocates n zeroed values of T with Alignment.
func Alloc[T tuple.Scalar](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	b := AllocAligned(n * int(unsafe.Sizeof(zero)))

	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n) //nolint:gosec // unsafe is required for memory alignment
}

// Grow returns a buffer of length n holding the prefix of old. It reuses
// old when its capacity suffices and its start is aligned.
func Grow[T tuple.Scalar](old []T, n int) []T {
	if n <= cap(old) && IsAligned(old) {
		return old[:n]
	}

	out := Alloc[T](n)
	copy(out, old)

	return out
}

// IsAligned reports whether s starts on an Alignment boundary. Empty slices
// are aligned.
func IsAligned[T tuple.Scalar](s []T) bool {
	if cap(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))%Alignment == 0 //nolint:gosec // address inspection only
}
