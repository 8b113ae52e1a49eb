package array

import "github.com/hupe1980/agnostic/tuple"

// Array is the type-erased base shared by every storage.
type Array interface {
	NumberOfTuples() int
	NumberOfComponents() int
}

// Cursor is the minimal forward-iteration contract.
type Cursor[I any] interface {
	Index() int
	Next() I
	Equal(other I) bool
}

// Iterator is a Cursor with per-component random access at the current
// position. The self-referencing parameter lets Next and Equal return and
// accept the concrete iterator type without boxing.
type Iterator[I any, V tuple.Scalar] interface {
	Cursor[I]
	At(c int) V
}

// Facade produces the [begin, end) iterator pair over a storage.
type Facade[I any] interface {
	Begin() I
	End() I
}

// ForEach calls fn for every position in [begin, end).
func ForEach[I Cursor[I]](begin, end I, fn func(it I)) {
	for it := begin; !it.Equal(end); it = it.Next() {
		fn(it)
	}
}

// Distance returns the number of steps from begin to end.
func Distance[I Cursor[I]](begin, end I) int {
	return end.Index() - begin.Index()
}
