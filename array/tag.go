package array

// IteratorPairTag marks storages that can produce a begin/end iterator pair.
type IteratorPairTag struct{}

// BlockTag is reserved for storages that hand out contiguous blocks of
// tuples. No storage declares it yet and there is no dispatch for it.
type BlockTag struct{}

// Tagged is implemented by storages that declare a dispatch protocol.
type Tagged[T any] interface {
	StorageTag() T
}

// IteratorPairStorage is a storage declaring IteratorPairTag.
type IteratorPairStorage[I any] interface {
	Tagged[IteratorPairTag]
	Facade[I]
}

// Dispatch builds the iterator pair of s and invokes fn exactly once.
//
// The constraint on S is the tag: a storage that declares another tag does
// not satisfy IteratorPairStorage and fails to compile here. New protocols
// get their own tag type and dispatch function; existing storages are left
// alone.
func Dispatch[S IteratorPairStorage[I], I any](s S, fn func(begin, end I)) {
	fn(s.Begin(), s.End())
}

// DispatchRange is Dispatch restricted to tuples [start, end) of s.
func DispatchRange[S interface {
	IteratorPairStorage[I]
	IteratorAt(i int) I
}, I any](s S, start, end int, fn func(begin, end I)) {
	fn(s.IteratorAt(start), s.IteratorAt(end))
}
