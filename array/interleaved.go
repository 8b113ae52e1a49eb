package array

import "github.com/hupe1980/agnostic/tuple"

// Interleaved stores tuples back to back in one buffer:
// x0 y0 z0 x1 y1 z1 ...
type Interleaved[V tuple.Scalar, A tuple.Arity] struct {
	data      []V
	numTuples int
}

// NewInterleaved creates an interleaved storage of n tuples over data.
func NewInterleaved[V tuple.Scalar, A tuple.Arity](n int, data []V) *Interleaved[V, A] {
	return &Interleaved[V, A]{data: data, numTuples: n}
}

// SetNumberOfTuples sets the tuple count. It does not touch the buffer.
func (s *Interleaved[V, A]) SetNumberOfTuples(n int) {
	s.numTuples = n
}

// SetArray points the storage at data. data must hold at least
// NumberOfComponents()*NumberOfTuples() values.
func (s *Interleaved[V, A]) SetArray(data []V) {
	s.data = data
}

// Array returns the backing buffer.
func (s *Interleaved[V, A]) Array() []V {
	return s.data
}

// NumberOfTuples implements Array.
func (s *Interleaved[V, A]) NumberOfTuples() int {
	return s.numTuples
}

// NumberOfComponents implements Array.
func (s *Interleaved[V, A]) NumberOfComponents() int {
	return tuple.Len[A]()
}

// Value returns component c of tuple i.
func (s *Interleaved[V, A]) Value(i, c int) V {
	return s.data[i*tuple.Len[A]()+c]
}

// Tuple gathers tuple i by value.
func (s *Interleaved[V, A]) Tuple(i int) tuple.Tuple[V, A] {
	n := tuple.Len[A]()
	return tuple.Of[V, A](s.data[i*n : i*n+n]...)
}

// StorageTag declares iterator-pair dispatch.
func (s *Interleaved[V, A]) StorageTag() IteratorPairTag {
	return IteratorPairTag{}
}

// Begin returns an iterator at tuple 0.
func (s *Interleaved[V, A]) Begin() InterleavedIterator[V, A] {
	return InterleavedIterator[V, A]{target: s}
}

// End returns an iterator at tuple NumberOfTuples.
func (s *Interleaved[V, A]) End() InterleavedIterator[V, A] {
	return s.IteratorAt(s.numTuples)
}

// IteratorAt returns an iterator at tuple i.
func (s *Interleaved[V, A]) IteratorAt(i int) InterleavedIterator[V, A] {
	return InterleavedIterator[V, A]{target: s, index: i, offset: i * tuple.Len[A]()}
}

// InterleavedIterator is a cursor over an Interleaved storage. It keeps the
// flat offset of the current tuple so At is a single indexed load.
type InterleavedIterator[V tuple.Scalar, A tuple.Arity] struct {
	target *Interleaved[V, A]
	index  int
	offset int
}

// Index returns the current tuple position.
func (it InterleavedIterator[V, A]) Index() int {
	return it.index
}

// Next returns the iterator advanced by one tuple.
func (it InterleavedIterator[V, A]) Next() InterleavedIterator[V, A] {
	it.index++
	it.offset += tuple.Len[A]()
	return it
}

// Equal reports whether both iterators walk the same storage and sit at the
// same position.
func (it InterleavedIterator[V, A]) Equal(o InterleavedIterator[V, A]) bool {
	return it.target == o.target && it.index == o.index
}

// At returns component c at the current position.
func (it InterleavedIterator[V, A]) At(c int) V {
	return it.target.data[it.offset+c]
}

// Tuple returns the current tuple by value.
func (it InterleavedIterator[V, A]) Tuple() tuple.Tuple[V, A] {
	return it.target.Tuple(it.index)
}
