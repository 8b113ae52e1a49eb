package array

import "github.com/hupe1980/agnostic/tuple"

// Planar stores A.Components() independent component buffers.
//
// The component slots start nil and the tuple count starts at zero.
// SetArray and SetNumberOfTuples are the only mutators. Every slot, once
// set, must hold at least NumberOfTuples elements.
type Planar[V tuple.Scalar, A tuple.Arity] struct {
	arrays    [tuple.MaxComponents][]V
	numTuples int
}

// NewPlanar creates a planar storage of n tuples over the given component
// buffers. Buffers beyond the arity are ignored; missing ones stay nil.
func NewPlanar[V tuple.Scalar, A tuple.Arity](n int, components ...[]V) *Planar[V, A] {
	p := &Planar[V, A]{numTuples: n}
	for c := 0; c < len(components) && c < tuple.Len[A](); c++ {
		p.arrays[c] = components[c]
	}
	return p
}

// SetNumberOfTuples sets the tuple count. It does not touch the buffers.
func (p *Planar[V, A]) SetNumberOfTuples(n int) {
	p.numTuples = n
}

// SetArray points component slot c at data. The storage does not take
// ownership of data.
func (p *Planar[V, A]) SetArray(c int, data []V) {
	p.arrays[c] = data
}

// Array returns the buffer in component slot c.
func (p *Planar[V, A]) Array(c int) []V {
	return p.arrays[c]
}

// NumberOfTuples implements Array.
func (p *Planar[V, A]) NumberOfTuples() int {
	return p.numTuples
}

// NumberOfComponents implements Array.
func (p *Planar[V, A]) NumberOfComponents() int {
	return tuple.Len[A]()
}

// Value returns component c of tuple i.
func (p *Planar[V, A]) Value(i, c int) V {
	return p.arrays[c][i]
}

// Tuple gathers tuple i by value.
func (p *Planar[V, A]) Tuple(i int) tuple.Tuple[V, A] {
	var t tuple.Tuple[V, A]
	for c := 0; c < tuple.Len[A](); c++ {
		t.Set(c, p.arrays[c][i])
	}
	return t
}

// StorageTag declares iterator-pair dispatch.
func (p *Planar[V, A]) StorageTag() IteratorPairTag {
	return IteratorPairTag{}
}

// Begin returns an iterator at tuple 0.
func (p *Planar[V, A]) Begin() PlanarIterator[V, A] {
	return PlanarIterator[V, A]{target: p}
}

// End returns an iterator at tuple NumberOfTuples.
func (p *Planar[V, A]) End() PlanarIterator[V, A] {
	return PlanarIterator[V, A]{target: p, index: p.numTuples}
}

// IteratorAt returns an iterator at tuple i.
func (p *Planar[V, A]) IteratorAt(i int) PlanarIterator[V, A] {
	return PlanarIterator[V, A]{target: p, index: i}
}

// PlanarIterator is a cursor over a Planar storage.
type PlanarIterator[V tuple.Scalar, A tuple.Arity] struct {
	target *Planar[V, A]
	index  int
}

// Index returns the current tuple position.
func (it PlanarIterator[V, A]) Index() int {
	return it.index
}

// Next returns the iterator advanced by one tuple.
func (it PlanarIterator[V, A]) Next() PlanarIterator[V, A] {
	it.index++
	return it
}

// Equal reports whether both iterators walk the same storage and sit at the
// same position.
func (it PlanarIterator[V, A]) Equal(o PlanarIterator[V, A]) bool {
	return it.target == o.target && it.index == o.index
}

// At returns component c at the current position.
func (it PlanarIterator[V, A]) At(c int) V {
	return it.target.arrays[c][it.index]
}

// Tuple returns the current tuple by value.
func (it PlanarIterator[V, A]) Tuple() tuple.Tuple[V, A] {
	return it.target.Tuple(it.index)
}
