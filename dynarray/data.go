package dynarray

import (
	"github.com/hupe1980/agnostic/internal/mem"
	"github.com/hupe1980/agnostic/tuple"
)

// DataArray is an interleaved container with a fixed component count. It
// either owns its buffer (SetNumberOfTuples) or borrows one (SetArray).
type DataArray[V tuple.Scalar] struct {
	data    []V
	comps   int
	n       int
	owned   bool
	scratch []float64
}

// NewDataArray returns an empty container with the given component count.
func NewDataArray[V tuple.Scalar](components int) *DataArray[V] {
	if components < 1 || components > tuple.MaxComponents {
		panic("dynarray: component count out of range")
	}
	return &DataArray[V]{comps: components}
}

// SetNumberOfTuples resizes to n tuples, preserving existing values. A
// borrowed buffer is copied into an owned one on first resize.
func (d *DataArray[V]) SetNumberOfTuples(n int) {
	size := n * d.comps
	if d.owned {
		old := len(d.data)
		d.data = mem.Grow(d.data, size)
		if size > old {
			clear(d.data[old:])
		}
	} else {
		buf := mem.Alloc[V](size)
		copy(buf, d.data)
		d.data = buf
		d.owned = true
	}
	d.n = n
}

// SetArray borrows data as n tuples. data must hold n*components values.
func (d *DataArray[V]) SetArray(data []V, n int) {
	d.data = data
	d.n = n
	d.owned = false
}

// Pointer returns the raw interleaved buffer.
func (d *DataArray[V]) Pointer() []V { return d.data[:d.n*d.comps] }

// Owned reports whether the buffer was allocated by the container.
func (d *DataArray[V]) Owned() bool { return d.owned }

func (d *DataArray[V]) NumberOfTuples() int { return d.n }

func (d *DataArray[V]) NumberOfComponents() int { return d.comps }

func (d *DataArray[V]) GetComponent(i, c int) float64 {
	return float64(d.data[i*d.comps+c])
}

func (d *DataArray[V]) GetTuple(i int) []float64 {
	if d.scratch == nil {
		d.scratch = make([]float64, d.comps)
	}
	d.GetTupleInto(i, d.scratch)
	return d.scratch
}

func (d *DataArray[V]) GetTupleInto(i int, dst []float64) {
	base := i * d.comps
	for c := range d.comps {
		dst[c] = float64(d.data[base+c])
	}
}

func (d *DataArray[V]) SetTuple(i int, src []float64) {
	base := i * d.comps
	for c := range d.comps {
		d.data[base+c] = V(src[c])
	}
}

func (d *DataArray[V]) GetValue(flat int) float64 { return float64(d.data[flat]) }

func (d *DataArray[V]) SetValue(flat int, v float64) { d.data[flat] = V(v) }

func (d *DataArray[V]) NewIterator() Iterator {
	return dataIterator[V]{d: d}
}

// Shard shares the buffer as borrowed.
func (d *DataArray[V]) Shard() Container {
	return &DataArray[V]{data: d.data, comps: d.comps, n: d.n}
}

type dataIterator[V tuple.Scalar] struct {
	d *DataArray[V]
}

func (it dataIterator[V]) GetValue(flat int) float64 { return float64(it.d.data[flat]) }

func (it dataIterator[V]) NumberOfTuples() int { return it.d.n }

func (it dataIterator[V]) NumberOfComponents() int { return it.d.comps }
