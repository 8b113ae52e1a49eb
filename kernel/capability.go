package kernel

import (
	"math"

	"github.com/hupe1980/agnostic/dynarray"
	"github.com/hupe1980/agnostic/tuple"
)

// MagnitudeArray computes the magnitude of the first n tuples of in and
// stores each as a one-component tuple of out.
func MagnitudeArray(out, in *dynarray.Adapter, n int) {
	MagnitudeArraySpan(out, in, 0, n)
}

// MagnitudeArraySpan is MagnitudeArray over tuples [start, end).
func MagnitudeArraySpan(out, in *dynarray.Adapter, start, end int) {
	var buf [tuple.MaxComponents]float64
	var mm [1]float64
	for i := start; i < end; i++ {
		v := in.Tuple(i, buf[:])
		mm[0] = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		out.SetTuple(i, mm[:])
	}
}

// MagnitudeIterator computes the magnitude of every tuple reachable
// through it and writes it to out by flat index.
func MagnitudeIterator(out *dynarray.Adapter, it dynarray.Iterator) {
	MagnitudeIteratorSpan(out, it, 0, it.NumberOfTuples())
}

// MagnitudeIteratorSpan is MagnitudeIterator over tuples [start, end).
// The iterator is read as xyz triples regardless of its component count.
func MagnitudeIteratorSpan(out *dynarray.Adapter, it dynarray.Iterator, start, end int) {
	for i := start; i < end; i++ {
		x := it.GetValue(3 * i)
		y := it.GetValue(3*i + 1)
		z := it.GetValue(3*i + 2)
		out.SetValue(i, math.Sqrt(x*x+y*y+z*z))
	}
}
