package kernel

import (
	"math"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/internal/cpu"
	"github.com/hupe1980/agnostic/tuple"
)

// Set once at init from the detected host.
var unrolled = cpu.ActiveImpl() == cpu.ImplUnrolled

func sqrt[V tuple.Float](v V) V {
	return V(math.Sqrt(float64(v)))
}

// Magnitude computes out[i] = sqrt(x[i]² + y[i]² + z[i]²) for every i of
// out. x, y and z must hold at least len(out) values.
func Magnitude[V tuple.Float](out, x, y, z []V) {
	if unrolled {
		magnitudeUnrolled(out, x, y, z)
		return
	}
	magnitudeGeneric(out, x, y, z)
}

func magnitudeGeneric[V tuple.Float](out, x, y, z []V) {
	n := len(out)
	x, y, z = x[:n], y[:n], z[:n]
	for i := range out {
		out[i] = sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
	}
}

func magnitudeUnrolled[V tuple.Float](out, x, y, z []V) {
	n := len(out)
	x, y, z = x[:n], y[:n], z[:n]

	i := 0
	for ; i+4 <= n; i += 4 {
		o := out[i : i+4 : i+4]
		a := x[i : i+4 : i+4]
		b := y[i : i+4 : i+4]
		c := z[i : i+4 : i+4]
		o[0] = sqrt(a[0]*a[0] + b[0]*b[0] + c[0]*c[0])
		o[1] = sqrt(a[1]*a[1] + b[1]*b[1] + c[1]*c[1])
		o[2] = sqrt(a[2]*a[2] + b[2]*b[2] + c[2]*c[2])
		o[3] = sqrt(a[3]*a[3] + b[3]*b[3] + c[3]*c[3])
	}
	for ; i < n; i++ {
		out[i] = sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
	}
}

// MagnitudeInterleaved computes the magnitude of every xyz triple of v.
// v must hold at least 3*len(out) values.
func MagnitudeInterleaved[V tuple.Float](out, v []V) {
	if unrolled {
		magnitudeInterleavedUnrolled(out, v)
		return
	}
	magnitudeInterleavedGeneric(out, v)
}

func magnitudeInterleavedGeneric[V tuple.Float](out, v []V) {
	v = v[:3*len(out)]
	for i := range out {
		t := v[3*i : 3*i+3 : 3*i+3]
		out[i] = sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	}
}

func magnitudeInterleavedUnrolled[V tuple.Float](out, v []V) {
	n := len(out)
	v = v[:3*n]

	i := 0
	for ; i+4 <= n; i += 4 {
		o := out[i : i+4 : i+4]
		t := v[3*i : 3*i+12 : 3*i+12]
		o[0] = sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
		o[1] = sqrt(t[3]*t[3] + t[4]*t[4] + t[5]*t[5])
		o[2] = sqrt(t[6]*t[6] + t[7]*t[7] + t[8]*t[8])
		o[3] = sqrt(t[9]*t[9] + t[10]*t[10] + t[11]*t[11])
	}
	for ; i < n; i++ {
		t := v[3*i : 3*i+3 : 3*i+3]
		out[i] = sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	}
}

// MagnitudeRange walks [begin, end) and writes the magnitude of components
// 0..2 at each position to out, starting at out[0].
func MagnitudeRange[I array.Iterator[I, V], V tuple.Float](out []V, begin, end I) {
	i := 0
	for it := begin; !it.Equal(end); it = it.Next() {
		x, y, z := it.At(0), it.At(1), it.At(2)
		out[i] = sqrt(x*x + y*y + z*z)
		i++
	}
}

// MagnitudeFacade runs MagnitudeRange over the iterator pair of s, reached
// through array.Dispatch.
func MagnitudeFacade[I array.Iterator[I, V], V tuple.Float](out []V, s array.IteratorPairStorage[I]) {
	array.Dispatch(s, func(begin, end I) {
		MagnitudeRange(out, begin, end)
	})
}

// MagnitudeFacadeSpan is MagnitudeFacade over tuples [start, end), writing
// out[start:end].
func MagnitudeFacadeSpan[I array.Iterator[I, V], V tuple.Float](out []V, s interface {
	array.IteratorPairStorage[I]
	IteratorAt(i int) I
}, start, end int) {
	array.DispatchRange(s, start, end, func(b, e I) {
		MagnitudeRange(out[start:end], b, e)
	})
}
