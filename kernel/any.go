package kernel

import (
	"math"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/dispatch"
	"github.com/hupe1980/agnostic/tuple"
)

// MagnitudeAny resolves both type-erased arrays against the closed storage
// set and runs the facade magnitude kernel on the concrete types. out is the
// outer value and must be a one-component planar array; in must share its
// scalar type. A one-component input yields absolute values.
//
// An array outside the closed set, or an in that does not pair with out,
// terminates the process. Use TryMagnitudeAny for untrusted inputs.
func MagnitudeAny(out, in array.Array) {
	dispatch.Visit2(out, in, magnitudeAny{})
}

// TryMagnitudeAny is MagnitudeAny reporting an unsupported pairing as a
// *dispatch.UnknownTypeError.
func TryMagnitudeAny(out, in array.Array) error {
	return dispatch.TryVisit2(out, in, magnitudeAny{})
}

type magnitudeAny struct{}

// Handles limits the output to one-component planar arrays.
func (magnitudeAny) Handles(k dispatch.Kind) bool {
	return k == dispatch.PlanarFloat32x1 || k == dispatch.PlanarFloat64x1
}

func abs[V tuple.Float](out, in []V) {
	in = in[:len(out)]
	for i, v := range in {
		out[i] = V(math.Abs(float64(v)))
	}
}

func (magnitudeAny) PlanarFloat32x1(o *array.Planar[float32, tuple.One]) dispatch.Visitor {
	out := o.Array(0)
	return dispatch.Funcs{
		OnPlanarFloat32x1: func(a *array.Planar[float32, tuple.One]) { abs(out[:a.NumberOfTuples()], a.Array(0)) },
		OnPlanarFloat32x3: func(a *array.Planar[float32, tuple.Three]) {
			MagnitudeFacade[array.PlanarIterator[float32, tuple.Three]](out, a)
		},
		OnInterleavedFloat32x3: func(a *array.Interleaved[float32, tuple.Three]) {
			MagnitudeFacade[array.InterleavedIterator[float32, tuple.Three]](out, a)
		},
	}
}

func (magnitudeAny) PlanarFloat64x1(o *array.Planar[float64, tuple.One]) dispatch.Visitor {
	out := o.Array(0)
	return dispatch.Funcs{
		OnPlanarFloat64x1: func(a *array.Planar[float64, tuple.One]) { abs(out[:a.NumberOfTuples()], a.Array(0)) },
		OnPlanarFloat64x3: func(a *array.Planar[float64, tuple.Three]) {
			MagnitudeFacade[array.PlanarIterator[float64, tuple.Three]](out, a)
		},
		OnInterleavedFloat64x3: func(a *array.Interleaved[float64, tuple.Three]) {
			MagnitudeFacade[array.InterleavedIterator[float64, tuple.Three]](out, a)
		},
	}
}

// Three-component outputs are rejected by Handles.

func (magnitudeAny) PlanarFloat32x3(*array.Planar[float32, tuple.Three]) dispatch.Visitor {
	return dispatch.Funcs{}
}

func (magnitudeAny) PlanarFloat64x3(*array.Planar[float64, tuple.Three]) dispatch.Visitor {
	return dispatch.Funcs{}
}

func (magnitudeAny) InterleavedFloat32x3(*array.Interleaved[float32, tuple.Three]) dispatch.Visitor {
	return dispatch.Funcs{}
}

func (magnitudeAny) InterleavedFloat64x3(*array.Interleaved[float64, tuple.Three]) dispatch.Visitor {
	return dispatch.Funcs{}
}
