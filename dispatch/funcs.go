package dispatch

import (
	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/tuple"
)

// Funcs is a Visitor assembled from optional callbacks. Members whose
// callback is nil are reported as unmatched.
type Funcs struct {
	OnPlanarFloat32x1      func(*array.Planar[float32, tuple.One])
	OnPlanarFloat32x3      func(*array.Planar[float32, tuple.Three])
	OnPlanarFloat64x1      func(*array.Planar[float64, tuple.One])
	OnPlanarFloat64x3      func(*array.Planar[float64, tuple.Three])
	OnInterleavedFloat32x3 func(*array.Interleaved[float32, tuple.Three])
	OnInterleavedFloat64x3 func(*array.Interleaved[float64, tuple.Three])
}

// Handles implements Partial.
func (f Funcs) Handles(k Kind) bool {
	switch k {
	case PlanarFloat32x1:
		return f.OnPlanarFloat32x1 != nil
	case PlanarFloat32x3:
		return f.OnPlanarFloat32x3 != nil
	case PlanarFloat64x1:
		return f.OnPlanarFloat64x1 != nil
	case PlanarFloat64x3:
		return f.OnPlanarFloat64x3 != nil
	case InterleavedFloat32x3:
		return f.OnInterleavedFloat32x3 != nil
	case InterleavedFloat64x3:
		return f.OnInterleavedFloat64x3 != nil
	default:
		return false
	}
}

func (f Funcs) PlanarFloat32x1(a *array.Planar[float32, tuple.One]) { f.OnPlanarFloat32x1(a) }

func (f Funcs) PlanarFloat32x3(a *array.Planar[float32, tuple.Three]) { f.OnPlanarFloat32x3(a) }

func (f Funcs) PlanarFloat64x1(a *array.Planar[float64, tuple.One]) { f.OnPlanarFloat64x1(a) }

func (f Funcs) PlanarFloat64x3(a *array.Planar[float64, tuple.Three]) { f.OnPlanarFloat64x3(a) }

func (f Funcs) InterleavedFloat32x3(a *array.Interleaved[float32, tuple.Three]) {
	f.OnInterleavedFloat32x3(a)
}

func (f Funcs) InterleavedFloat64x3(a *array.Interleaved[float64, tuple.Three]) {
	f.OnInterleavedFloat64x3(a)
}
