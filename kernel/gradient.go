package kernel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/agnostic/dynarray"
	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/tuple"
)

// ErrExtentOutOfBounds is returned by CheckGradientExtent.
var ErrExtentOutOfBounds = errors.New("extent reaches the grid boundary")

// Gradient computes the central differences of s over ext:
//
//	gx[q] = (s[q+1]   - s[q-1])   / dx
//	gy[q] = (s[q+nx]  - s[q-nx])  / dy
//	gz[q] = (s[q+nxy] - s[q-nxy]) / dz
//
// ext must leave at least one cell on every face of the grid. Cells outside
// ext are not written.
func Gradient[V tuple.Float](gx, gy, gz, s []V, dx, dy, dz V, ext grid.Extent, nx, nxy int) {
	for k := ext.K0; k <= ext.K1; k++ {
		for j := ext.J0; j <= ext.J1; j++ {
			q := k*nxy + j*nx

			for i := ext.I0; i <= ext.I1; i++ {
				gx[q+i] = (s[q+i+1] - s[q+i-1]) / dx
			}
			for i := ext.I0; i <= ext.I1; i++ {
				gy[q+i] = (s[q+i+nx] - s[q+i-nx]) / dy
			}
			for i := ext.I0; i <= ext.I1; i++ {
				gz[q+i] = (s[q+i+nxy] - s[q+i-nxy]) / dz
			}
		}
	}
}

// GradientArray is Gradient over capability containers. Component 0 of s is
// differenced and g receives the three results as one tuple per cell.
func GradientArray(g, s *dynarray.Adapter, dx, dy, dz float64, ext grid.Extent, nx, nxy int) {
	var gg [3]float64
	for k := ext.K0; k <= ext.K1; k++ {
		for j := ext.J0; j <= ext.J1; j++ {
			q := k*nxy + j*nx
			for i := ext.I0; i <= ext.I1; i++ {
				c := q + i
				gg[0] = (s.Component(c+1, 0) - s.Component(c-1, 0)) / dx
				gg[1] = (s.Component(c+nx, 0) - s.Component(c-nx, 0)) / dy
				gg[2] = (s.Component(c+nxy, 0) - s.Component(c-nxy, 0)) / dz
				g.SetTuple(c, gg[:])
			}
		}
	}
}

// CheckGradientExtent reports whether ext keeps the one-cell margin that
// Gradient needs on a grid of dims d. Gradient itself never calls it.
func CheckGradientExtent(ext grid.Extent, d grid.Dims) error {
	if ext.In(grid.Interior(d)) {
		return nil
	}
	return fmt.Errorf("%w: %s on %s grid, interior is %s", ErrExtentOutOfBounds, ext, d, grid.Interior(d))
}
