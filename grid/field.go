package grid

import (
	"math"

	"github.com/hupe1980/agnostic/tuple"
)

// Domain bounds of the analytic fields, on both x and y.
const (
	Lo = -2 * math.Pi
	Hi = 2 * math.Pi
)

// Field maps a domain coordinate to a value.
type Field[V tuple.Float] func(x, y V) V

// SinXSinY returns sin(x)·sin(y).
func SinXSinY[V tuple.Float](x, y V) V {
	return V(math.Sin(float64(x)) * math.Sin(float64(y)))
}

// CosXCosY returns cos(x)·cos(y).
func CosXCosY[V tuple.Float](x, y V) V {
	return V(math.Cos(float64(x)) * math.Cos(float64(y)))
}

// Zero returns 0.
func Zero[V tuple.Float](_, _ V) V {
	return 0
}

// Step returns the coordinate spacing of n samples spanning [Lo, Hi].
// A single sample has zero spacing.
func Step(n int) float64 {
	if n <= 1 {
		return 0
	}
	return (Hi - Lo) / float64(n-1)
}

// Apply samples f at every point of ext and stores it in s. Points are
// mapped to [Lo, Hi] along x and y; f does not depend on k.
func Apply[V tuple.Float](s []V, ext Extent, d Dims, f Field[V]) {
	d0 := V(Lo)
	dx := V(Step(d.NX))
	dy := V(Step(d.NY))

	ext.ForEachRow(d, func(q, j, _ int) {
		y := d0 + dy*V(j)
		row := s[q : q+d.NX]
		for i := ext.I0; i <= ext.I1; i++ {
			row[i] = f(d0+dx*V(i), y)
		}
	})
}
