package kernel

import (
	"fmt"
	"testing"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/dynarray"
	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/tuple"
)

func BenchmarkMagnitude(b *testing.B) {
	for _, n := range []int{64, 256} {
		_, x, y, z := vectorField(n)
		out := make([]float64, len(x))
		v := interleave(x, y, z)
		p := array.NewPlanar[float64, tuple.Three](len(x), x, y, z)

		vec := dynarray.NewVectorTemplate[float64]()
		vec.SetComponentArrays(x, y, z, len(x), nil)
		mag := dynarray.NewDataArray[float64](1)
		mag.SetNumberOfTuples(len(x))
		in, m := dynarray.NewAdapter(vec), dynarray.NewAdapter(mag)

		b.Run(fmt.Sprintf("Pointer/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				Magnitude(out, x, y, z)
			}
		})
		b.Run(fmt.Sprintf("Generic/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				magnitudeGeneric(out, x, y, z)
			}
		})
		b.Run(fmt.Sprintf("Unrolled/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				magnitudeUnrolled(out, x, y, z)
			}
		})
		b.Run(fmt.Sprintf("Interleaved/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				MagnitudeInterleaved(out, v)
			}
		})
		b.Run(fmt.Sprintf("Facade/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				MagnitudeFacade(out, p)
			}
		})
		b.Run(fmt.Sprintf("MappedArray/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				MagnitudeArray(m, in, len(x))
			}
		})
		b.Run(fmt.Sprintf("Iterator/n=%d", n), func(b *testing.B) {
			it := vec.NewIterator()
			for b.Loop() {
				MagnitudeIterator(m, it)
			}
		})
	}
}

func BenchmarkGradient(b *testing.B) {
	for _, n := range []int{64, 256} {
		d := grid.Dims{NX: n, NY: n, NZ: 3}
		s := make([]float32, d.Len())
		grid.Apply(s, grid.Whole(d), d, grid.SinXSinY[float32])
		gx := make([]float32, d.Len())
		gy := make([]float32, d.Len())
		gz := make([]float32, d.Len())
		ext := grid.Interior(d)

		vs := dynarray.NewVectorTemplate[float32]()
		vs.SetComponentArrays(s, nil, nil, d.Len(), nil)
		vg := dynarray.NewDataArray[float32](3)
		vg.SetNumberOfTuples(d.Len())
		sa, ga := dynarray.NewAdapter(vs), dynarray.NewAdapter(vg)

		b.Run(fmt.Sprintf("Pointer/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				Gradient(gx, gy, gz, s, 0.1, 0.1, 0.1, ext, d.NX, d.NXY())
			}
		})
		b.Run(fmt.Sprintf("MappedArray/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				GradientArray(ga, sa, 0.1, 0.1, 0.1, ext, d.NX, d.NXY())
			}
		})
	}
}
