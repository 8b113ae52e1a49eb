package agnostic

import (
	"context"

	"github.com/hupe1980/agnostic/dynarray"
	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/internal/mem"
	"github.com/hupe1980/agnostic/kernel"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
)

// ProgramGradient names gradient runs in reports and dumps.
const ProgramGradient = "gradient"

// RunGradient computes the central-difference gradient of sin x sin y
// over an n x n x 3 grid with spacing 1/n, 1/n and 1/3. Only the interior
// (one-cell margin) is written. Two events are timed:
//
//   - Pointer: planar float32 buffers
//   - MappedArray: capability containers through dynarray.Adapter
//
// With verification enabled both results must agree on the interior and
// the boundary must stay zero.
func (r *Runner) RunGradient(ctx context.Context, n int) (*report.Report, error) {
	if n < 3 {
		return nil, &ErrInvalidSize{Program: ProgramGradient, Size: n, Min: 3}
	}

	d := grid.Dims{NX: n, NY: n, NZ: 3}
	ru, err := r.begin(ctx, ProgramGradient, n, d, 7)
	if err != nil {
		return nil, err
	}
	defer ru.release()

	nxyz, nx, nxy := d.Len(), d.NX, d.NXY()
	dx := float32(1) / float32(d.NX)
	dy := float32(1) / float32(d.NY)
	dz := float32(1) / float32(d.NZ)

	s := mem.Alloc[float32](nxyz)
	gx := mem.Alloc[float32](nxyz)
	gy := mem.Alloc[float32](nxyz)
	gz := mem.Alloc[float32](nxyz)

	grid.Apply(s, grid.Whole(d), d, grid.SinXSinY[float32])

	gext := grid.Interior(d)

	err = ru.time(ctx, "Pointer", func() error {
		return ru.shardExtent(ctx, gext, func(part grid.Extent) {
			kernel.Gradient(gx, gy, gz, s, dx, dy, dz, part, nx, nxy)
		})
	})
	if err != nil {
		return nil, err
	}

	vs := dynarray.NewVectorTemplate[float32]()
	vs.SetComponentArrays(s, nil, nil, nxyz, nil)
	defer vs.Release()

	vg := dynarray.NewDataArray[float32](3)
	vg.SetNumberOfTuples(nxyz)

	in, out := dynarray.NewAdapter(vs), dynarray.NewAdapter(vg)

	err = ru.time(ctx, "MappedArray", func() error {
		return ru.shardExtent(ctx, gext, func(part grid.Extent) {
			kernel.GradientArray(out.Shard(), in.Shard(), float64(dx), float64(dy), float64(dz), part, nx, nxy)
		})
	})
	if err != nil {
		return nil, err
	}

	if r.opts.verify {
		var v verifier
		err := verifyGradient(&v, d, [3][]float32{gx, gy, gz}, vg.Pointer(), float64(min(dx, dy, dz)))
		ru.logger.LogVerify(ctx, v.maxErr, err)
		if err != nil {
			return nil, err
		}
		ru.report.Verified = true
		ru.report.MaxError = v.maxErr
	}

	dump := legacy.NewDump(d)
	legacy.AddField(dump, "gx", gx)
	legacy.AddField(dump, "gy", gy)
	legacy.AddField(dump, "gz", gz)
	legacy.AddField(dump, "s", s)
	if err := ru.dump(ctx, dump); err != nil {
		return nil, err
	}

	return ru.finish(ctx)
}

// verifyGradient checks the pointer result against the interleaved
// capability result on the interior and checks that neither touched the
// boundary.
func verifyGradient(v *verifier, d grid.Dims, want [3][]float32, mapped []float32, h float64) error {
	interior := grid.InteriorMask(d)
	boundary := interior.Complement()
	tol := gradientTolerance(h)

	nxyz := d.Len()
	names := [3]string{"gx", "gy", "gz"}
	got := make([]float32, nxyz)

	for c := range 3 {
		for q := range nxyz {
			got[q] = mapped[3*q+c]
		}
		if err := compare(v, "MappedArray", names[c], want[c], got, interior.All(), tol); err != nil {
			return err
		}
		if err := zeroed("Pointer", names[c], want[c], boundary.All()); err != nil {
			return err
		}
		if err := zeroed("MappedArray", names[c], got, boundary.All()); err != nil {
			return err
		}
	}
	return nil
}
