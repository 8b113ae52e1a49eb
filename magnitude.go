package agnostic

import (
	"context"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/dynarray"
	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/internal/mem"
	"github.com/hupe1980/agnostic/kernel"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/tuple"
)

// ProgramMagnitude names magnitude runs in reports and dumps.
const ProgramMagnitude = "magnitude"

// RunMagnitude computes the magnitude of the vector field
// (sin x sin y, cos x cos y, 0) over an n x n x 1 grid spanning
// [-2π, 2π]² with every layout and times each as one event:
//
//   - Pointer: planar float32 buffers
//   - Interleaved: one xyzxyz buffer
//   - Facade: the planar array through array.Dispatch
//   - MappedArray: capability containers through dynarray.Adapter
//   - Iterator: the type-erased container iterator
//
// With verification enabled every layout must match the pointer result.
func (r *Runner) RunMagnitude(ctx context.Context, n int) (*report.Report, error) {
	if n < 1 {
		return nil, &ErrInvalidSize{Program: ProgramMagnitude, Size: n, Min: 1}
	}

	d := grid.Dims{NX: n, NY: n, NZ: 1}
	ru, err := r.begin(ctx, ProgramMagnitude, n, d, 11)
	if err != nil {
		return nil, err
	}
	defer ru.release()

	nxyz := d.Len()
	ext := grid.Whole(d)

	vx := mem.Alloc[float32](nxyz)
	vy := mem.Alloc[float32](nxyz)
	vz := mem.Alloc[float32](nxyz)
	vm := mem.Alloc[float32](nxyz)

	grid.Apply(vx, ext, d, grid.SinXSinY[float32])
	grid.Apply(vy, ext, d, grid.CosXCosY[float32])

	err = ru.time(ctx, "Pointer", func() error {
		return ru.shard(ctx, nxyz, func(start, end int) {
			kernel.Magnitude(vm[start:end], vx[start:end], vy[start:end], vz[start:end])
		})
	})
	if err != nil {
		return nil, err
	}

	vi := mem.Alloc[float32](3 * nxyz)
	for q := range nxyz {
		vi[3*q], vi[3*q+1], vi[3*q+2] = vx[q], vy[q], vz[q]
	}
	mi := mem.Alloc[float32](nxyz)

	err = ru.time(ctx, "Interleaved", func() error {
		return ru.shard(ctx, nxyz, func(start, end int) {
			kernel.MagnitudeInterleaved(mi[start:end], vi[3*start:3*end])
		})
	})
	if err != nil {
		return nil, err
	}

	planar := array.NewPlanar[float32, tuple.Three](nxyz, vx, vy, vz)
	mf := mem.Alloc[float32](nxyz)

	err = ru.time(ctx, "Facade", func() error {
		return ru.shard(ctx, nxyz, func(start, end int) {
			kernel.MagnitudeFacadeSpan[array.PlanarIterator[float32, tuple.Three]](mf, planar, start, end)
		})
	})
	if err != nil {
		return nil, err
	}

	vec := dynarray.NewVectorTemplate[float32]()
	vec.SetComponentArrays(vx, vy, vz, nxyz, nil)
	defer vec.Release()

	vecMag := dynarray.NewDataArray[float32](1)
	vecMag.SetNumberOfTuples(nxyz)

	in, out := dynarray.NewAdapter(vec), dynarray.NewAdapter(vecMag)

	err = ru.time(ctx, "MappedArray", func() error {
		return ru.shard(ctx, nxyz, func(start, end int) {
			kernel.MagnitudeArraySpan(out.Shard(), in.Shard(), start, end)
		})
	})
	if err != nil {
		return nil, err
	}

	vecIt := dynarray.NewDataArray[float32](1)
	vecIt.SetNumberOfTuples(nxyz)
	outIt := dynarray.NewAdapter(vecIt)

	err = ru.time(ctx, "Iterator", func() error {
		return ru.shard(ctx, nxyz, func(start, end int) {
			kernel.MagnitudeIteratorSpan(outIt.Shard(), in.Shard().Iterator(), start, end)
		})
	})
	if err != nil {
		return nil, err
	}

	if r.opts.verify {
		var v verifier
		err := verifyMagnitude(&v, vm, mi, mf, vecMag.Pointer(), vecIt.Pointer())
		ru.logger.LogVerify(ctx, v.maxErr, err)
		if err != nil {
			return nil, err
		}
		ru.report.Verified = true
		ru.report.MaxError = v.maxErr
	}

	dump := legacy.NewDump(d)
	legacy.AddField(dump, "vx", vx)
	legacy.AddField(dump, "vy", vy)
	legacy.AddField(dump, "vz", vz)
	legacy.AddField(dump, "vm", vm)
	if err := ru.dump(ctx, dump); err != nil {
		return nil, err
	}

	return ru.finish(ctx)
}

func verifyMagnitude(v *verifier, want, interleaved, facade, mapped, iterated []float32) error {
	cells := span(len(want))
	layouts := []struct {
		event string
		got   []float32
	}{
		{"Interleaved", interleaved},
		{"Facade", facade},
		{"MappedArray", mapped},
		{"Iterator", iterated},
	}
	for _, l := range layouts {
		if err := compare(v, l.event, "vm", want, l.got, cells, magnitudeTolerance); err != nil {
			return err
		}
	}
	return nil
}
