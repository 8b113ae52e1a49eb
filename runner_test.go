package agnostic

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/hupe1980/agnostic/blobstore"
	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/resource"
	"github.com/hupe1980/agnostic/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventNames(r *report.Report) []string {
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Name
	}
	return names
}

func readDump(t *testing.T, store blobstore.Store, name string, c legacy.Compression) *legacy.File {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), store, name)
	require.NoError(t, err)
	f, err := legacy.Parse(legacy.NewReader(bytes.NewReader(data), c))
	require.NoError(t, err)
	return f
}

func TestRunMagnitude(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		workers     int
		compression legacy.Compression
	}{
		{"single", 16, 1, legacy.CompressionNone},
		{"sharded zstd", 16, 3, legacy.CompressionZstd},
		{"sharded lz4", 9, 4, legacy.CompressionLZ4},
		{"one cell", 1, 2, legacy.CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := blobstore.NewMemoryStore()
			metrics := &BasicMetricsCollector{}
			var text bytes.Buffer

			runner := NewRunner(
				WithWorkers(tt.workers),
				WithVerify(true),
				WithDump(store, "dumps"),
				WithCompression(tt.compression),
				WithSink(report.NewTextSink(&text)),
				WithMetricsCollector(metrics),
				WithResourceController(resource.NewController(resource.Config{MaxWorkers: 2})),
			)
			assert.Equal(t, tt.workers, runner.Workers())

			rep, err := runner.RunMagnitude(ctx, tt.n)
			require.NoError(t, err)

			assert.Equal(t, ProgramMagnitude, rep.Program)
			assert.Equal(t, tt.n, rep.Size)
			assert.Equal(t, grid.Dims{NX: tt.n, NY: tt.n, NZ: 1}.String(), rep.Dims)
			assert.Equal(t, "float32", rep.Scalar)
			assert.Equal(t, tt.workers, rep.Workers)
			assert.Equal(t, []string{"Pointer", "Interleaved", "Facade", "MappedArray", "Iterator"}, eventNames(rep))
			assert.True(t, rep.Verified)
			assert.Less(t, rep.MaxError, 1e-5)

			name := "dumps/magnitude/" + strconv.Itoa(tt.n) + "/magnitude" + tt.compression.Extension()
			assert.Equal(t, []string{name}, rep.Dumps)

			f := readDump(t, store, name, tt.compression)
			assert.Equal(t, []string{"vx", "vy", "vz", "vm"}, f.Names)
			for q := range tt.n * tt.n {
				x, y := float64(f.Fields["vx"][q]), float64(f.Fields["vy"][q])
				assert.InDelta(t, math.Sqrt(x*x+y*y), float64(f.Fields["vm"][q]), 1e-5)
				assert.Zero(t, f.Fields["vz"][q])
			}

			assert.Contains(t, text.String(), `"Pointer", `)
			assert.Contains(t, text.String(), `"Iterator", `)

			stats := metrics.GetStats()
			assert.Equal(t, int64(5), stats.KernelCount)
			assert.Equal(t, int64(1), stats.DumpCount)
			assert.Zero(t, stats.DumpErrors)
			assert.Positive(t, stats.DumpBytes)
			assert.Equal(t, int64(1), stats.ReportCount)
		})
	}
}

func TestRunMagnitudeEndToEnd(t *testing.T) {
	// n = 16 planar scenario: the pointer result equals the analytic
	// magnitude of the generated field.
	store := blobstore.NewMemoryStore()
	rep, err := NewRunner(WithDump(store, "")).RunMagnitude(context.Background(), 16)
	require.NoError(t, err)
	assert.False(t, rep.Verified)

	f := readDump(t, store, rep.Dumps[0], legacy.CompressionNone)
	h := grid.Step(16)
	for j := range 16 {
		for i := range 16 {
			x := grid.Lo + float64(i)*h
			y := grid.Lo + float64(j)*h
			want := math.Hypot(math.Sin(x)*math.Sin(y), math.Cos(x)*math.Cos(y))
			assert.InDelta(t, want, float64(f.Fields["vm"][j*16+i]), 1e-4)
		}
	}
}

func TestRunGradient(t *testing.T) {
	for _, workers := range []int{1, 2, 5} {
		t.Run(strconv.Itoa(workers), func(t *testing.T) {
			ctx := context.Background()
			store := blobstore.NewMemoryStore()

			rep, err := NewRunner(
				WithWorkers(workers),
				WithVerify(true),
				WithDump(store, ""),
			).RunGradient(ctx, 12)
			require.NoError(t, err)

			assert.Equal(t, ProgramGradient, rep.Program)
			assert.Equal(t, "12x12x3", rep.Dims)
			assert.Equal(t, []string{"Pointer", "MappedArray"}, eventNames(rep))
			assert.True(t, rep.Verified)
			assert.Equal(t, []string{"gradient/12/gradient.vtk"}, rep.Dumps)

			f := readDump(t, store, rep.Dumps[0], legacy.CompressionNone)
			assert.Equal(t, []string{"gx", "gy", "gz", "s"}, f.Names)

			d := grid.Dims{NX: 12, NY: 12, NZ: 3}
			interior := grid.InteriorMask(d)
			assert.Equal(t, 10*10, interior.Cardinality())

			for q := range interior.All() {
				assert.Zero(t, f.Fields["gz"][q])
				want := (f.Fields["s"][q+1] - f.Fields["s"][q-1]) * 12
				assert.InDelta(t, float64(want), float64(f.Fields["gx"][q]), 1e-3)
			}
			for q := range interior.Complement().All() {
				assert.Zero(t, f.Fields["gx"][q])
				assert.Zero(t, f.Fields["gy"][q])
			}
		})
	}
}

func TestRunInvalidSize(t *testing.T) {
	runner := NewRunner()

	tests := []struct {
		name string
		run  func() error
		min  int
	}{
		{"magnitude zero", func() error { _, err := runner.RunMagnitude(context.Background(), 0); return err }, 1},
		{"magnitude negative", func() error { _, err := runner.RunMagnitude(context.Background(), -4); return err }, 1},
		{"gradient two", func() error { _, err := runner.RunGradient(context.Background(), 2); return err }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *ErrInvalidSize
			require.ErrorAs(t, tt.run(), &e)
			assert.Equal(t, tt.min, e.Min)
		})
	}
}

func TestRunMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	runner := NewRunner(WithResourceController(rc))

	_, err := runner.RunMagnitude(context.Background(), 64)
	require.ErrorIs(t, err, resource.ErrLimitExceeded)

	_, err = runner.RunMagnitude(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, rc.MemoryUsage())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().RunGradient(ctx, 8)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunSinkError(t *testing.T) {
	boom := errors.New("boom")
	metrics := &BasicMetricsCollector{}
	runner := NewRunner(
		WithSink(report.SinkFunc(func(context.Context, *report.Report) error { return boom })),
		WithMetricsCollector(metrics),
	)

	rep, err := runner.RunGradient(context.Background(), 4)
	require.ErrorIs(t, err, boom)
	require.NotNil(t, rep)
	assert.Len(t, rep.Events, 2)
	assert.Equal(t, int64(1), metrics.GetStats().ReportErrors)
}

func TestRunTimerOptions(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	rep, err := NewRunner(WithTimerOptions(timer.WithClock(clock))).RunMagnitude(context.Background(), 2)
	require.NoError(t, err)
	for _, e := range rep.Events {
		assert.Equal(t, 1.0, e.Seconds)
	}
}

func TestVerifyMagnitudeMismatch(t *testing.T) {
	want := []float32{1, 2, 3}
	good := []float32{1, 2, 3}
	bad := []float32{1, 2.5, 3}

	var v verifier
	require.NoError(t, verifyMagnitude(&v, want, good, good, good, good))

	err := verifyMagnitude(&v, want, good, good, bad, good)
	require.ErrorIs(t, err, ErrVerification)

	var e *ErrLayoutMismatch
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "MappedArray", e.Event)
	assert.Equal(t, 1, e.Index)
	assert.InDelta(t, 0.5, v.maxErr, 1e-12)
}

func TestVerifyGradientBoundary(t *testing.T) {
	d := grid.Dims{NX: 3, NY: 3, NZ: 3}
	n := d.Len()
	want := [3][]float32{make([]float32, n), make([]float32, n), make([]float32, n)}
	mapped := make([]float32, 3*n)

	var v verifier
	require.NoError(t, verifyGradient(&v, d, want, mapped, 1.0/3))

	want[1][0] = 1
	var e *ErrLayoutMismatch
	require.ErrorAs(t, verifyGradient(&v, d, want, mapped, 1.0/3), &e)
	assert.Equal(t, "Pointer", e.Event)
	assert.Equal(t, "gy", e.Field)
	assert.Equal(t, 0, e.Index)
}

func TestTolerance(t *testing.T) {
	tol := tolerance{abs: 1e-3, rel: 1e-2}
	assert.True(t, tol.allows(100, 100.9))
	assert.False(t, tol.allows(100, 101.1))
	assert.True(t, tol.allows(0, 1e-3))
	assert.False(t, tol.allows(0, 2e-3))
}
