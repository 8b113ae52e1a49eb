package agnostic

import (
	"context"
	"fmt"
	"path"
	"time"
	"unsafe"

	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/internal/cpu"
	"github.com/hupe1980/agnostic/kernel"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/resource"
	"github.com/hupe1980/agnostic/timer"
)

// Runner drives the magnitude and gradient benchmarks. A Runner is safe
// for concurrent use; every Run call owns its buffers and timer.
type Runner struct {
	opts options
}

// NewRunner creates a Runner.
func NewRunner(optFns ...Option) *Runner {
	return &Runner{opts: applyOptions(optFns)}
}

// Workers returns the number of shards each kernel is split into.
func (r *Runner) Workers() int { return r.opts.workers }

// ResourceController returns the controller bounding workers, buffer
// memory and upload rate. It may be nil.
func (r *Runner) ResourceController() *resource.Controller { return r.opts.rc }

// run is the state of one driver invocation.
type run struct {
	r        *Runner
	program  string
	logger   *Logger
	timer    *timer.Timer
	report   *report.Report
	reserved int64
}

func (r *Runner) begin(ctx context.Context, program string, n int, d grid.Dims, buffers int) (*run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var zero float32
	bytes := int64(buffers) * int64(d.Len()) * int64(unsafe.Sizeof(zero))
	if err := r.opts.rc.AcquireMemory(ctx, bytes); err != nil {
		return nil, fmt.Errorf("%s: reserve buffers: %w", program, err)
	}

	return &run{
		r:       r,
		program: program,
		logger:  r.opts.logger.WithProgram(program, n),
		timer:   timer.New(r.opts.timerOptions...),
		report: &report.Report{
			Program: program,
			Size:    n,
			Dims:    d.String(),
			Scalar:  "float32",
			ISA:     cpu.ActiveISA().String(),
			Impl:    cpu.ActiveImpl().String(),
			Workers: r.opts.workers,
			Started: time.Now().UTC(),
		},
		reserved: bytes,
	}, nil
}

func (ru *run) release() {
	ru.r.opts.rc.ReleaseMemory(ru.reserved)
	ru.reserved = 0
}

// time records fn as the event name.
func (ru *run) time(ctx context.Context, name string, fn func() error) error {
	e, err := ru.timer.Time(name, fn)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ru.program, name, err)
	}
	ru.r.opts.metricsCollector.RecordKernel(ru.program, name, e.Elapsed)
	ru.logger.LogKernel(ctx, e)
	return nil
}

// shard splits [0, n) across the configured workers. Each shard holds a
// worker slot of the resource controller while it runs.
func (ru *run) shard(ctx context.Context, n int, fn func(start, end int)) error {
	rc := ru.r.opts.rc
	return kernel.Shard(ctx, n, ru.r.opts.workers, func(ctx context.Context, start, end int) error {
		if err := rc.AcquireWorker(ctx); err != nil {
			return err
		}
		defer rc.ReleaseWorker()
		fn(start, end)
		return nil
	})
}

// shardExtent is shard over the k (or j) slabs of ext.
func (ru *run) shardExtent(ctx context.Context, ext grid.Extent, fn func(part grid.Extent)) error {
	rc := ru.r.opts.rc
	return kernel.ShardExtent(ctx, ext, ru.r.opts.workers, func(ctx context.Context, part grid.Extent) error {
		if err := rc.AcquireWorker(ctx); err != nil {
			return err
		}
		defer rc.ReleaseWorker()
		fn(part)
		return nil
	})
}

// dump writes d to the dump store, if one is configured.
func (ru *run) dump(ctx context.Context, d *legacy.Dump) error {
	o := ru.r.opts
	if o.dumpStore == nil {
		return nil
	}

	name := path.Join(o.dumpPrefix, ru.report.Run(), ru.program+o.compression.Extension())
	start := time.Now()
	n, err := ru.writeDump(ctx, name, d)
	o.metricsCollector.RecordDump(ru.program, n, time.Since(start), err)
	ru.logger.LogDump(ctx, name, n, err)
	if err != nil {
		return fmt.Errorf("%s: dump %s: %w", ru.program, name, err)
	}

	ru.report.Dumps = append(ru.report.Dumps, name)
	return nil
}

func (ru *run) writeDump(ctx context.Context, name string, d *legacy.Dump) (int64, error) {
	o := ru.r.opts

	w, err := o.dumpStore.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	n, err := d.Encode(resource.NewRateLimitedWriter(ctx, w, o.rc), o.compression)
	if err != nil {
		_ = w.Abort()
		return n, err
	}
	return n, w.Close()
}

// finish completes the report and hands it to the sinks.
func (ru *run) finish(ctx context.Context) (*report.Report, error) {
	rep := ru.report
	rep.Events = report.FromTimer(ru.timer.Events())

	o := ru.r.opts
	if len(o.sinks) == 0 {
		return rep, nil
	}

	err := report.Multi(o.sinks...).Publish(ctx, rep)
	o.metricsCollector.RecordReport(ru.program, err)
	ru.logger.LogReport(ctx, rep, err)
	if err != nil {
		return rep, fmt.Errorf("%s: publish report: %w", ru.program, err)
	}
	return rep, nil
}
