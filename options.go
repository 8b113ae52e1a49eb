package agnostic

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/agnostic/blobstore"
	"github.com/hupe1980/agnostic/legacy"
	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/resource"
	"github.com/hupe1980/agnostic/timer"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	workers          int
	dumpStore        blobstore.Store
	dumpPrefix       string
	compression      legacy.Compression
	sinks            []report.Sink
	rc               *resource.Controller
	verify           bool
	timerOptions     []timer.Option
}

// Option configures a Runner.
type Option func(*options)

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &agnostic.BasicMetricsCollector{}
//	runner := agnostic.NewRunner(agnostic.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithWorkers sets how many shards each kernel is split into. Values
// below 1 select runtime.GOMAXPROCS(0). The default is 1, which matches
// the single-threaded timings of the reference programs.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithDump writes validation dumps to store under prefix.
func WithDump(store blobstore.Store, prefix string) Option {
	return func(o *options) {
		o.dumpStore = store
		o.dumpPrefix = prefix
	}
}

// WithCompression selects the framing of validation dumps.
func WithCompression(c legacy.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithSink adds report sinks. Every run publishes its report to all of
// them.
func WithSink(sinks ...report.Sink) Option {
	return func(o *options) {
		o.sinks = append(o.sinks, sinks...)
	}
}

// WithResourceController bounds worker slots, buffer memory and upload
// bandwidth.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithVerify enables the comparison of every layout against the pointer
// result.
func WithVerify(verify bool) Option {
	return func(o *options) {
		o.verify = verify
	}
}

// WithTimerOptions passes options to the timer of every run.
func WithTimerOptions(optFns ...timer.Option) Option {
	return func(o *options) {
		o.timerOptions = append(o.timerOptions, optFns...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
	}

	for _, fn := range optFns {
		fn(&o)
	}

	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}

	return o
}
