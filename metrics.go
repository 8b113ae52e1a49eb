package agnostic

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from a Runner.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordKernel is called after each timed kernel event.
	RecordKernel(program, event string, duration time.Duration)

	// RecordDump is called after each validation dump upload. bytes is
	// the encoded size that reached the store.
	RecordDump(program string, bytes int64, duration time.Duration, err error)

	// RecordReport is called after a report was handed to the sinks.
	RecordReport(program string, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordKernel(string, string, time.Duration)     {}
func (NoopMetricsCollector) RecordDump(string, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordReport(string, error)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	KernelCount      atomic.Int64
	KernelTotalNanos atomic.Int64
	DumpCount        atomic.Int64
	DumpErrors       atomic.Int64
	DumpBytes        atomic.Int64
	ReportCount      atomic.Int64
	ReportErrors     atomic.Int64
}

// RecordKernel implements MetricsCollector.
func (b *BasicMetricsCollector) RecordKernel(_, _ string, duration time.Duration) {
	b.KernelCount.Add(1)
	b.KernelTotalNanos.Add(duration.Nanoseconds())
}

// RecordDump implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDump(_ string, bytes int64, _ time.Duration, err error) {
	b.DumpCount.Add(1)
	b.DumpBytes.Add(bytes)
	if err != nil {
		b.DumpErrors.Add(1)
	}
}

// RecordReport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReport(_ string, err error) {
	b.ReportCount.Add(1)
	if err != nil {
		b.ReportErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		KernelCount:    b.KernelCount.Load(),
		KernelAvgNanos: b.getAvgKernelNanos(),
		DumpCount:      b.DumpCount.Load(),
		DumpErrors:     b.DumpErrors.Load(),
		DumpBytes:      b.DumpBytes.Load(),
		ReportCount:    b.ReportCount.Load(),
		ReportErrors:   b.ReportErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgKernelNanos() int64 {
	count := b.KernelCount.Load()
	if count == 0 {
		return 0
	}
	return b.KernelTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	KernelCount    int64
	KernelAvgNanos int64
	DumpCount      int64
	DumpErrors     int64
	DumpBytes      int64
	ReportCount    int64
	ReportErrors   int64
}
