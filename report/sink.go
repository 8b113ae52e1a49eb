package report

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/hupe1980/agnostic/codec"
)

// Sink publishes reports.
type Sink interface {
	Publish(ctx context.Context, r *Report) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, r *Report) error

func (f SinkFunc) Publish(ctx context.Context, r *Report) error { return f(ctx, r) }

type multiSink []Sink

// Multi publishes to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Publish(ctx context.Context, r *Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriterSink prints reports to an io.Writer, as timing lines or, with a
// codec, one encoded report per line.
type WriterSink struct {
	mu    sync.Mutex
	w     io.Writer
	codec codec.Codec
}

// NewTextSink prints `"name", seconds` lines.
func NewTextSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// NewEncodedSink prints each report encoded with c.
func NewEncodedSink(w io.Writer, c codec.Codec) *WriterSink {
	if c == nil {
		c = codec.Default
	}
	return &WriterSink{w: w, codec: c}
}

func (s *WriterSink) Publish(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codec == nil {
		_, err := r.WriteTo(s.w)
		return err
	}

	data, err := Encode(s.codec, r)
	if err != nil {
		return err
	}
	_, err = s.w.Write(append(data, '\n'))
	return err
}
