package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/agnostic/codec"
	"github.com/hupe1980/agnostic/timer"
)

// Event is one timed kernel invocation.
type Event struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
}

// Report is the outcome of one driver run.
type Report struct {
	Program string    `json:"program"`
	Size    int       `json:"size"`
	Dims    string    `json:"dims"`
	Scalar  string    `json:"scalar"`
	ISA     string    `json:"isa"`
	Impl    string    `json:"impl"`
	Workers int       `json:"workers"`
	Started time.Time `json:"started"`
	Events  []Event   `json:"events"`

	// Verified is set when every layout was compared against the
	// pointer result. MaxError is the largest absolute difference seen.
	Verified bool    `json:"verified"`
	MaxError float64 `json:"max_error,omitempty"`

	// Dumps lists the blob names of written validation dumps.
	Dumps []string `json:"dumps,omitempty"`
}

// FromTimer converts completed timer events.
func FromTimer(events []timer.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{Name: e.Name, Seconds: e.Seconds()}
	}
	return out
}

// Run identifies the series a report belongs to, e.g. "magnitude/512".
func (r *Report) Run() string {
	return r.Program + "/" + strconv.Itoa(r.Size)
}

// Event returns the named event.
func (r *Report) Event(name string) (Event, bool) {
	for _, e := range r.Events {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}

// WriteTo writes one `"name", seconds` line per event.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, e := range r.Events {
		sb.WriteByte('"')
		sb.WriteString(e.Name)
		sb.WriteString(`", `)
		sb.WriteString(strconv.FormatFloat(e.Seconds, 'g', 6, 64))
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Summary is a single human readable line.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%s n=%d dims=%s scalar=%s isa=%s impl=%s workers=%d events=%d",
		r.Program, r.Size, r.Dims, r.Scalar, r.ISA, r.Impl, r.Workers, len(r.Events))
	if r.Verified {
		s += fmt.Sprintf(" verified max_error=%g", r.MaxError)
	}
	return s
}

// Encode marshals the report with c, or codec.Default when c is nil.
func Encode(c codec.Codec, r *Report) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(r)
}

// Decode unmarshals a report encoded with c, or codec.Default when c is nil.
func Decode(c codec.Codec, data []byte) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	var r Report
	if err := c.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report with %s: %w", c.Name(), err)
	}
	return &r, nil
}
