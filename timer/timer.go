// Package timer records named wall-clock intervals with a stack of open
// marks, so intervals may nest.
package timer

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNoActiveEvent is returned by EndEvent when no mark is open.
var ErrNoActiveEvent = errors.New("timer: no active event")

// Event is a completed interval.
type Event struct {
	Name    string
	Elapsed time.Duration
	// Depth is the number of marks that were open around this one.
	Depth int
}

// Seconds returns Elapsed in seconds.
func (e Event) Seconds() float64 { return e.Elapsed.Seconds() }

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		t.now = now
	}
}

// Timer is safe for concurrent use, but the mark stack is shared: nested
// StartEvent/EndEvent pairs from different goroutines interleave.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	marks  []time.Time
	events []Event
}

// New returns an empty Timer.
func New(optFns ...Option) *Timer {
	t := &Timer{now: time.Now}
	for _, fn := range optFns {
		fn(t)
	}
	return t
}

// StartEvent pushes a mark.
func (t *Timer) StartEvent() {
	t.mu.Lock()
	t.marks = append(t.marks, t.now())
	t.mu.Unlock()
}

// EndEvent pops the most recent mark and records the interval under name.
func (t *Timer) EndEvent(name string) (Event, error) {
	end := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.marks)
	if n == 0 {
		return Event{}, ErrNoActiveEvent
	}
	start := t.marks[n-1]
	t.marks = t.marks[:n-1]

	e := Event{Name: name, Elapsed: end.Sub(start), Depth: n - 1}
	t.events = append(t.events, e)
	return e, nil
}

// Start opens a mark and returns the function that closes it under name.
// The returned function records exactly once, however often it is called.
//
//	defer tm.Start("Pointer")()
func (t *Timer) Start(name string) (stop func()) {
	t.StartEvent()
	var once sync.Once
	return func() {
		once.Do(func() {
			_, _ = t.EndEvent(name)
		})
	}
}

// Time runs fn between a StartEvent and an EndEvent named name. The mark
// is closed even if fn panics.
func (t *Timer) Time(name string, fn func() error) (e Event, err error) {
	t.StartEvent()
	defer func() {
		var endErr error
		e, endErr = t.EndEvent(name)
		if err == nil {
			err = endErr
		}
	}()
	return e, fn()
}

// Events returns the completed intervals in completion order.
func (t *Timer) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Open returns the number of marks not yet closed.
func (t *Timer) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.marks)
}

// Reset drops all marks and events.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.marks = t.marks[:0]
	t.events = t.events[:0]
	t.mu.Unlock()
}

// WriteTo writes one `"name", seconds` line per completed event.
func (t *Timer) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, e := range t.Events() {
		sb.WriteByte('"')
		sb.WriteString(e.Name)
		sb.WriteString(`", `)
		sb.WriteString(strconv.FormatFloat(e.Seconds(), 'g', 6, 64))
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (t *Timer) String() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}
