package dispatch

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/tuple"
)

// Visitor receives the concretely typed storage. There is exactly one method
// per Kind.
type Visitor interface {
	PlanarFloat32x1(a *array.Planar[float32, tuple.One])
	PlanarFloat32x3(a *array.Planar[float32, tuple.Three])
	PlanarFloat64x1(a *array.Planar[float64, tuple.One])
	PlanarFloat64x3(a *array.Planar[float64, tuple.Three])
	InterleavedFloat32x3(a *array.Interleaved[float32, tuple.Three])
	InterleavedFloat64x3(a *array.Interleaved[float64, tuple.Three])
}

// Partial is implemented by visitors, or by a Visitor2 for its outer
// value, that handle only part of the set. A member for which Handles
// returns false is treated as unmatched.
type Partial interface {
	Handles(k Kind) bool
}

var (
	logger atomic.Pointer[slog.Logger]
	exit   = os.Exit
)

// SetLogger sets the logger used to report closed-set violations.
// Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Visit resolves a and calls the matching Visitor method once. If a is not
// a member of the closed set, Visit logs its dynamic type and terminates the
// process without calling v.
func Visit(a array.Array, v Visitor) {
	if err := TryVisit(a, v); err != nil {
		fatal(err)
	}
}

// TryVisit is Visit with the unmatched case reported as an
// *UnknownTypeError instead of terminating.
func TryVisit(a array.Array, v Visitor) error {
	k, ok := Resolve(a)
	if !ok {
		return &UnknownTypeError{Type: fmt.Sprintf("%T", a)}
	}
	if p, ok := v.(Partial); ok && !p.Handles(k) {
		return &UnknownTypeError{Type: fmt.Sprintf("%T", a), Kind: k}
	}

	switch k {
	case PlanarFloat32x1:
		v.PlanarFloat32x1(a.(*array.Planar[float32, tuple.One]))
	case PlanarFloat32x3:
		v.PlanarFloat32x3(a.(*array.Planar[float32, tuple.Three]))
	case PlanarFloat64x1:
		v.PlanarFloat64x1(a.(*array.Planar[float64, tuple.One]))
	case PlanarFloat64x3:
		v.PlanarFloat64x3(a.(*array.Planar[float64, tuple.Three]))
	case InterleavedFloat32x3:
		v.InterleavedFloat32x3(a.(*array.Interleaved[float32, tuple.Three]))
	case InterleavedFloat64x3:
		v.InterleavedFloat64x3(a.(*array.Interleaved[float64, tuple.Three]))
	}
	return nil
}

// fatal is kept out of line so Visit stays small enough to inline.
//
//go:noinline
func fatal(err error) {
	attrs := []any{"error", err}
	if e, ok := err.(*UnknownTypeError); ok {
		attrs = append(attrs, "type", e.Type)
	}
	currentLogger().Warn("dispatch: array outside the supported set", attrs...)
	exit(1)
}
