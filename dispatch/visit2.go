package dispatch

import (
	"fmt"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/tuple"
)

// Visitor2 binds the first resolved storage and returns the Visitor that
// receives the second one. Both values are concretely typed by the time the
// inner method runs.
type Visitor2 interface {
	PlanarFloat32x1(a *array.Planar[float32, tuple.One]) Visitor
	PlanarFloat32x3(a *array.Planar[float32, tuple.Three]) Visitor
	PlanarFloat64x1(a *array.Planar[float64, tuple.One]) Visitor
	PlanarFloat64x3(a *array.Planar[float64, tuple.Three]) Visitor
	InterleavedFloat32x3(a *array.Interleaved[float32, tuple.Three]) Visitor
	InterleavedFloat64x3(a *array.Interleaved[float64, tuple.Three]) Visitor
}

// Visit2 resolves a, then b, and runs the inner visitor. a is the outer
// loop. Either value falling outside the set terminates the process before
// any method of v runs.
func Visit2(a, b array.Array, v Visitor2) {
	if err := TryVisit2(a, b, v); err != nil {
		fatal(err)
	}
}

// TryVisit2 is Visit2 reporting the first unmatched value as an error.
// Both values are resolved, and a checked against v when v is Partial,
// before v is called. A Partial inner visitor is checked once the outer
// method has returned it.
func TryVisit2(a, b array.Array, v Visitor2) error {
	ka, ok := Resolve(a)
	if !ok {
		return &UnknownTypeError{Type: fmt.Sprintf("%T", a)}
	}
	if p, ok := v.(Partial); ok && !p.Handles(ka) {
		return &UnknownTypeError{Type: fmt.Sprintf("%T", a), Kind: ka}
	}
	if _, ok := Resolve(b); !ok {
		return &UnknownTypeError{Type: fmt.Sprintf("%T", b)}
	}

	o := &outer{v: v, b: b}
	if err := TryVisit(a, o); err != nil {
		return err
	}
	return o.err
}

type outer struct {
	v   Visitor2
	b   array.Array
	err error
}

func (o *outer) PlanarFloat32x1(a *array.Planar[float32, tuple.One]) {
	o.err = TryVisit(o.b, o.v.PlanarFloat32x1(a))
}

func (o *outer) PlanarFloat32x3(a *array.Planar[float32, tuple.Three]) {
	o.err = TryVisit(o.b, o.v.PlanarFloat32x3(a))
}

func (o *outer) PlanarFloat64x1(a *array.Planar[float64, tuple.One]) {
	o.err = TryVisit(o.b, o.v.PlanarFloat64x1(a))
}

func (o *outer) PlanarFloat64x3(a *array.Planar[float64, tuple.Three]) {
	o.err = TryVisit(o.b, o.v.PlanarFloat64x3(a))
}

func (o *outer) InterleavedFloat32x3(a *array.Interleaved[float32, tuple.Three]) {
	o.err = TryVisit(o.b, o.v.InterleavedFloat32x3(a))
}

func (o *outer) InterleavedFloat64x3(a *array.Interleaved[float64, tuple.Three]) {
	o.err = TryVisit(o.b, o.v.InterleavedFloat64x3(a))
}
