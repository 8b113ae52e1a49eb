package tuple

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// MaxComponents is the largest arity a Tuple can hold.
const MaxComponents = 9

// Scalar is the set of component types storages may hold.
type Scalar interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// Float is the set of component types numeric kernels operate on.
type Float interface {
	~float32 | ~float64
}

// Arity is a stateless marker carrying a compile-time component count.
type Arity interface {
	Components() int
}

type (
	// One marks scalar fields.
	One struct{}
	// Two marks 2-vectors.
	Two struct{}
	// Three marks 3-vectors.
	Three struct{}
	// Four marks 4-vectors (e.g. RGBA, quaternions).
	Four struct{}
	// Nine marks 3x3 tensors.
	Nine struct{}
)

func (One) Components() int   { return 1 }
func (Two) Components() int   { return 2 }
func (Three) Components() int { return 3 }
func (Four) Components() int  { return 4 }
func (Nine) Components() int  { return 9 }

// Len returns the component count of arity A.
func Len[A Arity]() int {
	var a A
	return a.Components()
}

// Tuple holds A.Components() values of type V.
// The zero value is a tuple of zeros.
type Tuple[V Scalar, A Arity] struct {
	v [MaxComponents]V
}

// Of builds a tuple from values. Missing components are zero; extra values
// are ignored.
func Of[V Scalar, A Arity](values ...V) Tuple[V, A] {
	var t Tuple[V, A]
	copy(t.v[:Len[A]()], values)
	return t
}

// Len returns the number of components.
func (t Tuple[V, A]) Len() int {
	var a A
	return a.Components()
}

// At returns component c. It panics if c is not below Len.
func (t Tuple[V, A]) At(c int) V {
	return t.v[:t.Len()][c]
}

// Set replaces component c in place. It panics if c is not below Len.
func (t *Tuple[V, A]) Set(c int, v V) {
	t.v[:t.Len()][c] = v
}

// With returns a copy of t with component c replaced. It panics if c is
// not below Len.
func (t Tuple[V, A]) With(c int, v V) Tuple[V, A] {
	t.v[:t.Len()][c] = v
	return t
}

// Values copies the components into a new slice.
func (t Tuple[V, A]) Values() []V {
	out := make([]V, t.Len())
	copy(out, t.v[:t.Len()])
	return out
}

// Norm returns the Euclidean length in float64.
func (t Tuple[V, A]) Norm() float64 {
	var sum float64
	for c := 0; c < t.Len(); c++ {
		x := float64(t.v[c])
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Equal reports whether the first Len components are identical.
func (t Tuple[V, A]) Equal(o Tuple[V, A]) bool {
	n := t.Len()
	return slices.Equal(t.v[:n], o.v[:n])
}

func (t Tuple[V, A]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for c := 0; c < t.Len(); c++ {
		if c > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, t.v[c])
	}
	sb.WriteByte(')')
	return sb.String()
}
