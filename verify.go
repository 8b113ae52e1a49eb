package agnostic

import (
	"iter"
	"math"

	"github.com/hupe1980/agnostic/tuple"
)

// float32Eps is the spacing of float32 values at 1.
const float32Eps = 1.0 / (1 << 23)

// tolerance bounds |want - got| by abs + rel*|want|.
type tolerance struct {
	abs, rel float64
}

func (t tolerance) allows(want, got float64) bool {
	return math.Abs(want-got) <= t.abs+t.rel*math.Abs(want)
}

// magnitudeTolerance covers the capability paths, which evaluate in
// float64 and round once, against the all-float32 pointer kernel.
var magnitudeTolerance = tolerance{abs: float32Eps, rel: 8 * float32Eps}

// gradientTolerance covers a rounded float32 difference amplified by 1/h.
func gradientTolerance(h float64) tolerance {
	return tolerance{abs: 8 * float32Eps / h, rel: 8 * float32Eps}
}

// verifier compares layouts against the pointer result and tracks the
// largest absolute difference.
type verifier struct {
	maxErr float64
}

func compare[V tuple.Float](v *verifier, event, field string, want, got []V, cells iter.Seq[int], tol tolerance) error {
	for q := range cells {
		w, g := float64(want[q]), float64(got[q])
		if d := math.Abs(w - g); d > v.maxErr {
			v.maxErr = d
		}
		if !tol.allows(w, g) {
			return &ErrLayoutMismatch{Event: event, Field: field, Index: q, Want: w, Got: g}
		}
	}
	return nil
}

// zeroed reports the first cell of cells where s is not zero.
func zeroed[V tuple.Float](event, field string, s []V, cells iter.Seq[int]) error {
	for q := range cells {
		if s[q] != 0 {
			return &ErrLayoutMismatch{Event: event, Field: field, Index: q, Want: 0, Got: float64(s[q])}
		}
	}
	return nil
}

// span yields 0..n-1.
func span(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for q := range n {
			if !yield(q) {
				return
			}
		}
	}
}
