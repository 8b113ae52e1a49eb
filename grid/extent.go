package grid

import "fmt"

// Dims is the point count along each axis.
type Dims struct {
	NX, NY, NZ int
}

// Len returns the total number of points.
func (d Dims) Len() int { return d.NX * d.NY * d.NZ }

// NXY returns the stride between k planes.
func (d Dims) NXY() int { return d.NX * d.NY }

// Index returns the flat index of (i, j, k).
func (d Dims) Index(i, j, k int) int { return k*d.NX*d.NY + j*d.NX + i }

func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d.NX, d.NY, d.NZ) }

// Extent is an inclusive index box [I0,I1] × [J0,J1] × [K0,K1].
type Extent struct {
	I0, I1 int
	J0, J1 int
	K0, K1 int
}

// Whole returns the extent covering every point of d.
func Whole(d Dims) Extent {
	return Extent{0, d.NX - 1, 0, d.NY - 1, 0, d.NZ - 1}
}

// Interior returns the extent of d with a one-cell margin on all six faces,
// the largest extent a central-difference stencil may visit.
func Interior(d Dims) Extent {
	return Whole(d).Shrink(1)
}

// Shrink moves every face inward by margin cells.
func (e Extent) Shrink(margin int) Extent {
	return Extent{
		e.I0 + margin, e.I1 - margin,
		e.J0 + margin, e.J1 - margin,
		e.K0 + margin, e.K1 - margin,
	}
}

// Empty reports whether the extent contains no cells.
func (e Extent) Empty() bool {
	return e.I1 < e.I0 || e.J1 < e.J0 || e.K1 < e.K0
}

// Size returns the number of cells in the extent.
func (e Extent) Size() int {
	if e.Empty() {
		return 0
	}
	return (e.I1 - e.I0 + 1) * (e.J1 - e.J0 + 1) * (e.K1 - e.K0 + 1)
}

// Within reports whether e lies inside the point range of d.
func (e Extent) Within(d Dims) bool {
	return e.In(Whole(d))
}

// In reports whether every cell of e is also in o. An empty e is in
// anything.
func (e Extent) In(o Extent) bool {
	if e.Empty() {
		return true
	}
	return e.I0 >= o.I0 && e.I1 <= o.I1 &&
		e.J0 >= o.J0 && e.J1 <= o.J1 &&
		e.K0 >= o.K0 && e.K1 <= o.K1
}

// SplitK partitions e into at most parts disjoint extents covering it.
// It cuts along k, or along j when k is too short to give every part a
// plane. The result is never empty for a non-empty extent.
func (e Extent) SplitK(parts int) []Extent {
	if e.Empty() {
		return nil
	}
	nk := e.K1 - e.K0 + 1
	nj := e.J1 - e.J0 + 1
	if parts <= 1 || (nk == 1 && nj == 1) {
		return []Extent{e}
	}

	if nk >= parts || nk >= nj {
		return splitAxis(e, parts, e.K0, e.K1, func(x Extent, lo, hi int) Extent {
			x.K0, x.K1 = lo, hi
			return x
		})
	}
	return splitAxis(e, parts, e.J0, e.J1, func(x Extent, lo, hi int) Extent {
		x.J0, x.J1 = lo, hi
		return x
	})
}

func splitAxis(e Extent, parts, lo, hi int, set func(Extent, int, int) Extent) []Extent {
	n := hi - lo + 1
	if parts > n {
		parts = n
	}
	out := make([]Extent, 0, parts)
	base, rem := n/parts, n%parts
	start := lo
	for p := range parts {
		size := base
		if p < rem {
			size++
		}
		out = append(out, set(e, start, start+size-1))
		start += size
	}
	return out
}

// ForEachRow calls fn once per (j, k) row of e with the flat index of the
// row's first point (i = 0).
func (e Extent) ForEachRow(d Dims, fn func(q, j, k int)) {
	nxy := d.NXY()
	for k := e.K0; k <= e.K1; k++ {
		for j := e.J0; j <= e.J1; j++ {
			fn(k*nxy+j*d.NX, j, k)
		}
	}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d]x[%d,%d]x[%d,%d]", e.I0, e.I1, e.J0, e.J1, e.K0, e.K1)
}
