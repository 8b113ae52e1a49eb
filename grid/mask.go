package grid

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a set of flat point indices of a grid.
type Mask struct {
	rb   *roaring.Bitmap
	dims Dims
}

// NewMask returns the mask of every point of ext in d.
func NewMask(d Dims, ext Extent) *Mask {
	m := &Mask{rb: roaring.New(), dims: d}
	if ext.Empty() {
		return m
	}
	ext.ForEachRow(d, func(q, _, _ int) {
		m.rb.AddRange(uint64(q+ext.I0), uint64(q+ext.I1+1))
	})
	return m
}

// InteriorMask returns the mask of Interior(d).
func InteriorMask(d Dims) *Mask {
	return NewMask(d, Interior(d))
}

// Dims returns the grid the mask indexes.
func (m *Mask) Dims() Dims { return m.dims }

// Contains reports whether q is in the mask.
func (m *Mask) Contains(q int) bool {
	return q >= 0 && m.rb.Contains(uint32(q))
}

// Cardinality returns the number of indices in the mask.
func (m *Mask) Cardinality() int {
	return int(m.rb.GetCardinality())
}

// Complement returns every grid point not in m.
func (m *Mask) Complement() *Mask {
	all := roaring.New()
	all.AddRange(0, uint64(m.dims.Len()))
	return &Mask{rb: roaring.AndNot(all, m.rb), dims: m.dims}
}

// And returns the intersection of m and o.
func (m *Mask) And(o *Mask) *Mask {
	return &Mask{rb: roaring.And(m.rb, o.rb), dims: m.dims}
}

// All iterates the indices in ascending order.
func (m *Mask) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
