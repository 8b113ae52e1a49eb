package dynarray

import "github.com/hupe1980/agnostic/tuple"

// VectorTemplate maps three caller-owned component buffers as one
// three-component container. A nil component buffer reads as zero and
// drops writes.
type VectorTemplate[V tuple.Float] struct {
	x, y, z []V
	n       int
	release func()
	scratch [3]float64
}

// NewVectorTemplate returns an empty mapped container.
func NewVectorTemplate[V tuple.Float]() *VectorTemplate[V] {
	return &VectorTemplate[V]{}
}

// SetComponentArrays maps x, y and z as n tuples. release, when non-nil,
// runs once when the buffers are replaced or Release is called. Each non-nil
// buffer must hold at least n values.
func (v *VectorTemplate[V]) SetComponentArrays(x, y, z []V, n int, release func()) {
	v.Release()
	v.x, v.y, v.z = x, y, z
	v.n = n
	v.release = release
}

// Release unmaps the buffers and runs the release callback if one is set.
func (v *VectorTemplate[V]) Release() {
	if v.release != nil {
		v.release()
	}
	v.x, v.y, v.z = nil, nil, nil
	v.n = 0
	v.release = nil
}

// ComponentArrays returns the mapped buffers.
func (v *VectorTemplate[V]) ComponentArrays() (x, y, z []V) {
	return v.x, v.y, v.z
}

func (v *VectorTemplate[V]) NumberOfTuples() int { return v.n }

func (v *VectorTemplate[V]) NumberOfComponents() int { return 3 }

func (v *VectorTemplate[V]) component(c int) []V {
	switch c {
	case 0:
		return v.x
	case 1:
		return v.y
	case 2:
		return v.z
	default:
		panic("dynarray: component index out of range")
	}
}

func (v *VectorTemplate[V]) GetComponent(i, c int) float64 {
	if s := v.component(c); s != nil {
		return float64(s[i])
	}
	return 0
}

func (v *VectorTemplate[V]) GetTuple(i int) []float64 {
	v.GetTupleInto(i, v.scratch[:])
	return v.scratch[:]
}

func (v *VectorTemplate[V]) GetTupleInto(i int, dst []float64) {
	dst[0] = v.GetComponent(i, 0)
	dst[1] = v.GetComponent(i, 1)
	dst[2] = v.GetComponent(i, 2)
}

func (v *VectorTemplate[V]) SetTuple(i int, src []float64) {
	for c := range 3 {
		if s := v.component(c); s != nil {
			s[i] = V(src[c])
		}
	}
}

func (v *VectorTemplate[V]) GetValue(flat int) float64 {
	return v.GetComponent(flat/3, flat%3)
}

func (v *VectorTemplate[V]) SetValue(flat int, val float64) {
	if s := v.component(flat % 3); s != nil {
		s[flat/3] = V(val)
	}
}

func (v *VectorTemplate[V]) NewIterator() Iterator {
	return vectorIterator[V]{v: v}
}

// Shard shares the buffers but not the release callback.
func (v *VectorTemplate[V]) Shard() Container {
	return &VectorTemplate[V]{x: v.x, y: v.y, z: v.z, n: v.n}
}

type vectorIterator[V tuple.Float] struct {
	v *VectorTemplate[V]
}

func (it vectorIterator[V]) GetValue(flat int) float64 { return it.v.GetValue(flat) }

func (it vectorIterator[V]) NumberOfTuples() int { return it.v.n }

func (it vectorIterator[V]) NumberOfComponents() int { return 3 }
