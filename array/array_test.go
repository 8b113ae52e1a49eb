package array

import (
	"testing"

	"github.com/hupe1980/agnostic/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time contract checks.
var _ Array = (*Planar[float32, tuple.Three])(nil)
var _ Array = (*Interleaved[float64, tuple.Three])(nil)
var _ IteratorPairStorage[PlanarIterator[float32, tuple.Three]] = (*Planar[float32, tuple.Three])(nil)
var _ IteratorPairStorage[InterleavedIterator[float64, tuple.Two]] = (*Interleaved[float64, tuple.Two])(nil)
var _ Iterator[PlanarIterator[float32, tuple.One], float32] = PlanarIterator[float32, tuple.One]{}

func newPlanar3() *Planar[float32, tuple.Three] {
	x := []float32{1, 2, 3, 4}
	y := []float32{10, 20, 30, 40}
	z := []float32{100, 200, 300, 400}
	return NewPlanar[float32, tuple.Three](len(x), x, y, z)
}

func TestPlanar_ZeroValue(t *testing.T) {
	var p Planar[float64, tuple.Three]
	assert.Equal(t, 0, p.NumberOfTuples())
	assert.Equal(t, 3, p.NumberOfComponents())
	for c := 0; c < 3; c++ {
		assert.Nil(t, p.Array(c))
	}
	assert.True(t, p.Begin().Equal(p.End()))
}

func TestPlanar_BeginEnd(t *testing.T) {
	p := newPlanar3()

	begin, end := p.Begin(), p.End()
	assert.Equal(t, 0, begin.Index())
	assert.Equal(t, 4, end.Index())
	assert.Equal(t, 4, Distance(begin, end))

	it := begin
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(i+1), it.At(0))
		assert.Equal(t, float32((i+1)*10), it.At(1))
		assert.Equal(t, float32((i+1)*100), it.At(2))
		it = it.Next()
	}
	assert.True(t, it.Equal(end))
}

func TestPlanar_SetArray(t *testing.T) {
	p := &Planar[float32, tuple.Two]{}
	a := []float32{1, 2}
	b := []float32{3, 4}
	p.SetArray(0, a)
	p.SetArray(1, b)
	p.SetNumberOfTuples(2)

	assert.Equal(t, tuple.Of[float32, tuple.Two](2, 4), p.Tuple(1))

	// The storage aliases caller memory.
	b[1] = 40
	assert.Equal(t, float32(40), p.Value(1, 1))
	assert.Equal(t, float32(40), p.IteratorAt(1).At(1))
}

func TestIterator_Equality(t *testing.T) {
	t.Run("same storage same position", func(t *testing.T) {
		p := newPlanar3()
		assert.True(t, p.Begin().Equal(p.IteratorAt(0)))
		assert.True(t, p.Begin().Next().Equal(p.IteratorAt(1)))
		assert.False(t, p.Begin().Equal(p.IteratorAt(1)))
	})

	t.Run("different storages same position", func(t *testing.T) {
		p := newPlanar3()
		q := newPlanar3()
		assert.False(t, p.Begin().Equal(q.Begin()))
		assert.False(t, p.End().Equal(q.End()))
	})

	t.Run("interleaved", func(t *testing.T) {
		data := []float64{1, 2, 3, 4, 5, 6}
		a := NewInterleaved[float64, tuple.Three](2, data)
		b := NewInterleaved[float64, tuple.Three](2, data)
		assert.True(t, a.Begin().Equal(a.IteratorAt(0)))
		assert.False(t, a.Begin().Equal(b.Begin()))
	})
}

func TestInterleaved(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := NewInterleaved[float64, tuple.Three](3, data)

	assert.Equal(t, 3, s.NumberOfTuples())
	assert.Equal(t, 3, s.NumberOfComponents())
	assert.Equal(t, 6.0, s.Value(1, 2))
	assert.Equal(t, tuple.Of[float64, tuple.Three](7, 8, 9), s.Tuple(2))

	var got []float64
	ForEach(s.Begin(), s.End(), func(it InterleavedIterator[float64, tuple.Three]) {
		got = append(got, it.At(0)+it.At(1)+it.At(2))
	})
	assert.Equal(t, []float64{6, 15, 24}, got)

	assert.Equal(t, tuple.Of[float64, tuple.Three](4, 5, 6), s.IteratorAt(1).Tuple())
}

func TestDispatch(t *testing.T) {
	t.Run("planar", func(t *testing.T) {
		p := newPlanar3()
		calls := 0
		Dispatch(p, func(begin, end PlanarIterator[float32, tuple.Three]) {
			calls++
			assert.True(t, begin.Equal(p.Begin()))
			assert.True(t, end.Equal(p.End()))
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("interleaved", func(t *testing.T) {
		s := NewInterleaved[float32, tuple.Two](2, []float32{1, 2, 3, 4})
		var sum float32
		Dispatch(s, func(begin, end InterleavedIterator[float32, tuple.Two]) {
			ForEach(begin, end, func(it InterleavedIterator[float32, tuple.Two]) {
				sum += it.At(1)
			})
		})
		assert.Equal(t, float32(6), sum)
	})

	t.Run("range", func(t *testing.T) {
		p := newPlanar3()
		var idx []int
		DispatchRange(p, 1, 3, func(begin, end PlanarIterator[float32, tuple.Three]) {
			ForEach(begin, end, func(it PlanarIterator[float32, tuple.Three]) {
				idx = append(idx, it.Index())
			})
		})
		require.Equal(t, []int{1, 2}, idx)
	})
}
