package dynarray

// Container is the capability surface of a dynamic array.
type Container interface {
	NumberOfTuples() int
	NumberOfComponents() int

	// GetTuple returns tuple i in a scratch buffer owned by the container.
	// The buffer is valid until the next GetTuple on the same container.
	GetTuple(i int) []float64
	// GetTupleInto copies tuple i into dst.
	GetTupleInto(i int, dst []float64)
	SetTuple(i int, src []float64)

	GetComponent(i, c int) float64
	// GetValue and SetValue address the flat, tuple-major value index.
	GetValue(flat int) float64
	SetValue(flat int, v float64)

	NewIterator() Iterator

	// Shard returns a container over the same buffers with private scratch.
	Shard() Container
}

// Iterator is a type-erased cursor-free view of a container. Values are
// addressed by flat index as tuple*components + component.
type Iterator interface {
	GetValue(flat int) float64
	NumberOfTuples() int
	NumberOfComponents() int
}

// Adapter wraps a Container. Every call goes through to the container;
// nothing is cached.
type Adapter struct {
	c Container
}

// NewAdapter wraps c.
func NewAdapter(c Container) *Adapter {
	return &Adapter{c: c}
}

// Container returns the wrapped container.
func (a *Adapter) Container() Container { return a.c }

func (a *Adapter) NumberOfTuples() int { return a.c.NumberOfTuples() }

func (a *Adapter) NumberOfComponents() int { return a.c.NumberOfComponents() }

// Tuple copies tuple i into dst, growing it when shorter than the component
// count, and returns it. The result never aliases container scratch.
func (a *Adapter) Tuple(i int, dst []float64) []float64 {
	nc := a.c.NumberOfComponents()
	if cap(dst) < nc {
		dst = make([]float64, nc)
	}
	dst = dst[:nc]
	copy(dst, a.c.GetTuple(i))
	return dst
}

// SetTuple writes src as tuple i.
func (a *Adapter) SetTuple(i int, src []float64) { a.c.SetTuple(i, src) }

// Component returns component c of tuple i.
func (a *Adapter) Component(i, c int) float64 { return a.c.GetComponent(i, c) }

// Value returns the value at flat index flat.
func (a *Adapter) Value(flat int) float64 { return a.c.GetValue(flat) }

// SetValue writes the value at flat index flat.
func (a *Adapter) SetValue(flat int, v float64) { a.c.SetValue(flat, v) }

// Iterator returns the container's type-erased iterator.
func (a *Adapter) Iterator() Iterator { return a.c.NewIterator() }

// Shard returns an adapter over a shard of the container.
func (a *Adapter) Shard() *Adapter { return &Adapter{c: a.c.Shard()} }
