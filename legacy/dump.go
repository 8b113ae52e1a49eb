package legacy

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/tuple"
)

// Dump collects named scalar fields over one grid and writes them as a
// single file.
type Dump struct {
	dims   grid.Dims
	title  string
	fields []field
}

type field struct {
	name  string
	write func(w *bufio.Writer) error
}

// NewDump returns an empty dump over a grid of dims d.
func NewDump(d grid.Dims) *Dump {
	return &Dump{dims: d, title: DefaultTitle}
}

// SetTitle replaces the header title line.
func (d *Dump) SetTitle(title string) { d.title = title }

// Dims returns the grid of the dump.
func (d *Dump) Dims() grid.Dims { return d.dims }

// AddField appends a scalar field. The slice is read when the dump is
// written, not when it is added.
func AddField[V tuple.Float](d *Dump, name string, s []V) {
	dims := d.dims
	d.fields = append(d.fields, field{
		name: name,
		write: func(w *bufio.Writer) error {
			return WriteScalars(w, name, s, dims)
		},
	})
}

// Fields returns the field names in write order.
func (d *Dump) Fields() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.name
	}
	return names
}

// WriteTo writes the header and every field as plain text.
func (d *Dump) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, 64*1024)

	if err := WriteHeader(bw, d.dims, d.title); err != nil {
		return cw.n, err
	}
	for _, f := range d.fields {
		if err := f.write(bw); err != nil {
			return cw.n, fmt.Errorf("legacy: write field %q: %w", f.name, err)
		}
	}
	err := bw.Flush()
	return cw.n, err
}

// Encode writes the dump to w framed with c and returns the number of
// bytes that reached w.
func (d *Dump) Encode(w io.Writer, c Compression) (int64, error) {
	cw := &countingWriter{w: w}
	fw := NewWriter(cw, c)
	if _, err := d.WriteTo(fw); err != nil {
		return cw.n, err
	}
	err := fw.Close()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
