package legacy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/agnostic/grid"
	"github.com/hupe1980/agnostic/tuple"
)

// Version is the first header line.
const Version = "# vtk DataFile Version 2.0"

// DefaultTitle is the second header line unless overridden.
const DefaultTitle = "Really cool data"

// WriteHeader writes the dataset header for a grid of dims d.
func WriteHeader(w io.Writer, d grid.Dims, title string) error {
	if title == "" {
		title = DefaultTitle
	}
	_, err := fmt.Fprintf(w, "%s\n%s\nASCII\nDATASET STRUCTURED_POINTS\nDIMENSIONS %d %d %d\nORIGIN 0 0 0\nSPACING 1 1 1\n\nPOINT_DATA %d\n",
		Version, title, d.NX, d.NY, d.NZ, d.Len())
	return err
}

// WriteScalars writes the first d.Len() values of s as a float scalar
// field named name.
func WriteScalars[V tuple.Float](w io.Writer, name string, s []V, d grid.Dims) error {
	n := d.Len()
	if len(s) < n {
		return fmt.Errorf("legacy: field %q has %d values, grid needs %d", name, len(s), n)
	}

	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}

	if _, err := fmt.Fprintf(bw, "SCALARS %s float 1\nLOOKUP_TABLE default\n", name); err != nil {
		return err
	}

	var buf [32]byte
	for _, v := range s[:n] {
		b := strconv.AppendFloat(buf[:0], float64(float32(v)), 'g', 6, 32)
		b = append(b, '\n')
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}

	if !ok {
		return bw.Flush()
	}
	return nil
}
