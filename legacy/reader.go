package legacy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/agnostic/grid"
)

// ErrFormat is returned by Parse for malformed input.
var ErrFormat = errors.New("legacy: malformed file")

// MaxPoints bounds the grid size Parse accepts.
const MaxPoints = 1 << 28

// File is a parsed dump.
type File struct {
	Title  string
	Dims   grid.Dims
	Names  []string
	Fields map[string][]float32
}

// Parse reads a plain-text dump written by Dump.WriteTo. Wrap r with
// NewReader to read framed dumps.
func Parse(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	line := 0
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line++
		return sc.Text(), nil
	}
	expect := func(want string) error {
		got, err := next()
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrFormat, line+1, err)
		}
		if got != want {
			return fmt.Errorf("%w: line %d: got %q, want %q", ErrFormat, line, got, want)
		}
		return nil
	}

	if err := expect(Version); err != nil {
		return nil, err
	}
	title, err := next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing title: %w", ErrFormat, err)
	}
	f := &File{Title: title, Fields: map[string][]float32{}}

	for _, want := range []string{"ASCII", "DATASET STRUCTURED_POINTS"} {
		if err := expect(want); err != nil {
			return nil, err
		}
	}

	dimLine, err := next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing dimensions: %w", ErrFormat, err)
	}
	if _, err := fmt.Sscanf(dimLine, "DIMENSIONS %d %d %d", &f.Dims.NX, &f.Dims.NY, &f.Dims.NZ); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
	}
	if err := checkDims(f.Dims); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
	}

	for _, want := range []string{"ORIGIN 0 0 0", "SPACING 1 1 1", ""} {
		if err := expect(want); err != nil {
			return nil, err
		}
	}
	if err := expect(fmt.Sprintf("POINT_DATA %d", f.Dims.Len())); err != nil {
		return nil, err
	}

	n := f.Dims.Len()
	for {
		hdr, err := next()
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if hdr == "" {
			continue
		}

		var name string
		if _, err := fmt.Sscanf(hdr, "SCALARS %s float 1", &name); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		if err := expect("LOOKUP_TABLE default"); err != nil {
			return nil, err
		}

		values := make([]float32, 0, min(n, 4096))
		for i := range n {
			s, err := next()
			if err != nil {
				return nil, fmt.Errorf("%w: field %q truncated at %d of %d", ErrFormat, name, i, n)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
			}
			values = append(values, float32(v))
		}

		f.Names = append(f.Names, name)
		f.Fields[name] = values
	}
}

func checkDims(d grid.Dims) error {
	if d.NX < 1 || d.NY < 1 || d.NZ < 1 {
		return fmt.Errorf("dimensions %s must be positive", d)
	}
	if d.NX > MaxPoints/d.NY || d.NX*d.NY > MaxPoints/d.NZ {
		return fmt.Errorf("dimensions %s exceed %d points", d, MaxPoints)
	}
	return nil
}
