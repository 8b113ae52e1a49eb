package agnostic

import (
	"errors"
	"fmt"
)

var (
	// ErrVerification is matched by every *ErrLayoutMismatch.
	ErrVerification = errors.New("layout results disagree")
)

// ErrInvalidSize indicates a grid size the program cannot run on.
type ErrInvalidSize struct {
	Program string
	Size    int
	Min     int
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("%s: invalid size %d (minimum %d)", e.Program, e.Size, e.Min)
}

// ErrLayoutMismatch reports the first cell where a layout's result differs
// from the pointer result by more than the tolerance.
type ErrLayoutMismatch struct {
	Event string
	Field string
	Index int
	Want  float64
	Got   float64
}

func (e *ErrLayoutMismatch) Error() string {
	return fmt.Sprintf("%s: %s[%d] = %g, pointer result %g", e.Event, e.Field, e.Index, e.Got, e.Want)
}

func (e *ErrLayoutMismatch) Unwrap() error { return ErrVerification }
