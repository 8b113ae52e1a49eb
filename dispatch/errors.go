package dispatch

import "errors"

// ErrUnknownType is matched by every *UnknownTypeError.
var ErrUnknownType = errors.New("unknown array type")

// UnknownTypeError names a dynamic type outside the closed set, or a member
// the visitor declined to handle.
type UnknownTypeError struct {
	Type string
	Kind Kind
}

func (e *UnknownTypeError) Error() string {
	if e.Kind != KindUnknown {
		return "dispatch: unhandled array kind " + e.Kind.String() + " (" + e.Type + ")"
	}
	return "dispatch: unknown array type " + e.Type
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }
