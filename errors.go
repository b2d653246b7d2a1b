package svg

import (
	"errors"
	"fmt"
)

// Errors reported while decoding path data and path elements. They are
// wrapped with context, use errors.Is to match them.
var (
	ErrMalformedNumber   = errors.New("malformed number")
	ErrWrongArity        = errors.New("wrong number of coordinates")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingAttribute  = errors.New("missing attribute")
	ErrInvalidCoordinate = errors.New("invalid coordinate in stream")
	ErrMalformedColor    = errors.New("malformed color")
)

// A Diagnostic is a recoverable problem found while converting path data.
// The output it belongs to is still usable, possibly degraded.
type Diagnostic struct {
	Command  rune
	Operands string
	Err      error
}

func (d Diagnostic) Error() string {
	if d.Command == 0 {
		return d.Err.Error()
	}
	return fmt.Sprintf("command %q %q: %v", d.Command, d.Operands, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// PathError records a path element that could not be turned into a
// Region.
type PathError struct {
	Index int
	ID    string
	Err   error
}

func (e *PathError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("path #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("path #%d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
