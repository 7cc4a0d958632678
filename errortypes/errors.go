// Package errortypes defines the error kinds reported while parsing and
// rendering templates.
package errortypes

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify an error returned by this module.
var (
	// ErrMalformedTemplate reports a syntax or argument-shape problem found
	// while building a template.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrUnknownFunction reports an unrecognized function code.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrMissingBinding reports a variable that was never bound.
	ErrMissingBinding = errors.New("missing binding")

	// ErrUnsupportedBindingType reports a bound value whose kind does not
	// suit the function applied to it.
	ErrUnsupportedBindingType = errors.New("unsupported binding type")

	// ErrUnknownLabel reports a gender, case or plural label with no
	// matching output text.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrNestingTooDeep reports a chain of nested templates that exceeds the
	// render depth limit, usually because a template was bound into itself.
	ErrNestingTooDeep = errors.New("template nesting too deep")
)

var _ ErrFilePos = &Error{}

// Error is the concrete error produced by the parser and the renderer.
type Error struct {
	Kind error  // one of the Err* kinds above
	Msg  string // human readable detail
	Err  error  // underlying cause, if any

	file string
	line int
	col  int
}

// New creates an error of the given kind without position information.
func New(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At creates an error of the given kind located in the named template source.
func At(kind error, file string, line, col int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), file: file, line: line, col: col}
}

// Wrap creates an error of the given kind caused by err.
func Wrap(kind error, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	var msg = e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.line > 0 {
		return fmt.Sprintf("template %s:%d:%d: %s", e.file, e.line, e.col, msg)
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) File() string {
	return e.file
}

func (e *Error) Line() int {
	return e.line
}

func (e *Error) Col() int {
	return e.col
}
