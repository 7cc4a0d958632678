package errortypes

import (
	"errors"
	"fmt"
)

// ErrFilePos extends the error interface to add details on the position in
// the template source where the error occurred.
type ErrFilePos interface {
	error
	File() string
	Line() int
	Col() int
}

// NewErrFilePosf creates an error conforming to the ErrFilePos interface.
// The error is classified as malformed template source.
func NewErrFilePosf(file string, line, col int, format string, args ...interface{}) error {
	return &Error{
		Kind: ErrMalformedTemplate,
		Msg:  fmt.Sprintf(format, args...),
		file: file,
		line: line,
		col:  col,
	}
}

// IsErrFilePos identifies whether or not the root cause of the provided error
// carries a source position. Wrapped errors are unwrapped via the Cause()
// function and the standard Unwrap chain.
func IsErrFilePos(err error) bool {
	return ToErrFilePos(err) != nil
}

// ToErrFilePos converts the input error to an ErrFilePos if possible, or nil if not.
// If IsErrFilePos returns true, this will not return nil.
func ToErrFilePos(err error) ErrFilePos {
	if err == nil {
		return nil
	}
	err = rootCause(err)
	var out *Error
	if errors.As(err, &out) {
		if out.line > 0 {
			return out
		}
		return nil
	}
	if fp, ok := err.(ErrFilePos); ok {
		return fp
	}
	return nil
}

func rootCause(err error) error {
	type causer interface {
		Cause() error
	}

	for {
		if e, ok := err.(causer); ok {
			err = e.Cause()
		} else {
			return err
		}
	}
}
