// Package midi decodes the Standard MIDI File (SMF) container format from an
// in-memory byte buffer. Decoded payloads are views into the input buffer and
// are never copied; they must not be used after the buffer is released.
package midi

import "errors"

var (
	// ErrFatal is a generic error reporting that the input ended before a
	// complete read; continuing would run past the end of the buffer.
	ErrFatal = errors.New("unexpected end of data")
	// ErrInvalid is a generic error reporting that the parser encountered
	// data violating the SMF format.
	ErrInvalid = errors.New("unexpected data content")
)
