package cubemap

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every malformed or inconsistent cube map source.
	ErrFormat = errors.New("invalid cubemap format")
	// ErrNotSquare reports a face whose width and height differ.
	ErrNotSquare = errors.New("not a square image")
	// ErrSizeMismatch reports faces that do not all share the same size.
	ErrSizeMismatch = errors.New("the 6 images have not the same size")
	// ErrFileNotReadable reports a face file that could not be opened or decoded.
	ErrFileNotReadable = errors.New("file not readable")
)

// FormatError describes a cube map that fails validation.
// errors.Is matches both ErrFormat and the specific cause.
type FormatError struct {
	Face Face
	Err  error
}

func (e *FormatError) Error() string {
	if e.Face == noFace {
		return fmt.Sprintf("cubemap: %v", e.Err)
	}
	return fmt.Sprintf("cubemap face %s: %v", e.Face, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// MissingFaceError reports a face that could not be found by file name prefix.
type MissingFaceError struct {
	Face Face
}

func (e *MissingFaceError) Error() string {
	p := e.Face.Prefixes()
	return fmt.Sprintf("couldn't find neither %s nor %s", p[0], p[1])
}
