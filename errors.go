package docnorm

import (
	"errors"
	"fmt"

	"github.com/tsawler/docnorm/chunk"
)

// ErrorKind categorizes extraction failures.
type ErrorKind string

const (
	// KindFatalIO means the file could not be read as its format.
	KindFatalIO ErrorKind = "fatal_io"
	// KindInvalidRange means the requested page range is empty.
	KindInvalidRange ErrorKind = "invalid_range"
	// KindUnsupported means the operation does not apply to the format.
	KindUnsupported ErrorKind = "unsupported"
)

var (
	// ErrFatalIO matches every KindFatalIO error.
	ErrFatalIO = errors.New("document unreadable")
	// ErrInvalidRange matches every KindInvalidRange error. It is the
	// chunk package's sentinel.
	ErrInvalidRange = chunk.ErrInvalidRange
	// ErrUnsupported matches every KindUnsupported error.
	ErrUnsupported = errors.New("operation not supported for format")
)

// Error is returned by Extract and Info.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFatalIO:
		return e.Kind == KindFatalIO
	case ErrInvalidRange:
		return e.Kind == KindInvalidRange
	case ErrUnsupported:
		return e.Kind == KindUnsupported
	}
	return false
}

func fatalIO(path string, err error) *Error {
	return &Error{Kind: KindFatalIO, Path: path, Err: err}
}
