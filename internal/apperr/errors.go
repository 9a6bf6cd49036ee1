package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrTooLarge          = errors.New("too large")
	ErrPathEscape        = errors.New("path escapes root")
)

// DecodeError reports input bytes that are not valid UTF-8 text.
type DecodeError struct {
	Source string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: invalid UTF-8 at byte %d", e.Source, e.Offset)
}
