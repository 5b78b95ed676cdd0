package path

import (
	"errors"
	"fmt"
)

// ResolveError is returned when a path cannot be made absolute.
type ResolveError struct {
	Path  string
	Cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %v", e.Path, e.Cause)
}
func (e *ResolveError) Unwrap() error { return e.Cause }

var (
	ErrEmptyPath = errors.New("path is empty")
)
