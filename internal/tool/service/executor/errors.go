package executor

import (
	"errors"
	"fmt"
	"os/exec"
)

var (
	// ErrTimeout is returned when a command exceeds its timeout.
	ErrTimeout = errors.New("command timeout")
	// ErrEmptyCommand is returned when no argv was given.
	ErrEmptyCommand = errors.New("empty command")
	// ErrInvalidTimeout is returned for a negative timeout.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// StartError is returned when a process could not be launched at all.
type StartError struct {
	Cmd   string
	Cause error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Cmd, e.Cause)
}
func (e *StartError) Unwrap() error { return e.Cause }

// NotFound reports whether the binary could not be resolved.
func (e *StartError) NotFound() bool {
	return errors.Is(e.Cause, exec.ErrNotFound)
}

// IsNotFound reports whether err is a StartError for a missing binary.
func IsNotFound(err error) bool {
	var startErr *StartError
	return errors.As(err, &startErr) && startErr.NotFound()
}
