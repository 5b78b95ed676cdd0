package ui

import "errors"

// ErrInterrupted is returned by ReadInput when the operator pressed Ctrl+C
// at the prompt.
var ErrInterrupted = errors.New("input interrupted")
