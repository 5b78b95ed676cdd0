package file

import "errors"

// -- Sentinels --

var (
	ErrPathRequired    = errors.New("path is required")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidLines    = errors.New("lines must be >= 1")
)
