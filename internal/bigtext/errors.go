package bigtext

import (
	"errors"
	"io/fs"
)

// Sentinel validation errors.
var (
	ErrInvalidBlockSize  = errors.New("block size must be positive")
	ErrInvalidCheckLimit = errors.New("check limit cannot be negative")
	ErrInvalidRatio      = errors.New("compression ratio must be in (0, 1]")
	ErrInvalidMinSize    = errors.New("minimum size cannot be negative")
)

// PathError records a failed operation on a path.
type PathError struct {
	// Op is the failed operation, e.g. "walk", "stat", "open" or "read".
	Op string
	// Path is the offending path.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// newPathError wraps err for op on path. An *fs.PathError from the os
// package is unwrapped so the path is not repeated in the message.
func newPathError(op, path string, err error) *PathError {
	var fsErr *fs.PathError
	if errors.As(err, &fsErr) {
		err = fsErr.Err
	}

	return &PathError{Op: op, Path: path, Err: err}
}
