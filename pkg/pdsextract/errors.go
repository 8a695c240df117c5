package pdsextract

import (
	"errors"
	"fmt"
)

// ErrUnreadable indicates the workbook could not be opened.
var ErrUnreadable = errors.New("unreadable workbook")

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = fmt.Errorf("%w: file not found", ErrUnreadable)

// ErrNoSheets indicates the workbook opened but has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// SourceError reports a failure to load a workbook before any field was
// resolved.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func newSourceError(path string, err error) *SourceError {
	return &SourceError{
		Path: path,
		Err:  err,
	}
}
