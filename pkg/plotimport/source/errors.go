package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnreadableSource indicates that no load strategy could parse the input.
var ErrUnreadableSource = errors.New("unreadable source")

// ErrUnsupportedWorkbook indicates a legacy workbook variant the xls
// reader does not handle (BIFF5 and older, or encrypted files).
var ErrUnsupportedWorkbook = errors.New("unsupported workbook")

// ErrSheetNotFound indicates the requested sheet is absent from a workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// AttemptError is the failure of a single load strategy.
type AttemptError struct {
	Strategy Strategy
	Err      error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// LoadError reports that every attempted strategy failed for Path.
type LoadError struct {
	Path     string
	Attempts []*AttemptError
}

func (e *LoadError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Error()
	}
	return fmt.Sprintf("unreadable source %q (%s)", e.Path, strings.Join(parts, "; "))
}

// Is reports ErrUnreadableSource for any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrUnreadableSource
}

// Unwrap exposes the individual attempt errors.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a
	}
	return errs
}

// NewLoadError creates a LoadError.
func NewLoadError(path string, attempts []*AttemptError) *LoadError {
	return &LoadError{
		Path:     path,
		Attempts: attempts,
	}
}
