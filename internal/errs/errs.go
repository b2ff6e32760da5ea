// Package errs defines the error kinds shared by every pipeline stage.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports input the operator has to fix before re-running:
// mismatched list counts, malformed delimiters, rejected records.
type ValidationError struct {
	File   string
	Line   int // 1-based; 0 when the error is not tied to a line
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	default:
		return e.Reason
	}
}

// Validation builds a ValidationError with a formatted reason.
func Validation(file string, line int, format string, args ...any) *ValidationError {
	return &ValidationError{File: file, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// IOError wraps a failed read or write on a concrete path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// IO wraps err as an IOError, or returns nil when err is nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// CoverageWarning marks a literal that had no mapping entry. It is collected
// into reports and never returned as an error.
type CoverageWarning struct {
	File string
	Line int
	Text string
}

func (w CoverageWarning) String() string {
	return fmt.Sprintf("%s:%d: no translation for %q", w.File, w.Line, w.Text)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsIO reports whether err carries an IOError.
func IsIO(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}
