// Package domain defines the roster, diff, and error types shared by the
// ingestion, reconciliation, and export layers.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IngestError indicates a roster source could not be opened or decoded at all.
// Row-level problems never produce an IngestError.
type IngestError struct {
	Source string
	Err    error
}

func (e *IngestError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("spreadsheet parsing failed: %v", e.Err)
	}
	return fmt.Sprintf("%s: spreadsheet parsing failed: %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrIngest wraps a decode failure for the named source.
func ErrIngest(source string, err error) *IngestError {
	return &IngestError{Source: source, Err: err}
}
