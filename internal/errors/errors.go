// Package errors provides a lightweight structured error type (DocgenError)
// for category-based classification across pipeline stages and the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a docgen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Host environment errors
	CategoryPlatform   ErrorCategory = "platform"
	CategoryFileSystem ErrorCategory = "filesystem"

	// External tool errors
	CategoryInstall  ErrorCategory = "install"
	CategoryGenerate ErrorCategory = "generate"

	// Supporting infrastructure errors
	CategoryHistory  ErrorCategory = "history"
	CategoryEvents   ErrorCategory = "events"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// DocgenError is a structured error with category, severity, and context
type DocgenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocgenError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocgenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocgenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocgenError) WithContext(key string, value any) *DocgenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new fatal DocgenError
func New(category ErrorCategory, message string) *DocgenError {
	return &DocgenError{
		Category: category,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// Wrap creates a new fatal DocgenError that wraps an existing error
func Wrap(err error, category ErrorCategory, message string) *DocgenError {
	return &DocgenError{
		Category: category,
		Severity: SeverityFatal,
		Message:  message,
		Cause:    err,
	}
}

// Warning creates a non-fatal DocgenError
func Warning(category ErrorCategory, message string) *DocgenError {
	return &DocgenError{
		Category: category,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// WrapWarning wraps an existing error as a non-fatal DocgenError
func WrapWarning(err error, category ErrorCategory, message string) *DocgenError {
	return &DocgenError{
		Category: category,
		Severity: SeverityWarning,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if de, ok := err.(*DocgenError); ok {
		return de.Category == category
	}
	return false
}

// IsFatal reports whether an error should stop the run. Plain errors are fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if de, ok := err.(*DocgenError); ok {
		return de.Severity == SeverityFatal
	}
	return true
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocgenError
func GetCategory(err error) ErrorCategory {
	if de, ok := err.(*DocgenError); ok {
		return de.Category
	}
	return CategoryInternal
}
