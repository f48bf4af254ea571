// Package errors provides a lightweight structured error type (DocConfError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a docconf error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External engine errors
	CategoryEngine ErrorCategory = "engine"

	// Local environment errors
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocConfError is a structured error with category, retryability, and context
type DocConfError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocConfError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocConfError) Error() string {
	msg := e.Message
	if reason, ok := e.Context["reason"]; ok {
		if field, ok := e.Context["field"]; ok {
			msg = fmt.Sprintf("%s: %v: %v", msg, field, reason)
		} else {
			msg = fmt.Sprintf("%s: %v", msg, reason)
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, msg)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocConfError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocConfError) WithContext(key string, value any) *DocConfError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocConfError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocConfError {
	return &DocConfError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocConfError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocConfError {
	return &DocConfError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable DocConfError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocConfError {
	return &DocConfError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// As returns the first DocConfError in err's chain.
func As(err error) (*DocConfError, bool) {
	var dce *DocConfError
	if stdErrors.As(err, &dce) {
		return dce, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dce, ok := As(err); ok {
		return dce.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if dce, ok := As(err); ok {
		return dce.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocConfError
func GetCategory(err error) ErrorCategory {
	if dce, ok := As(err); ok {
		return dce.Category
	}
	return CategoryInternal
}
