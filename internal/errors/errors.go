// Package errors provides enhanced error handling with component and category
// metadata for structured logging and descriptive failure reporting.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory represents the type of error for classification
type ErrorCategory string

// CategorizedError interface for errors that have a category
type CategorizedError interface {
	error
	GetCategory() string
}

const (
	CategoryModelInit     ErrorCategory = "model-initialization"
	CategoryModelLoad     ErrorCategory = "model-loading"
	CategoryLabelLoad     ErrorCategory = "label-loading"
	CategoryImageDecode   ErrorCategory = "image-decode"
	CategoryImageAnalysis ErrorCategory = "image-analysis"
	CategoryValidation    ErrorCategory = "validation"
	CategoryFileIO        ErrorCategory = "file-io"
	CategoryDatabase      ErrorCategory = "database"
	CategoryHTTP          ErrorCategory = "http-request"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryGeneric       ErrorCategory = "generic"
)

// ComponentUnknown is used when the failing component cannot be determined.
const ComponentUnknown = "unknown"

// EnhancedError wraps an error with additional metadata.
type EnhancedError struct {
	Err       error
	component string
	category  ErrorCategory
	context   map[string]any
	timestamp time.Time
}

// Error implements the error interface.
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap supports errors.Is and errors.As.
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// GetComponent returns the component that produced this error.
func (ee *EnhancedError) GetComponent() string {
	if ee.component == "" {
		return ComponentUnknown
	}
	return ee.component
}

// GetCategory returns the error category as a string.
func (ee *EnhancedError) GetCategory() string {
	return string(ee.category)
}

// GetContext returns a copy of the context data attached to this error.
func (ee *EnhancedError) GetContext() map[string]any {
	ctx := make(map[string]any, len(ee.context))
	for k, v := range ee.context {
		ctx[k] = v
	}
	return ctx
}

// GetTimestamp returns when the error was built.
func (ee *EnhancedError) GetTimestamp() time.Time {
	return ee.timestamp
}

// ErrorBuilder provides a fluent interface for building enhanced errors.
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new ErrorBuilder wrapping the given error.
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err:      err,
		category: CategoryGeneric,
	}
}

// Newf creates a new ErrorBuilder from a formatted message.
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name for this error.
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category.
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds a key-value pair to the error context.
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Timing records the duration of the failed operation in the error context.
func (eb *ErrorBuilder) Timing(operation string, duration time.Duration) *ErrorBuilder {
	return eb.Context("operation", operation).Context("duration_ms", duration.Milliseconds())
}

// Build creates the final enhanced error.
func (eb *ErrorBuilder) Build() error {
	return &EnhancedError{
		Err:       eb.err,
		component: eb.component,
		category:  eb.category,
		context:   eb.context,
		timestamp: time.Now(),
	}
}

// --- Standard library passthroughs so callers need a single errors import ---

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// HasCategory reports whether err carries the given category.
func HasCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	if errors.As(err, &ee) {
		return ee.category == category
	}
	return false
}
