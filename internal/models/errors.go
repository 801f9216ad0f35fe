package models

import "fmt"

// GeneratorError represents an error that occurred during creator generation
type GeneratorError struct {
	Type      ErrorType // type of error
	Component string    // component implementation being generated
	Message   string    // error message
	Cause     error     // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s: %s", e.Component, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// NewInvariantError reports a violated framework-internal invariant. These
// signal a bug in the upstream graph-resolution stage and abort generation
// for the current component.
func NewInvariantError(component, format string, args ...interface{}) *GeneratorError {
	return &GeneratorError{
		Type:      ErrorTypeInvariant,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
}

// NewManifestError reports a malformed or inconsistent manifest
func NewManifestError(format string, args ...interface{}) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeManifest,
		Message: fmt.Sprintf(format, args...),
	}
}
