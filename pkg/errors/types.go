package errors

import (
	"fmt"
	"net/http"
)

// NotFoundError names a resource that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError returns a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnresolvedError is a known location without hours for this pass.
// RemoteID is 0 for manual entries.
type UnresolvedError struct {
	Key      string
	RemoteID int
}

func (e *UnresolvedError) Error() string {
	if e.RemoteID == 0 {
		return fmt.Sprintf("location %s: %v", e.Key, ErrUnresolved)
	}
	return fmt.Sprintf("location %s (lid %d): %v", e.Key, e.RemoteID, ErrUnresolved)
}

// Is matches ErrUnresolved.
func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }

// ValidationError is a rejected field value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// NewValidationError returns a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return "validation failed for field " + e.Field + ": " + e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// APIError is a failed call to a remote service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// NewAPIError returns an APIError for an HTTP status.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps 429 to ErrRateLimited and 5xx to ErrUnavailable.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= http.StatusInternalServerError:
		return target == ErrUnavailable
	}
	return false
}

// ConfigError is an unusable configuration.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// NewConfigError returns a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error in " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError is malformed input in Format ("json", "yaml", "html").
type ParseError struct {
	Format  string
	File    string
	Message string
	Err     error
}

// NewParseError returns a ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is a failed file or stream operation.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

// NewIOError returns an IOError carrying err's message.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Message: messageOf(err), Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError is a failed operation on a named resource, e.g.
// "failed to create client: ...".
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

// NewResourceError returns a ResourceError carrying err's message.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: messageOf(err), Err: err}
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, target, e.Message)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
