// Package errors defines the error kinds of libhours. Every typed error maps
// onto a sentinel through Is, so callers branch with errors.Is and read
// details with errors.As.
package errors

import (
	"errors"
)

// New, Is, As, Join and Unwrap re-export the standard helpers so callers
// need a single errors import.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Sentinels.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnavailable   = errors.New("hours service unavailable")
	ErrRateLimited   = errors.New("rate limited")
	ErrTimeout       = errors.New("operation timed out")
	ErrCanceled      = errors.New("operation canceled")

	// ErrUnresolved means a location has no hours data for this pass.
	ErrUnresolved = errors.New("hours data unavailable")
)

// IsNotFound reports an unknown location or resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports a duplicate key or lid.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsValidationError reports invalid configuration or input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsUnresolved reports a location without hours data.
func IsUnresolved(err error) bool { return errors.Is(err, ErrUnresolved) }

// IsRateLimited reports an HTTP 429 from the hours service.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsTimeout reports a request that ran out of time.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// IsCanceled reports a request abandoned by its context.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsUnavailable reports a 5xx from the hours service.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// The Wrap helpers return nil for a nil err so they can wrap a call's
// result directly.

// WrapValidation wraps err as a ValidationError on field.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps err as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps err as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps err as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps err as an APIError from service.
func WrapAPI(service string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Service: service, StatusCode: statusCode, Message: err.Error(), Err: err}
}
