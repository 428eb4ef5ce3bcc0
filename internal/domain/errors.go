package domain

import (
	"errors"
	"fmt"
)

const (
	loadErrorMessage       = "Failed to load cryptocurrencies"
	validationErrorMessage = "invalid input"
	conversionErrorMessage = "Conversion failed"
)

// ErrStaleResponse returned when a newer request superseded the one that produced the response.
var ErrStaleResponse = errors.New("stale response discarded")

// LoadError catalog fetch failed. Error returns a static user-facing message,
// the cause is available through Unwrap.
type LoadError struct {
	Err error
}

// NewLoadError wraps the cause of a failed catalog load.
func NewLoadError(err error) *LoadError {
	return &LoadError{Err: err}
}

// Error implements the error interface.
func (e *LoadError) Error() string { return loadErrorMessage }

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError user input failed a precondition. No network call was made.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a validation error with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return validationErrorMessage }

// ConversionError price fetch or computation failed after validation.
type ConversionError struct {
	Err error
}

// NewConversionError wraps the cause of a failed conversion.
func NewConversionError(err error) *ConversionError {
	return &ConversionError{Err: err}
}

// Error implements the error interface.
func (e *ConversionError) Error() string { return conversionErrorMessage }

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var target *LoadError
	return errors.As(err, &target)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConversionError reports whether err is or wraps a ConversionError.
func IsConversionError(err error) bool {
	var target *ConversionError
	return errors.As(err, &target)
}

// Describe returns the diagnostic detail behind a domain error.
func Describe(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason
	}
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
