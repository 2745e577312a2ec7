package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed matches any ValidationErrors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFieldRequired matches NotSet and Empty errors.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidValue matches Invalid errors.
	ErrInvalidValue = errors.New("invalid value")
)
