package validator

import (
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Severity classifies why a submitted value was rejected.
type Severity uint8

const (
	// Invalid means a value was submitted but does not pass validation.
	Invalid Severity = iota
	// NotSet means the field was not part of the submitted data at all.
	NotSet
	// Empty means the field was submitted without a usable value.
	Empty
)

func (s Severity) String() string {
	switch s {
	case NotSet:
		return "not_set"
	case Empty:
		return "empty"
	default:
		return "invalid"
	}
}

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	Severity          Severity
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap maps the severity onto ErrFieldRequired or ErrInvalidValue.
func (e ValidationError) Unwrap() error {
	if e.Severity == Invalid {
		return ErrInvalidValue
	}
	return ErrFieldRequired
}

// NotSetError reports a field missing from the submitted data.
func NotSetError(field string) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        "Field not submitted",
		Severity:       NotSet,
		TranslationKey: "validation.not_set",
	}
}

// EmptyError reports a field submitted without a value.
func EmptyError(field, message string) ValidationError {
	if message == "" {
		message = "No value entered"
	}
	return ValidationError{
		Field:          field,
		Message:        message,
		Severity:       Empty,
		TranslationKey: "validation.empty",
	}
}

// InvalidError reports a field whose value was rejected.
func InvalidError(field, message string) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        message,
		Severity:       Invalid,
		TranslationKey: "validation.invalid",
	}
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// HasSeverity reports whether any error has the given severity.
func (ve ValidationErrors) HasSeverity(s Severity) bool {
	for _, err := range ve {
		if err.Severity == s {
			return true
		}
	}
	return false
}

// Fields lists the fields with errors in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Unwrap exposes ErrValidationFailed and every collected error to errors.Is.
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(ve)+1)
	errs = append(errs, ErrValidationFailed)
	for _, err := range ve {
		errs = append(errs, err)
	}
	return errs
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// First executes rules in order and returns the error of the first rule
// that fails, or nil.
func First(rules ...Rule) *ValidationError {
	for _, rule := range rules {
		if !rule.Check() {
			err := rule.Error
			return &err
		}
	}
	return nil
}
