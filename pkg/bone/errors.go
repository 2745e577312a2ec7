package bone

import (
	"errors"

	"github.com/dmitrymomot/bones/pkg/validator"
)

var (
	// ErrInvalidFilter is returned when a client filter value cannot be
	// converted to the type of the bone it targets. The query must not run.
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrUnknownBone   = errors.New("unknown bone")
	ErrInvalidOrder  = errors.New("invalid sort order")
	ErrDuplicateBone = errors.New("bone name already registered")
	ErrTreeLookup    = errors.New("tree repository lookup failed")
)

// Severity classifies a ReadFromClientError.
type Severity = validator.Severity

const (
	SeverityInvalid = validator.Invalid
	SeverityNotSet  = validator.NotSet
	SeverityEmpty   = validator.Empty
)

// ReadFromClientError describes why a submitted value was not accepted.
type ReadFromClientError = validator.ValidationError

// ReadFromClientErrors is the list returned by FromClient. It implements error.
type ReadFromClientErrors = validator.ValidationErrors
