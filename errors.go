package gelx

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Standard sentinel errors returned by generated code.
var (
	// ErrNoData is returned when a required single fetch produced no row.
	ErrNoData = errors.New("gelx: query returned no data")

	// ErrMissingField is returned by a generated builder when a required
	// field was never set.
	ErrMissingField = errors.New("gelx: missing required field")

	// ErrScalarMismatch is returned when a scalar wrapper is bound to a
	// descriptor of a different catalog type.
	ErrScalarMismatch = errors.New("gelx: scalar type mismatch")

	// ErrInvalidEnum is returned when parsing a string that is not a member
	// of the enumeration.
	ErrInvalidEnum = errors.New("gelx: invalid enum value")
)

// NoDataError represents a required single fetch that found nothing.
type NoDataError struct {
	query string
}

// Error returns the error string.
func (e *NoDataError) Error() string {
	if e.query != "" {
		return fmt.Sprintf("gelx: query returned no data: %s", e.query)
	}
	return ErrNoData.Error()
}

// Is reports whether the target error matches NoDataError.
func (e *NoDataError) Is(err error) bool {
	return err == ErrNoData
}

// NewNoDataError returns a new NoDataError for the given query text.
func NewNoDataError(query string) *NoDataError {
	return &NoDataError{query: query}
}

// IsNoData returns true if the error is a NoDataError.
func IsNoData(err error) bool {
	if err == nil {
		return false
	}
	var e *NoDataError
	return errors.As(err, &e) || errors.Is(err, ErrNoData)
}

// MissingFieldError is returned by Build when a required field is unset.
type MissingFieldError struct {
	Type  string
	Field string
}

// Error returns the error string.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("gelx: %s.%s is required", e.Type, e.Field)
}

// Is reports whether the target error matches MissingFieldError.
func (e *MissingFieldError) Is(err error) bool {
	return err == ErrMissingField
}

// NewMissingFieldError returns a new MissingFieldError.
func NewMissingFieldError(typeName, field string) *MissingFieldError {
	return &MissingFieldError{Type: typeName, Field: field}
}

// IsMissingField returns true if the error is a MissingFieldError.
func IsMissingField(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

// ScalarMismatchError is returned by CheckScalar.
type ScalarMismatchError struct {
	Name     string
	Expected uuid.UUID
	Actual   uuid.UUID
}

// Error returns the error string.
func (e *ScalarMismatchError) Error() string {
	return fmt.Sprintf("gelx: scalar %s expected type id %s, got %s", e.Name, e.Expected, e.Actual)
}

// Is reports whether the target error matches ScalarMismatchError.
func (e *ScalarMismatchError) Is(err error) bool {
	return err == ErrScalarMismatch
}

// InvalidEnumError is returned by generated Parse functions.
type InvalidEnumError struct {
	Enum  string
	Value string
}

// Error returns the error string.
func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("gelx: %q is not a valid %s", e.Value, e.Enum)
}

// Is reports whether the target error matches InvalidEnumError.
func (e *InvalidEnumError) Is(err error) bool {
	return err == ErrInvalidEnum
}

// NewInvalidEnumError returns a new InvalidEnumError.
func NewInvalidEnumError(enum, value string) *InvalidEnumError {
	return &InvalidEnumError{Enum: enum, Value: value}
}
