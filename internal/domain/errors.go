package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and the REST layer.
var (
	// ErrNotFound: no lemma, surface form, ledger or daily row for the key.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a unique lemma or surface text lost a concurrent insert.
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	// ErrForbidden: the caller asked for another user's data.
	ErrForbidden = errors.New("forbidden")

	// ErrServiceUnavailable marks a lemmatizer failure that callers recover
	// from by switching to the local rule set.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
