package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
)

// Orthography errors.
var (
	// ErrInvalidKey is returned when a stroke spelling or key token is not
	// part of the layout's key alphabet.
	ErrInvalidKey = errors.New("invalid key")
	// ErrDuplicateFragment aborts theory construction: two fragments share a stroke.
	ErrDuplicateFragment = errors.New("duplicate fragment")
	// ErrNoTranslation means some keys of a stroke cannot be covered by any combo.
	ErrNoTranslation = errors.New("no translation")
	// ErrNoSegmentation means a text cannot be split into known word parts.
	ErrNoSegmentation = errors.New("no segmentation")
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
