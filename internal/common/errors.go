package common

import (
	"errors"
	"strings"
)

// Business logic errors
var (
	ErrForbidden = errors.New("forbidden")

	// Catalog errors
	ErrKanjiNotFound     = errors.New("kanji not found")
	ErrUserKanjiNotFound = errors.New("user kanji not found")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError a single field-level validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level messages for a rejected write
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for one field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
