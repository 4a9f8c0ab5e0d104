package domain

import (
	"errors"
	"sort"
	"strings"
)

// Error categories. Every business error returned by usecases and services wraps exactly one of them,
// so transport code can classify failures with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrExternalService   = errors.New("external service error")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrConfiguration     = errors.New("configuration error")
)

// ValidationError carries per-field messages for display next to form inputs.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e when it has at least one field error, nil otherwise.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldError builds a single-field ValidationError.
func FieldError(field, msg string) *ValidationError {
	e := NewValidationError()
	e.Add(field, msg)
	return e
}
