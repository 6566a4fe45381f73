package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDuplicateCategory  = errors.New("category already exists")
)

// ValidationError reports user-facing input problems, keyed by field.
// Operations returning it never reached a remote collaborator.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records another field problem.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// OrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
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
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation helps callers distinguish between input and infrastructure failures.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// UploadError is the structured failure returned by the image host.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return "image upload failed: " + e.Reason
}
