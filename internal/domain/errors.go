package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. The HTTP adapter translates
// these to status codes; no other layer performs translation.
//
// ErrUnauthorized and ErrNotFound are deliberately under-informative:
// a bad password is indistinguishable from an unknown username, and a task
// owned by someone else is indistinguishable from a task that never existed.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
)

// ValidationError provides programmatic access to field-level validation
// failures. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to access verr.Fields for per-field details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
