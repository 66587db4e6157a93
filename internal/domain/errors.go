package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnsupported     = errors.New("unsupported operation")
	ErrDecode          = errors.New("decode error")
	ErrExternalService = errors.New("external service error")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnavailable     = errors.New("unavailable")
)

// MsgRequired is the validation message for mandatory fields.
const MsgRequired = "is required"

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DuplicatePropertyError reports two properties sharing a name within one page.
// It is a validation failure and unwraps to ErrValidation.
type DuplicatePropertyError struct {
	Name string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("%s: duplicate property name %q", ErrValidation.Error(), e.Name)
}

func (e *DuplicatePropertyError) Unwrap() error {
	return ErrValidation
}

// UnsupportedOperationError reports an attempt to write a value this service
// can only read, such as a computed property or an uploaded-file icon.
type UnsupportedOperationError struct {
	Kind string // "property", "icon" or "block"
	Type string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: cannot encode %s of type %q", ErrUnsupported.Error(), e.Kind, e.Type)
}

func (e *UnsupportedOperationError) Unwrap() error {
	return ErrUnsupported
}

// DecodeError reports a response payload whose shape does not match the
// schema of a type this service claims to support.
type DecodeError struct {
	Type   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrDecode.Error(), e.Type, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// ExternalServiceError wraps any failure reported by the document service
// client. It matches both ErrExternalService and the wrapped cause, so
// callers can still test errors.Is(err, ErrNotFound).
type ExternalServiceError struct {
	Operation string
	Err       error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExternalService.Error(), e.Operation, e.Err)
}

func (e *ExternalServiceError) Unwrap() []error {
	return []error{ErrExternalService, e.Err}
}

// Trace renders the wrap chain of err, outermost first, one layer per line.
// It is the diagnostic trace attached to error payloads.
func Trace(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	walkTrace(&b, err, 0)
	return strings.TrimRight(b.String(), "\n")
}

func walkTrace(b *strings.Builder, err error, depth int) {
	fmt.Fprintf(b, "%s%T: %s\n", strings.Repeat("  ", depth), err, err.Error())

	switch u := err.(type) { //nolint:errorlint // walking the chain by hand
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if inner != nil {
				walkTrace(b, inner, depth+1)
			}
		}
	case interface{ Unwrap() error }:
		if inner := u.Unwrap(); inner != nil {
			walkTrace(b, inner, depth+1)
		}
	}
}
