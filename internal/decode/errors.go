package decode

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMalformedPayload     = errors.New("malformed payload")
)

// ErrorKind is a coarse-grained categorization for decode errors.
type ErrorKind string

const (
	KindMissingField ErrorKind = "missing_field"
	KindMalformed    ErrorKind = "malformed"
)

// FieldError reports why a single record could not be decoded.
// Field holds the wire name and is empty when the whole payload is unusable.
type FieldError struct {
	Op    string
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel belonging to the error's kind. A missing required
// field also makes the payload malformed, so it matches both sentinels.
func (e *FieldError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingRequiredField || target == ErrMalformedPayload
	case KindMalformed:
		return target == ErrMalformedPayload
	}
	return false
}

// IsKind helps callers classify errors without type assertions.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

func missingField(op, field string) *FieldError {
	return &FieldError{
		Op:    op,
		Kind:  KindMissingField,
		Field: field,
		Err:   fmt.Errorf("%s is required", field),
	}
}

// malformed wraps a json error, keeping the offending field when json reports one.
func malformed(op string, err error) *FieldError {
	fe := &FieldError{Op: op, Kind: KindMalformed, Err: err}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		fe.Field = typeErr.Field
	}
	return fe
}

// malformedField reports a required field that arrived with the wrong JSON type
func malformedField(op, field, got string) *FieldError {
	return &FieldError{
		Op:    op,
		Kind:  KindMalformed,
		Field: field,
		Err:   fmt.Errorf("%s must be an object, got %s", field, got),
	}
}
