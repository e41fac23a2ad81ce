package reminder

import (
	"errors"
	"fmt"
)

var (
	ErrStructuralDefect      = errors.New("structural defect")
	ErrFormat                = errors.New("format error")
	ErrMissingField          = errors.New("missing required field")
	ErrUnsupportedRecurrence = errors.New("unsupported recurrence")
)

// FieldError identifies the field that failed to decode.
type FieldError struct {
	Field string
	Value string
	Kind  error
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: field %q (value %q): %v", e.Kind, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%v: field %q (value %q)", e.Kind, e.Field, e.Value)
}

func (e *FieldError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func formatError(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Kind: ErrFormat, Err: err}
}

func missingField(field string) error {
	return fmt.Errorf("%w: %q", ErrMissingField, field)
}
