package schema

import "fmt"

// FieldError reports a field-level validation failure: a missing required
// value, a type mismatch, or a failed transform stage.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// RecordError reports a whole-record validation failure from a before or
// after check.
type RecordError struct {
	Schema string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: %s", e.Schema, e.Reason)
}
