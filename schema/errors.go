package schema

import "fmt"

// InputError is a fatal validation failure for a single record. It names the
// offending record and field; callers must never silently coerce the value.
// In a batch run the affected action is skipped and reported, and the rest
// of the run continues.
type InputError struct {
	RecordID string
	Field    string
	Reason   string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input on record %s, field %s: %s", e.RecordID, e.Field, e.Reason)
}

// NewInputError builds an InputError for the given record and field.
func NewInputError(recordID, field, format string, args ...any) *InputError {
	return &InputError{RecordID: recordID, Field: field, Reason: fmt.Sprintf(format, args...)}
}
