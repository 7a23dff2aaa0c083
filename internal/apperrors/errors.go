package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals an id-keyed lookup that matched nothing. Repositories
// return (nil, nil) for plain lookups; this sentinel exists for callers that
// need to wrap the condition into an error chain.
var ErrNotFound = errors.New("record not found")

// ConflictError reports a uniqueness-constraint violation, keyed by the
// offending field. The Errors map follows the {field: [messages]} contract
// the API surfaces on 409 responses.
type ConflictError struct {
	Message string
	Errors  map[string][]string
}

func (e *ConflictError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for field, msgs := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// NewFieldConflict builds a ConflictError for a single offending field.
func NewFieldConflict(field, message string) *ConflictError {
	return &ConflictError{
		Message: "Validation failed",
		Errors:  map[string][]string{field: {message}},
	}
}

// AsConflict unwraps err into a ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
