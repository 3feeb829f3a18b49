// Package validate carries the shared required-field validation error used
// by the content creation endpoints.
package validate

import (
	"errors"
	"strings"
)

// Error reports which required fields were absent from a payload.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Missing returns nil when fields is empty, otherwise a *Error naming them.
func Missing(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

// AsError unwraps a *Error, if err is one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}
