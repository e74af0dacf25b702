package models

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("invalid data")

const validationMessage = "invalid data, please check ID, duration and performance"

// ValidationError is returned for any malformed form input. The message is
// intentionally the same whichever field failed; Fields names them for
// callers that want more detail.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return validationMessage
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Detail joins the failed field names, e.g. "id, performance".
func (e *ValidationError) Detail() string {
	return strings.Join(e.Fields, ", ")
}
