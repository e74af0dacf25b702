package persistence

import (
	"errors"
	"fmt"
)

var (
	ErrPersistence = errors.New("persistence failure")
	ErrCRLFName    = errors.New("machine name contains CRLF")
)

// PersistenceError reports a failed load or save. Line is the 1-based line
// of the offending row when the failure is a parse error, 0 otherwise.
type PersistenceError struct {
	Op   string
	Path string
	Line int
	Err  error
}

func (e *PersistenceError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// withPath fills in Path on a PersistenceError produced by the codec.
func withPath(err error, op, path string) error {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		cp := *perr
		cp.Op = op
		cp.Path = path
		return &cp
	}
	return &PersistenceError{Op: op, Path: path, Err: err}
}
