package models

import "fmt"

// ValidationError covers malformed or missing required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateError is a unique-constraint violation on a client code.
type DuplicateError struct {
	Code string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("client code already exists: %s", e.Code)
}

// NotFoundError reports an operation against a nonexistent record or key.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// PersistenceError wraps a failed storage read or write. The in-memory
// mutation it follows is not rolled back.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("persistence failed for %q", e.Key)
	}
	return fmt.Sprintf("persistence failed for %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
