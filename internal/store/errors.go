package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every store implementation. The entity-specific
// errors wrap the generic ones, so callers may match either.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrReadingNotFound = fmt.Errorf("reading %w", ErrNotFound)
	ErrEmailExists     = fmt.Errorf("email %w", ErrDuplicate)
)

// StoreError records which entity and operation failed. It unwraps to the
// underlying cause.
type StoreError struct {
	Entity  string
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s: %s", e.Entity, e.Op, e.Message)
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError.
func NewStoreError(entity, op, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Op: op, Message: message, Err: err}
}
