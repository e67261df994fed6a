package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/zen-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidCredentials indicates the email/password pair did not match.
	// Unknown emails and wrong passwords are deliberately indistinguishable.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the referenced user does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates registration with an email already in use.
	// API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email already registered")

	// ErrCheckoutUnavailable indicates the plan cannot be bought through checkout.
	// API layer should map this to HTTP 400 Bad Request.
	ErrCheckoutUnavailable = errors.New("plan not available for checkout")
)

// ServiceError wraps an unexpected failure with the service and operation it came from.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapError returns service sentinels for known store conditions and wraps
// everything else in a ServiceError.
func wrapError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrCheckoutUnavailable):
		return err
	}
	return &ServiceError{Service: service, Op: op, Err: err}
}
