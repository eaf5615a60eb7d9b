package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. The API layer maps them to status
// codes; callers check them with errors.Is.
var (
	// ErrEmailNotFound means no account is registered under the login email.
	// Maps to 404.
	ErrEmailNotFound = errors.New("email not found")

	// ErrInvalidCredentials means the password did not match. Maps to 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrOwnerNotFound means a planting was created for a user id with no
	// account behind it. Maps to 400.
	ErrOwnerNotFound = errors.New("owner user not found")
)

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError builds a ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}
