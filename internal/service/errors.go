package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Common service errors. Callers match them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIdentifierRequired is returned by Login when neither a username nor
	// an email was supplied.
	ErrIdentifierRequired = domain.NewValidationError("identifier", "Username or email is required")

	// ErrInvalidCategory is returned when a task references a category the
	// caller does not own.
	ErrInvalidCategory = domain.NewValidationError("category", "Category not found")

	// ErrInvalidPage and ErrInvalidLimit reject non-positive pagination input.
	ErrInvalidPage  = domain.NewValidationError("page", "Page must be a positive integer")
	ErrInvalidLimit = domain.NewValidationError("limit", "Limit must be a positive integer")
)

// ServiceError wraps an unexpected failure with the service and operation
// that hit it. Expected conditions are returned as sentinels instead.
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

// NewServiceError creates a ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
