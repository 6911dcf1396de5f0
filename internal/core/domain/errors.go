package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required component is not wired.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates a file type no normaliser can handle.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrServiceUnavailable indicates the remote service is not configured,
	// usually because credentials could not be loaded.
	ErrServiceUnavailable = errors.New("remote service unavailable")

	// Input Errors.

	// ErrMissingInput indicates a query was submitted without a loaded PDF or
	// without query text. No remote call is made when it is returned.
	ErrMissingInput = errors.New("missing input")

	// ErrNoDocument indicates no PDF has been loaded into the session.
	ErrNoDocument = fmt.Errorf("%w: no PDF loaded", ErrMissingInput)

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = fmt.Errorf("%w: query is empty", ErrMissingInput)

	// Remote Errors.

	// ErrNoAnswer indicates the service returned no answer text for a query.
	ErrNoAnswer = errors.New("no answer produced")
)

// ServiceError is a failure reported by the remote retrieval or generation
// service. Local validation failures are never wrapped in a ServiceError.
type ServiceError struct {
	// Op names the remote operation, e.g. "create corpus".
	Op string

	// Err is the underlying (possibly classified) error.
	Err error
}

// Error implements error.
func (e *ServiceError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err as a ServiceError for op.
// Returns nil if err is nil.
func NewServiceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Op: op, Err: err}
}

// IsServiceError returns true if err originated from the remote service.
func IsServiceError(err error) bool {
	var serr *ServiceError
	return errors.As(err, &serr)
}

// IsInputError returns true if err is a local input error.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingInput) || errors.Is(err, ErrInvalidInput)
}
