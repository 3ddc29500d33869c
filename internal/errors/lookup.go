package errors

import stdErrors "errors"

// NotFoundError represents a details lookup the catalog reported as missing.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a NotFoundError wrapping the upstream cause.
func NewNotFoundError(resource string, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return stdErrors.As(err, &notFound)
}

// ForbiddenError is returned by the poster relay for URLs outside the allow-list.
type ForbiddenError struct {
	Host string
}

func (e *ForbiddenError) Error() string {
	return "host " + e.Host + " is not allowed"
}

// NewForbiddenError creates a ForbiddenError for host.
func NewForbiddenError(host string) *ForbiddenError {
	return &ForbiddenError{Host: host}
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var forbidden *ForbiddenError
	return stdErrors.As(err, &forbidden)
}
