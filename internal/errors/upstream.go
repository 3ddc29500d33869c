package errors

import (
	stdErrors "errors"
	"fmt"
)

// UpstreamError represents a terminal failure talking to the catalog API.
// StatusCode is zero when no HTTP response was received (transport failure).
type UpstreamError struct {
	Message    string
	StatusCode int
	Path       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Err)
		}
		return fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	return fmt.Sprintf("%s (HTTP %d, %s)", e.Message, e.StatusCode, e.Path)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before any HTTP status was received.
func (e *UpstreamError) Transport() bool {
	return e.StatusCode == 0
}

// NewUpstreamStatusError creates an UpstreamError for a non-2xx response.
func NewUpstreamStatusError(statusCode int, path string) *UpstreamError {
	var message string
	switch statusCode {
	case 401:
		message = "catalog API rejected the credential"
	case 403:
		message = "catalog API denied access"
	case 404:
		message = "catalog API resource not found"
	case 429:
		message = "catalog API rate limit exceeded"
	default:
		message = "catalog API error"
	}

	return &UpstreamError{
		Message:    message,
		StatusCode: statusCode,
		Path:       path,
	}
}

// NewUpstreamTransportError creates an UpstreamError for a request that never got a response.
func NewUpstreamTransportError(path string, err error) *UpstreamError {
	return &UpstreamError{
		Message: "catalog API unreachable",
		Path:    path,
		Err:     err,
	}
}

// IsUpstreamError checks if err is an UpstreamError
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return stdErrors.As(err, &upstreamErr)
}

// UpstreamStatus returns the HTTP status carried by an UpstreamError in err's chain.
// Zero means there was no UpstreamError or no status was received.
func UpstreamStatus(err error) int {
	var upstreamErr *UpstreamError
	if stdErrors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}
