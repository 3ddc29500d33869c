package errors

import stdErrors "errors"

// CredentialMissingError is returned when no catalog API key is configured.
type CredentialMissingError struct {
	Provider string
}

func (e *CredentialMissingError) Error() string {
	if e.Provider == "" {
		return "catalog API key is not configured"
	}
	return e.Provider + " API key is not configured"
}

// NewCredentialMissingError creates a CredentialMissingError for provider.
func NewCredentialMissingError(provider string) *CredentialMissingError {
	return &CredentialMissingError{Provider: provider}
}

// IsCredentialMissing reports whether err is a CredentialMissingError.
func IsCredentialMissing(err error) bool {
	var credErr *CredentialMissingError
	return stdErrors.As(err, &credErr)
}
