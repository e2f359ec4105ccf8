package common

import "errors"

// Provider error taxonomy. Clients and services wrap these with %w so that
// handlers can map failures to status codes with errors.Is.
var (
	// ErrNotConfigured means a required credential is absent. Never recovered.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrProviderUnavailable covers network failures and non-2xx responses.
	// Callers fall back to synthetic data where a fallback path exists.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited is the provider's explicit throttling signal. Surfaced as 429.
	ErrRateLimited = errors.New("provider rate limit reached")

	// ErrMalformedResponse is an unexpected payload shape. Treated as an empty result.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrValidation marks caller supplied input as missing or invalid.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden means the caller does not own the target record.
	ErrForbidden = errors.New("forbidden")

	// ErrPlanLimit means the caller's plan cap has been reached.
	ErrPlanLimit = errors.New("plan limit reached")

	// ErrConflict means the record being created already exists.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized means the supplied credentials were rejected.
	ErrUnauthorized = errors.New("invalid credentials")
)

// ValidationError carries the user-facing message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
