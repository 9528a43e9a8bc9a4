package vektara

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors raised while constructing a client.
	ErrConfiguration      = errors.New("invalid client configuration")
	ErrCustomerIDRequired = errors.New("customer ID is required")
	ErrOAuthCredsRequired = errors.New("client ID and client secret are required for OAuth2")

	// Argument errors raised before any network call is made.
	ErrValidation          = errors.New("invalid request arguments")
	ErrDuplicatePaths      = errors.New("duplicate file paths in batch")
	ErrLengthMismatch      = errors.New("per-item list length does not match item count")
	ErrUnknownFilterType   = errors.New("unknown filter attribute type")
	ErrUnknownFilterLevel  = errors.New("unknown filter attribute level")
	ErrEmptyUploadSource   = errors.New("upload source resolves to no files")
	ErrContentEmpty        = errors.New("content cannot be empty")

	// Remote interaction errors.
	ErrAuthentication    = errors.New("authentication failed")
	ErrRemote            = errors.New("platform returned an error")
	ErrMalformedResponse = errors.New("malformed platform response")
	ErrJobFailed         = errors.New("platform job failed")
	ErrPollTimeout       = errors.New("job polling exceeded maximum wait")
)

// ConfigurationError reports missing or contradictory credentials detected
// while constructing a client. Never retried.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid client configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

// AuthenticationError reports a failed token exchange. Body carries the raw
// response from the authentication endpoint for diagnosis.
type AuthenticationError struct {
	Body string
	Err  error
}

func (e *AuthenticationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("authentication failed: %s", e.Body)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// RemoteError reports a non-2xx status from the platform. Body is the raw
// response body, surfaced verbatim.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("platform returned status %d: %s", e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemote
}

// MalformedResponseError reports a 2xx response missing expected fields.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed platform response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// ValidationError reports a caller-supplied argument problem detected before
// any HTTP request is issued.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request arguments: %s", e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}
