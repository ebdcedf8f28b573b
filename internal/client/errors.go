// ABOUTME: Error taxonomy for remote API failures
// ABOUTME: Classifies transport and HTTP status errors for the command boundary

package client

import (
	"errors"
	"fmt"
)

// ErrorType buckets API failures for the command boundary.
type ErrorType string

const (
	// ErrorTypeNetwork covers failures with no HTTP response at all.
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeUnauthorized covers a missing token or a 401/403 from a
	// protected call. The client surfaces it without redirecting or
	// retrying; clearing the stored token is a separate, configurable step.
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeNotFound covers a 404 on a single-post fetch.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation covers other 4xx responses carrying a message.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeServer covers 5xx responses.
	ErrorTypeServer ErrorType = "server"
)

// APIError is the error returned by every client method that fails.
type APIError struct {
	Type   ErrorType
	Status int // HTTP status, 0 for network failures
	Msg    string

	// serverMsg marks Msg as coming from the response body rather than
	// synthesized client-side. The login path replaces synthesized
	// messages with its own default.
	serverMsg bool
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
	}
	return e.Msg
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeUnauthorized
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeNotFound
}

// classifyStatus maps an HTTP status code to an error type.
func classifyStatus(status int) ErrorType {
	switch {
	case status == 401 || status == 403:
		return ErrorTypeUnauthorized
	case status == 404:
		return ErrorTypeNotFound
	case status >= 500:
		return ErrorTypeServer
	default:
		return ErrorTypeValidation
	}
}
