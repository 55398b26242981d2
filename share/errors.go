// ABOUTME: Typed errors for the Share client
// ABOUTME: Classifies transport, login, payload, and timestamp failures

package share

import "fmt"

// HTTPError wraps a transport-level failure (DNS, connect, TLS, timeout).
// These are surfaced immediately and never retried by the client.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("share: http request failed: %v", e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// LoginError indicates the service rejected the login call.
// Code is the service-provided error code (for example
// "SSO_AuthenticateAccountNotFound" or "SSO_AuthenticatePasswordInvalid"),
// or "unknown" when the failure body could not be parsed.
type LoginError struct {
	Code string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("share: login rejected: %s", e.Code)
}

// DataError indicates the fetch response did not decode into the expected
// shape. ShapeMismatch distinguishes "top-level value is not a JSON array"
// (the service substitutes an error object when the session has expired)
// from a structurally malformed record, which is a permanent payload
// problem. Body carries the raw response text for diagnostics.
type DataError struct {
	Reason        string
	Body          string
	ShapeMismatch bool
}

func (e *DataError) Error() string {
	return fmt.Sprintf("share: undecodable response: %s: %q", e.Reason, e.Body)
}

// DateError indicates a timestamp field did not match the service's
// embedded-epoch pattern or its digits were not a valid number.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("share: unparseable timestamp: %q", e.Value)
}

// FetchError is a generic construction failure with no more specific
// cause, such as a malformed base URL from configuration.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("share: %s: %v", e.Reason, e.Err)
	}
	return "share: " + e.Reason
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
