package paypal

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrMissingCredentials is returned before any network call when the client
// id or secret is absent from configuration.
var ErrMissingCredentials = errors.New("paypal client id and secret are required")

// ErrGatewayTimeout marks a retry budget exhausted by timeouts, as opposed
// to one exhausted by upstream 5xx/429 responses.
var ErrGatewayTimeout = errors.New("gateway request timed out after repeated attempts")

// ErrRetriesExhausted marks a retry budget exhausted by non-timeout
// transient failures.
var ErrRetriesExhausted = errors.New("maximum retries exceeded")

// APIError is a non-2xx response from the gateway. Status code and raw body
// are kept for server-side diagnostics; they are never shown to end users.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

type apiErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

// Retryable reports whether the upstream status indicates a transient
// condition worth another attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// isTimeout covers both a per-attempt deadline cut by context and the
// http.Client timeout, which surfaces as a net.Error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
