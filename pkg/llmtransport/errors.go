package llmtransport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrNoTransports indicates the executor was built with an empty strategy.
	ErrNoTransports = errors.New("no transports configured")

	// ErrMissingCredentials indicates a transport has no usable credential.
	ErrMissingCredentials = errors.New("missing credentials")
)

// APIError is a non-2xx HTTP reply from a model endpoint.
type APIError struct {
	Transport  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Transport, e.StatusCode, e.Body)
}

// CredentialError is an authentication failure. It is never retried;
// the executor falls back to the next transport instead.
type CredentialError struct {
	Transport string
	Err       error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: credential error: %v", e.Transport, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// TransportError is raised after a transport exhausts its retry budget.
// Attempts counts every real call made on that transport.
type TransportError struct {
	Transport string
	Attempts  int
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: failed after %d attempt(s): %v", e.Transport, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// retriableStatus holds the HTTP statuses worth retrying.
var retriableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// retriableNames are service-error names some endpoints return in the body
// instead of a meaningful status code.
var retriableNames = []string{
	"throttling",
	"rate limit",
	"service unavailable",
	"internal server error",
	"connection refused",
	"connection reset",
	"broken pipe",
	"timeout",
	"deadline exceeded",
}

// IsRetriable reports whether err is a transient failure that backoff can
// help with. Credential errors are never retriable.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}

	var credErr *CredentialError
	if errors.As(err, &credErr) || errors.Is(err, ErrMissingCredentials) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retriableStatus[apiErr.StatusCode]
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	lower := strings.ToLower(err.Error())
	for _, name := range retriableNames {
		if strings.Contains(lower, name) {
			return true
		}
	}

	return false
}
