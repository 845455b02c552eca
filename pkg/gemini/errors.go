package gemini

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a call is attempted without a credential.
var ErrMissingAPIKey = errors.New("gemini: API key is not configured")

// APIError is a non-2xx reply from the Gemini endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}
