package qwen

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a call is attempted without a credential.
var ErrMissingAPIKey = errors.New("qwen: API key is not configured")

// APIError is a non-2xx reply from the Qwen endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qwen: API error %d: %s", e.StatusCode, e.Body)
}
