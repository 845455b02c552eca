package llmtransport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsRetriableStatusCodes(t *testing.T) {
	retriable := []int{429, 500, 502, 503, 504}
	for _, code := range retriable {
		err := &APIError{Transport: "x", StatusCode: code}
		if !IsRetriable(err) {
			t.Errorf("status %d should be retriable", code)
		}
	}

	permanent := []int{400, 401, 403, 404, 422}
	for _, code := range permanent {
		err := &APIError{Transport: "x", StatusCode: code}
		if IsRetriable(err) {
			t.Errorf("status %d should not be retriable", code)
		}
	}
}

func TestIsRetriableCredentialErrors(t *testing.T) {
	if IsRetriable(&CredentialError{Transport: "x", Err: ErrMissingCredentials}) {
		t.Error("credential errors are never retriable")
	}
	if IsRetriable(ErrMissingCredentials) {
		t.Error("missing credentials is never retriable")
	}
	// Even wrapped.
	wrapped := fmt.Errorf("request failed: %w", &CredentialError{Transport: "x", Err: ErrMissingCredentials})
	if IsRetriable(wrapped) {
		t.Error("wrapped credential error is never retriable")
	}
}

func TestIsRetriableTimeouts(t *testing.T) {
	if !IsRetriable(context.DeadlineExceeded) {
		t.Error("deadline exceeded should be retriable")
	}
	if !IsRetriable(fmt.Errorf("call failed: %w", context.DeadlineExceeded)) {
		t.Error("wrapped deadline exceeded should be retriable")
	}
}

func TestIsRetriableErrorNames(t *testing.T) {
	retriable := []string{
		"ThrottlingException: rate exceeded",
		"upstream rate limit hit",
		"Service Unavailable",
		"read tcp: connection reset by peer",
		"dial tcp: connection refused",
		"write: broken pipe",
		"request timeout after 30s",
	}
	for _, msg := range retriable {
		if !IsRetriable(errors.New(msg)) {
			t.Errorf("%q should be retriable", msg)
		}
	}

	permanent := []string{
		"invalid request body",
		"model not found",
		"content policy violation",
	}
	for _, msg := range permanent {
		if IsRetriable(errors.New(msg)) {
			t.Errorf("%q should not be retriable", msg)
		}
	}
}

func TestIsRetriableNil(t *testing.T) {
	if IsRetriable(nil) {
		t.Error("nil is not retriable")
	}
}

func TestTransportErrorMessageAndUnwrap(t *testing.T) {
	cause := &APIError{Transport: "qwen", StatusCode: http.StatusServiceUnavailable, Body: "busy"}
	err := &TransportError{Transport: "qwen", Attempts: 4, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("TransportError must unwrap to its cause")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
		t.Error("errors.As through TransportError should reach the APIError")
	}
}
