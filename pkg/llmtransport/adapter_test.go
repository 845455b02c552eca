package llmtransport

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gtd-capture/pkg/qwen"
)

type fakeQwen struct {
	resp *qwen.Response
	err  error
	last *qwen.Request
}

func (f *fakeQwen) GenerateContent(ctx context.Context, req *qwen.Request) (*qwen.Response, error) {
	f.last = req
	return f.resp, f.err
}

func (f *fakeQwen) Model() string { return "qwen-plus" }

func TestAdapterMapsRequestAndReply(t *testing.T) {
	client := &fakeQwen{resp: &qwen.Response{
		Text:  "[]",
		Usage: qwen.Usage{InputTokens: 7, OutputTokens: 3, TotalTokens: 10},
	}}
	a := NewQwenAdapter(client)

	reply, err := a.Generate(context.Background(), &Request{
		System: "sys",
		Messages: []Message{
			{Role: "user", Content: "hello"},
			{Role: "assistant", Content: "hi"},
		},
		Inference: &InferenceConfig{Temperature: 0.2, MaxTokens: 2048},
	})
	if err != nil {
		t.Fatal(err)
	}

	if client.last.System != "sys" {
		t.Errorf("system prompt not forwarded: %q", client.last.System)
	}
	if len(client.last.Messages) != 2 || client.last.Messages[1].Role != "assistant" {
		t.Errorf("messages not forwarded: %+v", client.last.Messages)
	}
	if client.last.Temperature != 0.2 || client.last.MaxTokens != 2048 {
		t.Errorf("inference config not forwarded: %+v", client.last)
	}
	if reply.Text != "[]" || reply.Usage.TotalTokens != 10 {
		t.Errorf("unexpected reply %+v", reply)
	}
	if a.Name() != "qwen" || a.Model() != "qwen-plus" {
		t.Errorf("unexpected identity %q %q", a.Name(), a.Model())
	}
}

func TestAdapterTranslatesMissingKey(t *testing.T) {
	a := NewQwenAdapter(&fakeQwen{err: qwen.ErrMissingAPIKey})

	_, err := a.Generate(context.Background(), &Request{})

	var credErr *CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected *CredentialError, got %v", err)
	}
	if credErr.Transport != "qwen" {
		t.Errorf("unexpected transport %q", credErr.Transport)
	}
	if !errors.Is(err, ErrMissingCredentials) {
		t.Error("missing key must unwrap to ErrMissingCredentials")
	}
}

func TestAdapterTranslatesAuthStatus(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		a := NewQwenAdapter(&fakeQwen{err: &qwen.APIError{StatusCode: code, Body: "denied"}})

		_, err := a.Generate(context.Background(), &Request{})

		var credErr *CredentialError
		if !errors.As(err, &credErr) {
			t.Errorf("status %d: expected *CredentialError, got %v", code, err)
		}
	}
}

func TestAdapterTranslatesAPIError(t *testing.T) {
	a := NewQwenAdapter(&fakeQwen{err: &qwen.APIError{StatusCode: 503, Body: "overloaded"}})

	_, err := a.Generate(context.Background(), &Request{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 503 || apiErr.Transport != "qwen" {
		t.Errorf("unexpected api error %+v", apiErr)
	}
	if !IsRetriable(err) {
		t.Error("a 503 must be retriable")
	}
}

func TestAdapterPassesUnknownErrors(t *testing.T) {
	boom := errors.New("connection reset")
	a := NewQwenAdapter(&fakeQwen{err: boom})

	_, err := a.Generate(context.Background(), &Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("unknown errors must pass through, got %v", err)
	}
}
