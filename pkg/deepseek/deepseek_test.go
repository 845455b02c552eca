package deepseek_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gtd-capture/pkg/deepseek"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *deepseek.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := deepseek.New(deepseek.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGenerateContent(t *testing.T) {
	var gotBody struct {
		Model    string             `json:"model"`
		Messages []deepseek.Message `json:"messages"`
		Stop     []string           `json:"stop"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "extracted"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28}
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), &deepseek.Request{
		System:   "You extract actions.",
		Messages: []deepseek.Message{{Role: "user", Content: "Call John"}},
		Stop:     []string{"```"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotBody.Model != deepseek.DefaultModel {
		t.Errorf("unexpected model %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("expected system + user messages, got %+v", gotBody.Messages)
	}
	if len(gotBody.Stop) != 1 {
		t.Errorf("stop sequences not forwarded: %v", gotBody.Stop)
	}

	if resp.Text != "extracted" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Usage.OutputTokens != 8 || resp.Usage.TotalTokens != 28 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
}

func TestGenerateContentNoSystem(t *testing.T) {
	var gotBody struct {
		Messages []deepseek.Message `json:"messages"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})

	if _, err := client.GenerateContent(context.Background(), &deepseek.Request{
		Messages: []deepseek.Message{{Role: "user", Content: "hi"}},
	}); err != nil {
		t.Fatal(err)
	}

	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("empty system prompt must not add a message: %+v", gotBody.Messages)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	})

	_, err := client.GenerateContent(context.Background(), &deepseek.Request{
		Messages: []deepseek.Message{{Role: "user", Content: "hi"}},
	})

	var apiErr *deepseek.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestGenerateContentMissingKey(t *testing.T) {
	client, err := deepseek.New(deepseek.Config{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.GenerateContent(context.Background(), &deepseek.Request{
		Messages: []deepseek.Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, deepseek.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
