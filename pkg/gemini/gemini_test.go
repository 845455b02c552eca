package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gtd-capture/pkg/gemini"
)

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) gemini.IGemini {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := gemini.New(gemini.Config{
		APIKey: "test-key",
		APIURL: srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody struct {
		SystemInstruction *wireContent  `json:"system_instruction"`
		Contents          []wireContent `json:"contents"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "["}, {"text": "]"}]}}],
			"usageMetadata": {"promptTokenCount": 9, "candidatesTokenCount": 2, "totalTokenCount": 11}
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		System: "You extract actions.",
		Messages: []gemini.Message{
			{Role: "user", Content: "Call John"},
			{Role: "assistant", Content: "Noted."},
			{Role: "user", Content: "Finalize."},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasSuffix(gotPath, ":generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotPath, gemini.DefaultModel) {
		t.Errorf("model missing from path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key not sent as query param, got %q", gotKey)
	}

	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "You extract actions." {
		t.Errorf("system instruction not forwarded: %+v", gotBody.SystemInstruction)
	}
	if len(gotBody.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(gotBody.Contents))
	}
	// Gemini names the assistant role "model".
	if gotBody.Contents[1].Role != "model" {
		t.Errorf("assistant role not translated, got %q", gotBody.Contents[1].Role)
	}

	// Candidate parts are concatenated into one reply.
	if resp.Text != "[]" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 9 || resp.Usage.TotalTokens != 11 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
}

func TestGenerateContentNoCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "" {
		t.Errorf("expected empty text, got %q", resp.Text)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	})

	_, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Message{{Role: "user", Content: "hi"}},
	})

	var apiErr *gemini.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestGenerateContentMissingKey(t *testing.T) {
	client, err := gemini.New(gemini.Config{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, gemini.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
