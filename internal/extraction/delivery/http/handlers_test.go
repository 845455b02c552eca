package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gtd-capture/internal/checklist"
	"gtd-capture/internal/extraction"
	extractionHTTP "gtd-capture/internal/extraction/delivery/http"
	"gtd-capture/internal/middleware"
	"gtd-capture/pkg/llmtransport"
	"gtd-capture/pkg/log"
)

type mockUseCase struct {
	extractOut  extraction.ExtractOutput
	sessionOut  extraction.SessionOutput
	sendOut     extraction.SendOutput
	err         error
	lastInput   extraction.ExtractInput
	lastSession string
	lastMessage string
	resetCalled bool
}

func (m *mockUseCase) Extract(ctx context.Context, input extraction.ExtractInput) (extraction.ExtractOutput, error) {
	m.lastInput = input
	return m.extractOut, m.err
}

func (m *mockUseCase) StartSession(ctx context.Context, input extraction.ExtractInput) (extraction.SessionOutput, error) {
	m.lastInput = input
	return m.sessionOut, m.err
}

func (m *mockUseCase) SendMessage(ctx context.Context, sessionID, message string) (extraction.SendOutput, error) {
	m.lastSession = sessionID
	m.lastMessage = message
	return m.sendOut, m.err
}

func (m *mockUseCase) FinalizeSession(ctx context.Context, sessionID string) (extraction.ExtractOutput, error) {
	m.lastSession = sessionID
	return m.extractOut, m.err
}

func (m *mockUseCase) ResetSession(ctx context.Context, sessionID string) error {
	m.lastSession = sessionID
	m.resetCalled = true
	return m.err
}

func newRouter(uc extraction.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()

	r := gin.New()
	h := extractionHTTP.New(l, uc, checklist.New())
	extractionHTTP.RegisterRoutes(r.Group("/api/v1"), h, middleware.New(l, 0))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		ErrorCode int             `json:"error_code"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	if envelope.ErrorCode != 0 {
		t.Fatalf("unexpected error_code %d: %s", envelope.ErrorCode, envelope.Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func TestExtractHandler(t *testing.T) {
	uc := &mockUseCase{
		extractOut: extraction.ExtractOutput{
			ID: "abc-123",
			Result: extraction.Result{
				Success: true,
				Actions: []extraction.Action{{
					Kind:        extraction.KindNextAction,
					Description: "Call John about budget",
					Context:     "@phone",
					DueDate:     "2024-01-12",
					Priority:    extraction.PriorityNormal,
					Tags:        []string{"#task"},
				}},
				Transport: "deepseek",
				Model:     "deepseek-chat",
			},
			Lines: []string{"- [ ] Call John about budget 📅 2024-01-12 @phone #task 🏁 delete"},
		},
	}
	r := newRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/extractions", gin.H{
		"text":       "Call John about the budget by Friday",
		"input_type": "note",
		"strict":     true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if uc.lastInput.RawText != "Call John about the budget by Friday" {
		t.Errorf("raw text not forwarded: %q", uc.lastInput.RawText)
	}
	if uc.lastInput.InputType != extraction.InputNote {
		t.Errorf("input type not forwarded: %q", uc.lastInput.InputType)
	}
	if !uc.lastInput.Strict {
		t.Error("strict flag not forwarded")
	}

	var resp struct {
		ID      string   `json:"id"`
		Success bool     `json:"success"`
		Lines   []string `json:"lines"`
	}
	decodeData(t, w, &resp)
	if resp.ID != "abc-123" || !resp.Success {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Lines) != 1 {
		t.Errorf("expected 1 line, got %v", resp.Lines)
	}
}

func TestExtractHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{"missing text", gin.H{"input_type": "note"}},
		{"bad input type", gin.H{"text": "hello", "input_type": "voicemail"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&mockUseCase{})
			w := doJSON(t, r, http.MethodPost, "/api/v1/extractions", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestExtractHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"empty input", extraction.ErrEmptyInput, http.StatusBadRequest},
		{"transport exhausted", &llmtransport.TransportError{Transport: "deepseek", Attempts: 3, Err: errors.New("status 503")}, http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&mockUseCase{err: tc.err})
			w := doJSON(t, r, http.MethodPost, "/api/v1/extractions", gin.H{"text": "anything"})
			if w.Code != tc.code {
				t.Errorf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestSessionHandlers(t *testing.T) {
	uc := &mockUseCase{
		sessionOut: extraction.SessionOutput{SessionID: "sess-1", Messages: 1},
		sendOut:    extraction.SendOutput{SessionID: "sess-1", Reply: "noted", Messages: 2},
	}
	r := newRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{"text": "capture this"})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", w.Code)
	}
	var started struct {
		SessionID string `json:"session_id"`
		Messages  int    `json:"messages"`
	}
	decodeData(t, w, &started)
	if started.SessionID != "sess-1" || started.Messages != 1 {
		t.Errorf("unexpected session response %+v", started)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/sess-1/messages", gin.H{"message": "add a due date"})
	if w.Code != http.StatusOK {
		t.Fatalf("send: expected 200, got %d", w.Code)
	}
	if uc.lastSession != "sess-1" || uc.lastMessage != "add a due date" {
		t.Errorf("send args not forwarded: %q %q", uc.lastSession, uc.lastMessage)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/sess-1/finalize", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("finalize: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/sess-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	if !uc.resetCalled {
		t.Error("reset not forwarded to the use case")
	}
}

func TestSessionHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", extraction.ErrSessionNotFound, http.StatusNotFound},
		{"busy", extraction.ErrSessionBusy, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&mockUseCase{err: tc.err})
			w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/gone/finalize", nil)
			if w.Code != tc.code {
				t.Errorf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestChecklistHandlers(t *testing.T) {
	r := newRouter(&mockUseCase{})
	content := "- [x] Email Sarah\n- [ ] Call John about budget\n- [ ] Buy milk"

	w := doJSON(t, r, http.MethodPost, "/api/v1/checklists/stats", gin.H{"content": content})
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}
	var stats struct {
		Total     int     `json:"total"`
		Completed int     `json:"completed"`
		Pending   int     `json:"pending"`
		Progress  float64 `json:"progress"`
	}
	decodeData(t, w, &stats)
	if stats.Total != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/checklists/update", gin.H{
		"content": content,
		"match":   "Call John",
		"checked": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	var update struct {
		Content string `json:"content"`
		Updated bool   `json:"updated"`
		Count   int    `json:"count"`
	}
	decodeData(t, w, &update)
	if !update.Updated || update.Count != 1 {
		t.Errorf("unexpected update %+v", update)
	}
}

func TestChecklistValidation(t *testing.T) {
	r := newRouter(&mockUseCase{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/checklists/update", gin.H{"content": "- [ ] item"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when match is missing, got %d", w.Code)
	}
}
