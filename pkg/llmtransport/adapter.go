package llmtransport

import (
	"context"
	"errors"
	"net/http"

	"gtd-capture/pkg/deepseek"
	"gtd-capture/pkg/gemini"
	"gtd-capture/pkg/qwen"
)

// credentialStatus reports whether an HTTP status is an auth failure.
func credentialStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// QwenAdapter adapts pkg/qwen to the Transport interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// Generate implements Transport
func (a *QwenAdapter) Generate(ctx context.Context, req *Request) (*Reply, error) {
	qwenReq := &qwen.Request{
		System:   req.System,
		Messages: make([]qwen.Message, len(req.Messages)),
	}
	for i, m := range req.Messages {
		qwenReq.Messages[i] = qwen.Message{Role: m.Role, Content: m.Content}
	}
	if req.Inference != nil {
		qwenReq.Temperature = req.Inference.Temperature
		qwenReq.TopP = req.Inference.TopP
		qwenReq.MaxTokens = req.Inference.MaxTokens
		qwenReq.Stop = req.Inference.StopSequences
	}

	resp, err := a.client.GenerateContent(ctx, qwenReq)
	if err != nil {
		if errors.Is(err, qwen.ErrMissingAPIKey) {
			return nil, &CredentialError{Transport: a.Name(), Err: ErrMissingCredentials}
		}
		var apiErr *qwen.APIError
		if errors.As(err, &apiErr) {
			if credentialStatus(apiErr.StatusCode) {
				return nil, &CredentialError{Transport: a.Name(), Err: err}
			}
			return nil, &APIError{Transport: a.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}
		return nil, err
	}

	return &Reply{
		Text: resp.Text,
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the transport name
func (a *QwenAdapter) Name() string {
	return "qwen"
}

// Model returns the model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

// DeepSeekAdapter adapts pkg/deepseek to the Transport interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// Generate implements Transport
func (a *DeepSeekAdapter) Generate(ctx context.Context, req *Request) (*Reply, error) {
	dsReq := &deepseek.Request{
		System:   req.System,
		Messages: make([]deepseek.Message, len(req.Messages)),
	}
	for i, m := range req.Messages {
		dsReq.Messages[i] = deepseek.Message{Role: m.Role, Content: m.Content}
	}
	if req.Inference != nil {
		dsReq.Temperature = req.Inference.Temperature
		dsReq.TopP = req.Inference.TopP
		dsReq.MaxTokens = req.Inference.MaxTokens
		dsReq.Stop = req.Inference.StopSequences
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		if errors.Is(err, deepseek.ErrMissingAPIKey) {
			return nil, &CredentialError{Transport: a.Name(), Err: ErrMissingCredentials}
		}
		var apiErr *deepseek.APIError
		if errors.As(err, &apiErr) {
			if credentialStatus(apiErr.StatusCode) {
				return nil, &CredentialError{Transport: a.Name(), Err: err}
			}
			return nil, &APIError{Transport: a.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}
		return nil, err
	}

	return &Reply{
		Text: resp.Text,
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the transport name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to the Transport interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// Generate implements Transport
func (a *GeminiAdapter) Generate(ctx context.Context, req *Request) (*Reply, error) {
	gemReq := &gemini.Request{
		System:   req.System,
		Messages: make([]gemini.Message, len(req.Messages)),
	}
	for i, m := range req.Messages {
		gemReq.Messages[i] = gemini.Message{Role: m.Role, Content: m.Content}
	}
	if req.Inference != nil {
		gemReq.Temperature = req.Inference.Temperature
		gemReq.TopP = req.Inference.TopP
		gemReq.MaxTokens = req.Inference.MaxTokens
		gemReq.Stop = req.Inference.StopSequences
	}

	resp, err := a.client.GenerateContent(ctx, gemReq)
	if err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			return nil, &CredentialError{Transport: a.Name(), Err: ErrMissingCredentials}
		}
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			if credentialStatus(apiErr.StatusCode) {
				return nil, &CredentialError{Transport: a.Name(), Err: err}
			}
			return nil, &APIError{Transport: a.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}
		return nil, err
	}

	return &Reply{
		Text: resp.Text,
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the transport name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns the model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}
