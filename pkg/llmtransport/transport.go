package llmtransport

import "context"

// Transport delivers one conversation request to a model endpoint.
// Implementations are safe for concurrent use.
type Transport interface {
	// Generate sends a generation request and returns the model reply.
	Generate(ctx context.Context, req *Request) (*Reply, error)

	// Name returns the transport name (e.g., "qwen", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request is a normalized conversation request accepted by every transport.
type Request struct {
	System    string
	Messages  []Message
	Inference *InferenceConfig
}

// Message is one entry of the conversation thread.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// InferenceConfig holds optional generation settings.
type InferenceConfig struct {
	Temperature   float64
	MaxTokens     int
	TopP          float64
	StopSequences []string
}

// Reply is a normalized model reply.
type Reply struct {
	Text      string
	Transport string
	Model     string
	Usage     Usage
}

// Usage tracks token consumption for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
