// Package conversation owns the ordered message thread of one extraction
// and the sequencing of single-shot vs. multi-turn refinement. A Manager
// instance is NOT safe for concurrent Send/Finalize calls; callers
// serialize access (the use case layer holds one mutex per session).
package conversation

import (
	"context"
	"strings"

	"gtd-capture/internal/extraction"
	"gtd-capture/internal/interpreter"
	"gtd-capture/internal/prompt"
	"gtd-capture/pkg/llmtransport"
	"gtd-capture/pkg/log"
)

// Sender delivers one conversation request. *llmtransport.Executor
// satisfies it; tests substitute fakes.
type Sender interface {
	Do(ctx context.Context, req *llmtransport.Request) (*llmtransport.Reply, error)
}

// Config tunes a conversation.
type Config struct {
	// StrictJSON adds a closing turn demanding a JSON-only reply before
	// finalizing.
	StrictJSON bool
	Inference  *llmtransport.InferenceConfig
}

// Manager holds the system prompt and the append-only thread. It starts
// Idle; seeding a system prompt makes it Active; Reset returns it to Idle.
type Manager struct {
	sender Sender
	cfg    Config
	l      log.Logger

	system   string
	seedText string
	thread   []llmtransport.Message

	usage     extraction.Usage
	transport string
	model     string
}

// New creates an idle Manager.
func New(sender Sender, cfg Config, l log.Logger) *Manager {
	return &Manager{
		sender: sender,
		cfg:    cfg,
		l:      l,
	}
}

// Active reports whether a system prompt has been seeded.
func (m *Manager) Active() bool {
	return m.system != ""
}

// Start seeds the conversation from raw input with the general hint.
func (m *Manager) Start(text string) {
	m.StartWithIntent(extraction.InputGeneral, text)
}

// StartWithIntent builds the system prompt and the first user message via
// the prompt builder and seeds the thread with exactly that one user
// message. No model call happens here.
func (m *Manager) StartWithIntent(hint extraction.InputType, text string) {
	system, user := prompt.Build(text, hint)
	m.system = system
	m.seedText = text
	m.thread = []llmtransport.Message{{Role: "user", Content: user}}
	m.usage = extraction.Usage{}
}

// Send appends a user turn, calls the model with the full thread, appends
// the assistant reply and returns it. When Idle, the message is treated as
// the seed input instead of being duplicated into the thread. When the
// last thread entry is an unanswered user turn (right after seeding), the
// message is folded into it so the thread keeps alternating
// user/assistant starting with user.
func (m *Manager) Send(ctx context.Context, message string) (string, error) {
	if !m.Active() {
		m.StartWithIntent(extraction.InputGeneral, message)
	} else if message != "" {
		if last := len(m.thread) - 1; last >= 0 && m.thread[last].Role == "user" {
			m.thread[last].Content += "\n\n" + message
		} else {
			m.thread = append(m.thread, llmtransport.Message{Role: "user", Content: message})
		}
	}

	reply, err := m.sender.Do(ctx, &llmtransport.Request{
		System:    m.system,
		Messages:  m.threadCopy(),
		Inference: m.cfg.Inference,
	})
	if err != nil {
		return "", err
	}

	m.thread = append(m.thread, llmtransport.Message{Role: "assistant", Content: reply.Text})
	m.usage.InputTokens += reply.Usage.InputTokens
	m.usage.OutputTokens += reply.Usage.OutputTokens
	m.usage.TotalTokens += reply.Usage.TotalTokens
	m.transport = reply.Transport
	m.model = reply.Model

	return reply.Text, nil
}

// Finalize closes the refinement loop: in strict mode it performs one
// extra Send demanding a JSON-only reply, then interprets the most recent
// assistant message. The transport error (retries exhausted on every
// applicable transport) is the only error surfaced; interpretation
// failures come back inside the result.
func (m *Manager) Finalize(ctx context.Context) (extraction.Result, []interpreter.Diagnostic, error) {
	if m.cfg.StrictJSON {
		if _, err := m.Send(ctx, prompt.StrictJSONInstruction); err != nil {
			return extraction.Result{}, nil, err
		}
	} else if m.lastAssistant() == "" {
		// Nothing to interpret yet; run the pending user turn.
		if _, err := m.Send(ctx, ""); err != nil {
			return extraction.Result{}, nil, err
		}
	}

	result, diags := interpreter.Interpret(m.lastAssistant(), m.seedText)
	result.Usage = m.usage
	result.Transport = m.transport
	result.Model = m.model
	return result, diags, nil
}

// Reset clears the thread and the system prompt, returning to Idle.
func (m *Manager) Reset() {
	m.system = ""
	m.seedText = ""
	m.thread = nil
	m.usage = extraction.Usage{}
	m.transport = ""
	m.model = ""
}

// Thread returns a copy of the message thread.
func (m *Manager) Thread() []llmtransport.Message {
	return m.threadCopy()
}

// SeedText returns the original captured text the conversation was
// seeded with.
func (m *Manager) SeedText() string {
	return m.seedText
}

func (m *Manager) threadCopy() []llmtransport.Message {
	out := make([]llmtransport.Message, len(m.thread))
	copy(out, m.thread)
	return out
}

func (m *Manager) lastAssistant() string {
	for i := len(m.thread) - 1; i >= 0; i-- {
		if m.thread[i].Role == "assistant" {
			return strings.TrimSpace(m.thread[i].Content)
		}
	}
	return ""
}
