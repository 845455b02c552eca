package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"gtd-capture/internal/checklist"
	"gtd-capture/internal/conversation"
	"gtd-capture/internal/extraction"
)

// session is one live refinement conversation. The mutex serializes
// Send/Finalize: the thread is strictly ordered and concurrent calls on
// the same session would interleave its mutations.
type session struct {
	id   string
	mu   sync.Mutex
	conv *conversation.Manager
}

type sessionStore struct {
	lru *expirable.LRU[string, *session]
}

func newSessionStore(maxSessions int, ttl time.Duration) *sessionStore {
	return &sessionStore{
		lru: expirable.NewLRU[string, *session](maxSessions, nil, ttl),
	}
}

func (s *sessionStore) get(id string) (*session, bool) { return s.lru.Get(id) }
func (s *sessionStore) put(sess *session)              { s.lru.Add(sess.id, sess) }
func (s *sessionStore) remove(id string)               { s.lru.Remove(id) }

// StartSession opens a refinement session seeded with the captured text.
// No model call happens until the first SendMessage or FinalizeSession.
func (uc *implUseCase) StartSession(ctx context.Context, input extraction.ExtractInput) (extraction.SessionOutput, error) {
	raw := strings.TrimSpace(input.RawText)
	if raw == "" {
		return extraction.SessionOutput{}, extraction.ErrEmptyInput
	}

	hint := input.InputType
	if hint == "" {
		hint = extraction.InputGeneral
	}

	text, stats := uc.optimizer.Optimize(raw)
	if stats.Optimized {
		uc.l.Infof(ctx, "StartSession: input optimized original=%d kept=%d",
			stats.OriginalChars, stats.KeptChars)
	}

	conv := uc.newConversation(input.Strict)
	conv.StartWithIntent(hint, text)

	sess := &session{
		id:   uuid.NewString(),
		conv: conv,
	}
	uc.sessions.put(sess)

	uc.l.Infof(ctx, "StartSession: id=%s input_length=%d", sess.id, len(raw))
	return extraction.SessionOutput{
		SessionID: sess.id,
		Messages:  len(conv.Thread()),
	}, nil
}

// SendMessage runs one refinement turn and returns the assistant reply.
func (uc *implUseCase) SendMessage(ctx context.Context, sessionID, message string) (extraction.SendOutput, error) {
	sess, ok := uc.sessions.get(sessionID)
	if !ok {
		return extraction.SendOutput{}, extraction.ErrSessionNotFound
	}
	if !sess.mu.TryLock() {
		return extraction.SendOutput{}, extraction.ErrSessionBusy
	}
	defer sess.mu.Unlock()

	reply, err := sess.conv.Send(ctx, message)
	if err != nil {
		return extraction.SendOutput{}, err
	}

	return extraction.SendOutput{
		SessionID: sessionID,
		Reply:     reply,
		Messages:  len(sess.conv.Thread()),
	}, nil
}

// FinalizeSession closes the refinement loop and interprets the latest
// assistant message into actions. The session stays alive so the caller
// can keep refining and finalize again.
func (uc *implUseCase) FinalizeSession(ctx context.Context, sessionID string) (extraction.ExtractOutput, error) {
	sess, ok := uc.sessions.get(sessionID)
	if !ok {
		return extraction.ExtractOutput{}, extraction.ErrSessionNotFound
	}
	if !sess.mu.TryLock() {
		return extraction.ExtractOutput{}, extraction.ErrSessionBusy
	}
	defer sess.mu.Unlock()

	start := time.Now()
	result, diags, err := sess.conv.Finalize(ctx)
	if err != nil {
		return extraction.ExtractOutput{}, err
	}
	result.Elapsed = time.Since(start)
	result.OriginalText = sess.conv.SeedText()

	uc.logDiagnostics(ctx, diags)
	uc.l.Infof(ctx, "FinalizeSession: id=%s success=%t actions=%d",
		sessionID, result.Success, len(result.Actions))

	out := extraction.ExtractOutput{
		ID:     sessionID,
		Result: result,
		Lines:  checklist.Format(result),
	}
	if result.Success {
		out.Schedule = uc.trySchedule(ctx, result.Actions)
	}
	return out, nil
}

// ResetSession drops the session thread and removes it from the store.
func (uc *implUseCase) ResetSession(ctx context.Context, sessionID string) error {
	sess, ok := uc.sessions.get(sessionID)
	if !ok {
		return extraction.ErrSessionNotFound
	}
	if !sess.mu.TryLock() {
		return extraction.ErrSessionBusy
	}
	defer sess.mu.Unlock()

	sess.conv.Reset()
	uc.sessions.remove(sessionID)
	uc.l.Infof(ctx, "ResetSession: id=%s", sessionID)
	return nil
}
