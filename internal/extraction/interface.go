package extraction

import "context"

// UseCase is the application surface for turning captured text into
// checklist-ready actions, either in one shot or through a refinement
// session.
type UseCase interface {
	// Extract runs the full pipeline on raw text and returns the result
	// together with its formatted checklist lines.
	Extract(ctx context.Context, input ExtractInput) (ExtractOutput, error)

	// StartSession opens a multi-turn refinement session seeded with the
	// given text. No model call is made yet.
	StartSession(ctx context.Context, input ExtractInput) (SessionOutput, error)

	// SendMessage appends a user message to the session thread and returns
	// the assistant reply.
	SendMessage(ctx context.Context, sessionID, message string) (SendOutput, error)

	// FinalizeSession closes the refinement loop and interprets the latest
	// assistant message into actions.
	FinalizeSession(ctx context.Context, sessionID string) (ExtractOutput, error)

	// ResetSession drops a session and its thread.
	ResetSession(ctx context.Context, sessionID string) error
}
