package extraction

import "time"

// Kind classifies an extracted item following the GTD triage model.
type Kind string

const (
	KindNextAction   Kind = "next_action"
	KindWaitingFor   Kind = "waiting_for"
	KindSomedayMaybe Kind = "someday_maybe"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNextAction, KindWaitingFor, KindSomedayMaybe:
		return true
	}
	return false
}

// Priority of an extracted action. Unrecognized values are coerced to
// PriorityNormal during interpretation.
type Priority string

const (
	PriorityHighest Priority = "highest"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityNormal  Priority = "normal"
	PriorityLow     Priority = "low"
	PriorityLowest  Priority = "lowest"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHighest, PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow, PriorityLowest:
		return true
	}
	return false
}

// Action is a single schedulable item extracted from captured text.
// Actions are created only by the interpreter and are not mutated afterwards.
type Action struct {
	Kind          Kind
	Description   string
	Context       string // "@phone" style, lowercase
	Project       string
	DueDate       string // YYYY-MM-DD or empty
	ScheduledDate string // YYYY-MM-DD or empty
	StartDate     string // YYYY-MM-DD or empty
	Priority      Priority
	Recurrence    string
	TimeEstimate  string // one of 5m,10m,15m,30m,45m,1h,2h,3h,4h or empty
	Tags          []string
}

// HasTag reports whether the action carries the given normalized tag.
func (a Action) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Usage tracks model token consumption for one extraction.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Result is the outcome of an extraction run. It is always returned,
// never raised: parse failures surface as Success=false plus a synthetic
// manual-review action.
type Result struct {
	Success      bool
	Actions      []Action
	OriginalText string
	Elapsed      time.Duration
	Error        string
	Transport    string
	Model        string
	Usage        Usage
}

// InputType hints at what kind of captured text is being processed.
type InputType string

const (
	InputEmail   InputType = "email"
	InputMeeting InputType = "meeting"
	InputNote    InputType = "note"
	InputGeneral InputType = "general"
)

// ExtractInput is the input for a one-shot extraction.
type ExtractInput struct {
	RawText   string
	InputType InputType
	Strict    bool // force a JSON-only closing turn before interpreting
}

// ExtractOutput carries the extraction result plus its checklist rendering.
type ExtractOutput struct {
	ID       string
	Result   Result
	Lines    []string
	Schedule []ScheduledEvent
	Cached   bool
}

// ScheduledEvent records a calendar event created for a dated action.
type ScheduledEvent struct {
	ActionDescription string
	EventLink         string
}

// SessionOutput describes a refinement session.
type SessionOutput struct {
	SessionID string
	Messages  int
}

// SendOutput is the assistant reply for one refinement turn.
type SendOutput struct {
	SessionID string
	Reply     string
	Messages  int
}
