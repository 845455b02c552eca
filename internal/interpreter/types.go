package interpreter

// rawAction is the JSON shape the model is asked to produce. Both "action"
// and "description" are accepted for the description field since models
// drift between the two.
type rawAction struct {
	Type          string   `json:"type"`
	Action        string   `json:"action"`
	Description   string   `json:"description"`
	Context       string   `json:"context"`
	Project       string   `json:"project"`
	DueDate       string   `json:"due_date"`
	ScheduledDate string   `json:"scheduled_date"`
	StartDate     string   `json:"start_date"`
	Priority      string   `json:"priority"`
	Recurrence    string   `json:"recurrence"`
	TimeEstimate  string   `json:"time_estimate"`
	Tags          []string `json:"tags"`
}

// Diagnostic is a non-fatal finding produced during interpretation.
// Interpretation itself never logs; callers decide what to do with these.
type Diagnostic struct {
	Field   string
	Message string
}
