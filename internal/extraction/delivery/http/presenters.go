package http

import (
	"gtd-capture/internal/checklist"
	"gtd-capture/internal/extraction"
)

// --- Request DTOs ---

type extractReq struct {
	Text      string `json:"text"       binding:"required"`
	InputType string `json:"input_type" binding:"omitempty,oneof=email meeting note general"`
	Strict    bool   `json:"strict"`
}

func (r extractReq) toInput() extraction.ExtractInput {
	return extraction.ExtractInput{
		RawText:   r.Text,
		InputType: extraction.InputType(r.InputType),
		Strict:    r.Strict,
	}
}

type sendReq struct {
	Message string `json:"message" binding:"required"`
}

type checklistUpdateReq struct {
	Content string `json:"content" binding:"required"`
	Match   string `json:"match"   binding:"required"`
	Checked bool   `json:"checked"`
}

type checklistStatsReq struct {
	Content string `json:"content" binding:"required"`
}

// --- Response DTOs ---

type actionResp struct {
	Kind          string   `json:"kind"`
	Description   string   `json:"description"`
	Context       string   `json:"context,omitempty"`
	Project       string   `json:"project,omitempty"`
	DueDate       string   `json:"due_date,omitempty"`
	ScheduledDate string   `json:"scheduled_date,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	Priority      string   `json:"priority"`
	Recurrence    string   `json:"recurrence,omitempty"`
	TimeEstimate  string   `json:"time_estimate,omitempty"`
	Tags          []string `json:"tags"`
}

func newActionResp(a extraction.Action) actionResp {
	return actionResp{
		Kind:          string(a.Kind),
		Description:   a.Description,
		Context:       a.Context,
		Project:       a.Project,
		DueDate:       a.DueDate,
		ScheduledDate: a.ScheduledDate,
		StartDate:     a.StartDate,
		Priority:      string(a.Priority),
		Recurrence:    a.Recurrence,
		TimeEstimate:  a.TimeEstimate,
		Tags:          a.Tags,
	}
}

type scheduledEventResp struct {
	Action    string `json:"action"`
	EventLink string `json:"event_link"`
}

type extractResp struct {
	ID        string               `json:"id"`
	Success   bool                 `json:"success"`
	Error     string               `json:"error,omitempty"`
	Actions   []actionResp         `json:"actions"`
	Lines     []string             `json:"lines"`
	Schedule  []scheduledEventResp `json:"schedule,omitempty"`
	ElapsedMS int64                `json:"elapsed_ms"`
	Transport string               `json:"transport,omitempty"`
	Model     string               `json:"model,omitempty"`
	Cached    bool                 `json:"cached"`
	Usage     usageResp            `json:"usage"`
}

type usageResp struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

func newExtractResp(out extraction.ExtractOutput) extractResp {
	actions := make([]actionResp, len(out.Result.Actions))
	for i, a := range out.Result.Actions {
		actions[i] = newActionResp(a)
	}

	var schedule []scheduledEventResp
	for _, ev := range out.Schedule {
		schedule = append(schedule, scheduledEventResp{
			Action:    ev.ActionDescription,
			EventLink: ev.EventLink,
		})
	}

	return extractResp{
		ID:        out.ID,
		Success:   out.Result.Success,
		Error:     out.Result.Error,
		Actions:   actions,
		Lines:     out.Lines,
		Schedule:  schedule,
		ElapsedMS: out.Result.Elapsed.Milliseconds(),
		Transport: out.Result.Transport,
		Model:     out.Result.Model,
		Cached:    out.Cached,
		Usage: usageResp{
			InputTokens:  out.Result.Usage.InputTokens,
			OutputTokens: out.Result.Usage.OutputTokens,
			TotalTokens:  out.Result.Usage.TotalTokens,
		},
	}
}

type sessionResp struct {
	SessionID string `json:"session_id"`
	Messages  int    `json:"messages"`
}

type sendResp struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Messages  int    `json:"messages"`
}

type checklistStatsResp struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
	Progress  float64 `json:"progress"`
}

func newChecklistStatsResp(s checklist.Stats) checklistStatsResp {
	return checklistStatsResp{
		Total:     s.Total,
		Completed: s.Completed,
		Pending:   s.Pending,
		Progress:  s.Progress,
	}
}

type checklistUpdateResp struct {
	Content string `json:"content"`
	Updated bool   `json:"updated"`
	Count   int    `json:"count"`
}
