package checklist

import (
	"strings"

	"gtd-capture/internal/extraction"
)

// Priority symbols rendered on checklist lines. Normal priority carries
// no symbol.
var prioritySymbols = map[extraction.Priority]string{
	extraction.PriorityHighest: "🔺",
	extraction.PriorityHigh:    "⬆️",
	extraction.PriorityMedium:  "🔼",
	extraction.PriorityLow:     "🔽",
	extraction.PriorityLowest:  "⬇️",
}

// Format serializes an extraction result into checklist lines, one per
// action. A failed result with no actions yields a single line carrying
// the error message.
func Format(res extraction.Result) []string {
	if !res.Success && len(res.Actions) == 0 {
		msg := res.Error
		if msg == "" {
			msg = "extraction failed"
		}
		return []string{CheckboxUnchecked + " Extraction failed: " + msg}
	}

	lines := make([]string, 0, len(res.Actions))
	for _, a := range res.Actions {
		lines = append(lines, FormatAction(a))
	}
	return lines
}

// FormatAction renders one action as a checklist line. Field order is
// fixed: checkbox, description, time estimate tag, due date, scheduled
// date, start date, priority symbol, recurrence, project link, context,
// remaining tags, completion marker. Absent fields are omitted entirely.
func FormatAction(a extraction.Action) string {
	parts := []string{CheckboxUnchecked, a.Description}

	if a.TimeEstimate != "" {
		parts = append(parts, "#"+a.TimeEstimate)
	}
	if a.DueDate != "" {
		parts = append(parts, "📅 "+a.DueDate)
	}
	if a.ScheduledDate != "" {
		parts = append(parts, "⏳ "+a.ScheduledDate)
	}
	if a.StartDate != "" {
		parts = append(parts, "🛫 "+a.StartDate)
	}
	if sym, ok := prioritySymbols[a.Priority]; ok {
		parts = append(parts, sym)
	}
	if a.Recurrence != "" {
		parts = append(parts, "🔁 "+a.Recurrence)
	}
	if a.Project != "" {
		parts = append(parts, "[["+a.Project+"]]")
	}
	if a.Context != "" {
		parts = append(parts, a.Context)
	}
	for _, tag := range a.Tags {
		// Time estimate is already rendered; skip its tag twin.
		if TimeEstimateTag.MatchString(tag) {
			continue
		}
		parts = append(parts, tag)
	}

	parts = append(parts, "🏁 delete")
	return strings.Join(parts, " ")
}
