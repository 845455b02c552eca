// Package interpreter turns raw model replies into validated Action
// records. It is tolerant by construction: any malformed, partial, or
// non-JSON reply degrades to a single synthetic manual-review action
// instead of an error. Nothing in this package panics or logs; findings
// come back as diagnostics for the caller to emit.
package interpreter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gtd-capture/internal/extraction"
)

const fallbackPrefix = "Review and manually process: "

// fencedPattern matches a markdown code fence with or without a language
// tag. The first fenced block whose body holds a JSON array wins.
var fencedPattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// Interpret parses a raw model reply into an extraction result. It always
// returns a usable result: on any structural failure the result carries
// Success=false plus one synthetic action pointing back at the original
// text.
func Interpret(raw, originalText string) (extraction.Result, []Diagnostic) {
	payload := extractPayload(raw)

	var rawActions []rawAction
	if err := json.Unmarshal([]byte(payload), &rawActions); err != nil {
		return fallbackResult(originalText, fmt.Sprintf("reply is not a JSON array: %v", err)), nil
	}
	if len(rawActions) == 0 {
		return fallbackResult(originalText, "reply contained an empty action array"), nil
	}

	var diags []Diagnostic
	actions := make([]extraction.Action, 0, len(rawActions))

	for i, ra := range rawActions {
		description := strings.TrimSpace(ra.Action)
		if description == "" {
			description = strings.TrimSpace(ra.Description)
		}
		if description == "" {
			return fallbackResult(originalText,
				fmt.Sprintf("element %d has no action description", i)), nil
		}

		kind := extraction.KindNextAction
		if ra.Type != "" {
			kind = extraction.Kind(strings.TrimSpace(strings.ToLower(ra.Type)))
			if !kind.Valid() {
				return fallbackResult(originalText,
					fmt.Sprintf("element %d has unrecognized type %q", i, ra.Type)), nil
			}
		}

		action := extraction.Action{
			Kind:        kind,
			Description: description,
			Project:     strings.TrimSpace(ra.Project),
			Recurrence:  strings.TrimSpace(ra.Recurrence),
			Tags:        normalizeTags(ra.Tags, kind),
		}

		var d []Diagnostic
		action.Context, d = normalizeContext(ra.Context)
		diags = append(diags, d...)

		action.DueDate, d = validateDate("due_date", ra.DueDate)
		diags = append(diags, d...)
		action.ScheduledDate, d = validateDate("scheduled_date", ra.ScheduledDate)
		diags = append(diags, d...)
		action.StartDate, d = validateDate("start_date", ra.StartDate)
		diags = append(diags, d...)

		action.Priority, d = normalizePriority(ra.Priority)
		diags = append(diags, d...)

		action.TimeEstimate, d = normalizeTimeEstimate(ra.TimeEstimate)
		diags = append(diags, d...)

		actions = append(actions, action)
	}

	return extraction.Result{
		Success:      true,
		Actions:      actions,
		OriginalText: originalText,
	}, diags
}

// extractPayload pulls the JSON array out of the reply: a fenced code
// block when present, otherwise the slice between the outermost brackets,
// otherwise the text as-is.
func extractPayload(raw string) string {
	raw = strings.TrimSpace(raw)

	for _, match := range fencedPattern.FindAllStringSubmatch(raw, -1) {
		body := strings.TrimSpace(match[1])
		if strings.Contains(body, "[") {
			return body
		}
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return strings.TrimSpace(raw[start : end+1])
	}

	return raw
}

// fallbackResult builds the synthetic manual-review outcome used whenever
// structured parsing is abandoned.
func fallbackResult(originalText, reason string) extraction.Result {
	snippet := originalText
	if len(snippet) > 50 {
		snippet = snippet[:50] + "..."
	}

	action := extraction.Action{
		Kind:        extraction.KindNextAction,
		Description: fallbackPrefix + snippet,
		Priority:    extraction.PriorityNormal,
		Tags:        []string{"#manual-review", "#parse-error", "#task"},
	}

	return extraction.Result{
		Success:      false,
		Actions:      []extraction.Action{action},
		OriginalText: originalText,
		Error:        reason,
	}
}
