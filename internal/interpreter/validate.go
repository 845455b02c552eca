package interpreter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gtd-capture/internal/extraction"
)

// contextWhitelist is the set of standard GTD contexts. Values outside it
// are kept but flagged.
var contextWhitelist = map[string]bool{
	"@computer": true,
	"@phone":    true,
	"@errands":  true,
	"@home":     true,
	"@office":   true,
	"@anywhere": true,
}

// timeEstimates is the fixed token set for time_estimate.
var timeEstimates = map[string]bool{
	"5m": true, "10m": true, "15m": true, "30m": true, "45m": true,
	"1h": true, "2h": true, "3h": true, "4h": true,
}

// TimeEstimatePattern matches tags that duplicate a time estimate.
var TimeEstimatePattern = regexp.MustCompile(`^#?(\d+)(m|h)$`)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// normalizeContext lowercases and @-prefixes a context value. Non-standard
// contexts are kept with a diagnostic.
func normalizeContext(value string) (string, []Diagnostic) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "", nil
	}
	if !strings.HasPrefix(value, "@") {
		value = "@" + value
	}
	if !contextWhitelist[value] {
		return value, []Diagnostic{{
			Field:   "context",
			Message: fmt.Sprintf("non-standard context %q kept as-is", value),
		}}
	}
	return value, nil
}

// validateDate checks the YYYY-MM-DD format and that the value is a real
// calendar date. Invalid values are cleared, never rejected.
func validateDate(field, value string) (string, []Diagnostic) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !datePattern.MatchString(value) {
		return "", []Diagnostic{{
			Field:   field,
			Message: fmt.Sprintf("invalid date %q cleared (want YYYY-MM-DD)", value),
		}}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", []Diagnostic{{
			Field:   field,
			Message: fmt.Sprintf("impossible calendar date %q cleared", value),
		}}
	}
	return value, nil
}

// normalizePriority coerces unrecognized priorities to normal with a
// diagnostic rather than rejecting the element.
func normalizePriority(value string) (extraction.Priority, []Diagnostic) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return extraction.PriorityNormal, nil
	}
	p := extraction.Priority(value)
	if !p.Valid() {
		return extraction.PriorityNormal, []Diagnostic{{
			Field:   "priority",
			Message: fmt.Sprintf("unrecognized priority %q coerced to normal", value),
		}}
	}
	return p, nil
}

// normalizeTimeEstimate validates against the fixed token set; anything
// else becomes empty.
func normalizeTimeEstimate(value string) (string, []Diagnostic) {
	value = strings.TrimSpace(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "#")))
	if value == "" {
		return "", nil
	}
	if !timeEstimates[value] {
		return "", []Diagnostic{{
			Field:   "time_estimate",
			Message: fmt.Sprintf("unsupported time estimate %q cleared", value),
		}}
	}
	return value, nil
}

// normalizeTags ensures the # prefix, injects the category tag for the
// kind, and guarantees the universal #task tag. Order: model tags first,
// then injected ones.
func normalizeTags(tags []string, kind extraction.Kind) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(tags)+2)

	appendTag := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		if seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	for _, t := range tags {
		appendTag(t)
	}

	switch kind {
	case extraction.KindWaitingFor:
		appendTag("#waiting")
	case extraction.KindSomedayMaybe:
		appendTag("#someday")
	}
	appendTag("#task")

	return out
}
