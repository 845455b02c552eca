// Package checklist serializes extracted actions into checklist markup
// and reads that markup back for progress tracking.
package checklist

import (
	"regexp"
	"strings"
)

const (
	CheckboxUnchecked = `- [ ]`
	CheckboxChecked   = `- [x]`
	// Captures indent, checkbox state, and text:
	// "  - [x] Call John" → ["  ", "x", "Call John"]
	CheckboxPattern = `(?m)^(\s*)- \[([ xX])\] (.+)$`
)

// TimeEstimateTag matches tags that duplicate a rendered time estimate,
// e.g. "#15m" or "#2h".
var TimeEstimateTag = regexp.MustCompile(`^#\d+[mh]$`)

// Service reads and updates checklist markup produced by Format.
type Service interface {
	Parse(content string) []Checkbox
	GetStats(content string) Stats
	Update(input UpdateInput) UpdateOutput
	SetAll(content string, checked bool) string
	IsFullyCompleted(content string) bool
}

type service struct {
	pattern *regexp.Regexp
}

func New() Service {
	return &service{
		pattern: regexp.MustCompile(CheckboxPattern),
	}
}

// stripCode removes fenced and inline code spans so checkbox-looking
// text inside code examples is not counted.
func stripCode(content string) string {
	fenced := regexp.MustCompile("(?s)```.*?```")
	out := fenced.ReplaceAllString(content, "")
	inline := regexp.MustCompile("`[^`]+`")
	return inline.ReplaceAllString(out, "")
}

func (s *service) Parse(content string) []Checkbox {
	matches := s.pattern.FindAllStringSubmatch(stripCode(content), -1)
	boxes := make([]Checkbox, 0, len(matches))
	for i, m := range matches {
		if len(m) != 4 {
			continue
		}
		boxes = append(boxes, Checkbox{
			Line:    i,
			Indent:  m[1],
			Checked: strings.EqualFold(m[2], "x"),
			Text:    strings.TrimSpace(m[3]),
			RawLine: m[0],
		})
	}
	return boxes
}

func (s *service) GetStats(content string) Stats {
	boxes := s.Parse(content)
	total := len(boxes)
	if total == 0 {
		return Stats{}
	}

	completed := 0
	for _, b := range boxes {
		if b.Checked {
			completed++
		}
	}

	return Stats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
		Progress:  float64(completed) / float64(total) * 100,
	}
}

// Update flips the state of every entry whose text contains the match
// fragment, case-insensitively.
func (s *service) Update(input UpdateInput) UpdateOutput {
	if input.Content == "" {
		return UpdateOutput{Content: input.Content}
	}

	lines := strings.Split(input.Content, "\n")
	match := strings.ToLower(strings.TrimSpace(input.Match))
	count := 0

	for i, line := range lines {
		m := s.pattern.FindStringSubmatch(line)
		if len(m) != 4 {
			continue
		}
		if !strings.Contains(strings.ToLower(strings.TrimSpace(m[3])), match) {
			continue
		}

		state := CheckboxUnchecked
		if input.Checked {
			state = CheckboxChecked
		}
		lines[i] = m[1] + state + " " + m[3]
		count++
	}

	return UpdateOutput{
		Content: strings.Join(lines, "\n"),
		Updated: count > 0,
		Count:   count,
	}
}

func (s *service) SetAll(content string, checked bool) string {
	state := CheckboxUnchecked
	if checked {
		state = CheckboxChecked
	}

	return s.pattern.ReplaceAllStringFunc(content, func(line string) string {
		m := s.pattern.FindStringSubmatch(line)
		if len(m) != 4 {
			return line
		}
		return m[1] + state + " " + m[3]
	})
}

func (s *service) IsFullyCompleted(content string) bool {
	boxes := s.Parse(content)
	if len(boxes) == 0 {
		return false
	}
	for _, b := range boxes {
		if !b.Checked {
			return false
		}
	}
	return true
}
