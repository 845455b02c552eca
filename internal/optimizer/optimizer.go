// Package optimizer bounds oversized captured text before prompting by
// keeping the sentences most likely to contain actionable content. The
// reduction is lossy; sentences carrying explicit dates are always
// retained.
package optimizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	sentencePattern = regexp.MustCompile(`[^.!?\n]+[.!?]?`)

	// Explicit date tokens: ISO dates, 12/31 style, and month-name dates.
	datePattern = regexp.MustCompile(`(?i)\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(/\d{2,4})?|(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.? \d{1,2})\b`)

	namePattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
)

// Stats reports what an optimization pass did.
type Stats struct {
	Optimized     bool
	OriginalChars int
	KeptChars     int
	OmittedChars  int
}

// Optimizer trims oversized inputs down to maxChars.
type Optimizer struct {
	maxChars int
}

// New creates an Optimizer with the given character bound. Non-positive
// bounds fall back to the default.
func New(maxChars int) *Optimizer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Optimizer{maxChars: maxChars}
}

type scoredSentence struct {
	text    string
	order   int
	score   int
	hasDate bool
}

// Optimize returns text unchanged when it fits the bound, otherwise a
// reduced version built from the highest-scoring sentences. It never fails.
func (o *Optimizer) Optimize(text string) (string, Stats) {
	stats := Stats{OriginalChars: len(text)}

	if len(text) <= o.maxChars {
		stats.KeptChars = len(text)
		return text, stats
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		// No sentence boundaries at all; hard cut.
		cut := text[:o.maxChars-SafetyMargin]
		stats.Optimized = true
		stats.KeptChars = len(cut)
		stats.OmittedChars = len(text) - len(cut)
		return cut + omissionNote(stats.OmittedChars), stats
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = scoredSentence{
			text:    s,
			order:   i,
			score:   scoreSentence(s),
			hasDate: datePattern.MatchString(s),
		}
	}

	// Dated sentences first, then by score descending. Equal entries keep
	// their original order so the output stays stable.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].hasDate != scored[j].hasDate {
			return scored[i].hasDate
		}
		return scored[i].score > scored[j].score
	})

	budget := o.maxChars - SafetyMargin
	var kept []scoredSentence
	used := 0
	for _, s := range scored {
		need := len(s.text)
		if used > 0 {
			need++ // joining space
		}
		if used+need > budget && !s.hasDate {
			continue
		}
		kept = append(kept, s)
		used += need
	}

	// Reassemble in original reading order.
	sort.Slice(kept, func(i, j int) bool { return kept[i].order < kept[j].order })

	parts := make([]string, len(kept))
	for i, s := range kept {
		parts[i] = s.text
	}
	result := strings.Join(parts, " ")

	stats.Optimized = true
	stats.KeptChars = len(result)
	stats.OmittedChars = stats.OriginalChars - stats.KeptChars
	if stats.OmittedChars > 0 {
		result += omissionNote(stats.OmittedChars)
	}

	return result, stats
}

func splitSentences(text string) []string {
	raw := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// scoreSentence rates one sentence for actionable content.
func scoreSentence(s string) int {
	lower := strings.ToLower(s)
	score := 0

	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			score += len(kw)
		}
	}
	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			score += UrgencyBonus
			break
		}
	}
	if namePattern.MatchString(s) {
		score += NameBonus
	}

	return score
}

func omissionNote(omitted int) string {
	return fmt.Sprintf("\n[Note: %d characters of lower-priority content were omitted.]", omitted)
}
