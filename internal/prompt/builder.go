// Package prompt composes the system and user prompts for an extraction
// from lightweight heuristics about the captured text. Everything here is
// pure: same input, same prompts.
package prompt

import (
	"fmt"
	"regexp"

	"gtd-capture/internal/extraction"
)

var (
	timePattern = regexp.MustCompile(`(?i)\b(today|tomorrow|tonight|urgent|urgently|asap|deadline|due|overdue|by (monday|tuesday|wednesday|thursday|friday|saturday|sunday)|next week|end of (day|week|month)|\d{4}-\d{2}-\d{2})\b`)

	peoplePattern = regexp.MustCompile(`(?i)\b(call|phone|email|e-mail|ask|tell|meet|meeting with|discuss|follow up|follow-up|reply|respond|contact|send|remind|ping|waiting (on|for)|delegate)\b`)

	longTermPattern = regexp.MustCompile(`(?i)\b(someday|maybe|eventually|one day|at some point|would be (nice|cool)|consider|think about|long[- ]term|wishlist|dream)\b`)
)

// Build composes the system and user prompts for the given text and
// input-type hint. Detected signal classes each append a fixed guidance
// block to the system prompt; the hint appends a specialization block.
func Build(text string, hint extraction.InputType) (system, user string) {
	system = SystemPromptBase

	if timePattern.MatchString(text) {
		system += TimeGuidance
	}
	if peoplePattern.MatchString(text) {
		system += PeopleGuidance
	}
	if longTermPattern.MatchString(text) {
		system += LongTermGuidance
	}

	switch hint {
	case extraction.InputEmail:
		system += EmailGuidance
	case extraction.InputMeeting:
		system += MeetingGuidance
	case extraction.InputNote:
		system += NoteGuidance
	case extraction.InputGeneral:
		system += GeneralGuidance
	}

	user = fmt.Sprintf(UserPromptTemplate, text)
	return system, user
}

// StrictJSONInstruction is the closing-turn message used to force a
// machine-readable final reply before interpretation.
const StrictJSONInstruction = `Reply with ONLY the final JSON array of action objects. No explanations, no markdown fences, no text before or after the array.`
