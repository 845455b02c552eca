package optimizer

const (
	// DefaultMaxChars is the payload bound above which optimization kicks in.
	DefaultMaxChars = 5000

	// SafetyMargin is left unused below the bound so the omission note and
	// prompt framing never push the payload back over it.
	SafetyMargin = 200

	// UrgencyBonus is added once per sentence containing an urgency word.
	UrgencyBonus = 25

	// NameBonus is added once per sentence containing a two-capitalized-word
	// name-like pattern.
	NameBonus = 10
)

// actionKeywords is the scoring table. Longer keywords score higher (weight
// is the keyword length), so specific phrases beat generic verbs. This is a
// tunable heuristic, not a contract: tests assert bounded behavior, not
// exact selection.
var actionKeywords = []string{
	"call",
	"email",
	"send",
	"write",
	"review",
	"finish",
	"prepare",
	"schedule",
	"submit",
	"follow up",
	"waiting for",
	"deadline",
	"due",
	"meet",
	"ask",
	"buy",
	"fix",
	"update",
	"check",
	"confirm",
	"book",
	"pay",
	"remind",
	"must",
	"need to",
	"have to",
	"todo",
	"action item",
}

// urgencyWords trigger the flat UrgencyBonus.
var urgencyWords = []string{
	"urgent",
	"asap",
	"immediately",
	"today",
	"tomorrow",
	"critical",
	"overdue",
	"eod",
}
