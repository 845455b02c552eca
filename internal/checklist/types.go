package checklist

// Checkbox is one checklist entry recovered from emitted markup.
type Checkbox struct {
	Line    int    // position among parsed entries
	Indent  string // leading whitespace
	Checked bool
	Text    string // entry text without the checkbox marker
	RawLine string
}

// Stats summarizes completion progress over a block of checklist markup.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Progress  float64 // 0-100
}

// UpdateInput marks entries matching a text fragment.
type UpdateInput struct {
	Content string // checklist markup
	Match   string // case-insensitive substring of the entry text
	Checked bool
}

// UpdateOutput carries the rewritten markup.
type UpdateOutput struct {
	Content string
	Updated bool
	Count   int
}
