package gcalendar

import "time"

// CreateEventRequest is the input for creating a calendar event. When
// AllDayDate is set (YYYY-MM-DD) the event is created as an all-day
// entry and StartTime/EndTime are ignored.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	AllDayDate  string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "America/New_York"
}

// Event is a simplified representation of a calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	AllDayDate  string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}

// ListEventsRequest is the input for listing calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
