package usecase

import (
	"context"

	"gtd-capture/internal/extraction"
	"gtd-capture/pkg/gcalendar"
)

// trySchedule creates an all-day calendar event for every dated action.
// Failures degrade gracefully: the extraction still succeeds, the event
// is just missing.
func (uc *implUseCase) trySchedule(ctx context.Context, actions []extraction.Action) []extraction.ScheduledEvent {
	if uc.calendar == nil {
		return nil
	}

	var events []extraction.ScheduledEvent
	for _, a := range actions {
		date := scheduleDate(a)
		if date == "" {
			continue
		}

		event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:  uc.cfg.CalendarID,
			Summary:     a.Description,
			Description: "Captured action (" + string(a.Kind) + ")",
			AllDayDate:  date,
			Timezone:    uc.cfg.Timezone,
		})
		if err != nil {
			uc.l.Warnf(ctx, "trySchedule: event creation failed for %q (non-fatal): %v", a.Description, err)
			continue
		}

		events = append(events, extraction.ScheduledEvent{
			ActionDescription: a.Description,
			EventLink:         event.HtmlLink,
		})
	}
	return events
}

// scheduleDate picks the calendar date for an action: the due date wins,
// then the scheduled date, then the start date.
func scheduleDate(a extraction.Action) string {
	switch {
	case a.DueDate != "":
		return a.DueDate
	case a.ScheduledDate != "":
		return a.ScheduledDate
	case a.StartDate != "":
		return a.StartDate
	}
	return ""
}
