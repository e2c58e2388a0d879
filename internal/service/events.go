package service

import "github.com/teemow/calbridge/internal/calendar"

// BuildEvent assembles a timed calendar event from raw datetime strings,
// attaching the configured timezone label to both endpoints. Datetimes
// are passed to the provider verbatim. Attendees map one-to-one, in
// order, to email entries.
func (s *Service) BuildEvent(title, description, start, end string, attendees []string) *calendar.Event {
	event := &calendar.Event{
		Summary:     title,
		Description: description,
		Start:       &calendar.EventTime{DateTime: start, TimeZone: s.timezone},
		End:         &calendar.EventTime{DateTime: end, TimeZone: s.timezone},
	}
	for _, email := range attendees {
		event.Attendees = append(event.Attendees, calendar.Attendee{Email: email})
	}
	return event
}
