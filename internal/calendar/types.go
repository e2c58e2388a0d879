package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// EventTime is a point in time on the provider's wire format. Timed
// events carry DateTime (RFC3339) plus an optional TimeZone label;
// all-day events carry Date (YYYY-MM-DD) instead.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Attendee is an event attendee on the provider's wire format.
type Attendee struct {
	Email string `json:"email"`
}

// Event mirrors the calendar provider's event shape. The HTTP adapter
// accepts and returns this shape directly, so the JSON field names
// follow the provider contract rather than Go conventions.
type Event struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       *EventTime `json:"start,omitempty"`
	End         *EventTime `json:"end,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
	Status      string     `json:"status,omitempty"`
	HTMLLink    string     `json:"htmlLink,omitempty"`
}

// Title returns the event summary, or "Untitled" when the provider
// omitted one. Conflict listings and resource rendering use this.
func (e *Event) Title() string {
	if e == nil || e.Summary == "" {
		return "Untitled"
	}
	return e.Summary
}

// StartTime parses the event's start into a time.Time. All-day events
// resolve to midnight of their date. Returns the zero time when the
// provider sent nothing parseable.
func (e *Event) StartTime() time.Time {
	return e.Start.parse()
}

// EndTime parses the event's end, with the same conventions as StartTime.
func (e *Event) EndTime() time.Time {
	return e.End.parse()
}

func (et *EventTime) parse() time.Time {
	if et == nil {
		return time.Time{}
	}
	if et.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, et.DateTime); err == nil {
			return t
		}
	}
	if et.Date != "" {
		if t, err := time.Parse("2006-01-02", et.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// toGoogle converts an Event to the provider SDK's representation.
func (e *Event) toGoogle() *gcal.Event {
	ev := &gcal.Event{
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
	}
	if e.Start != nil {
		ev.Start = &gcal.EventDateTime{
			DateTime: e.Start.DateTime,
			Date:     e.Start.Date,
			TimeZone: e.Start.TimeZone,
		}
	}
	if e.End != nil {
		ev.End = &gcal.EventDateTime{
			DateTime: e.End.DateTime,
			Date:     e.End.Date,
			TimeZone: e.End.TimeZone,
		}
	}
	for _, att := range e.Attendees {
		ev.Attendees = append(ev.Attendees, &gcal.EventAttendee{Email: att.Email})
	}
	return ev
}

// fromGoogle converts a provider SDK event back to the wire shape.
func fromGoogle(ev *gcal.Event) Event {
	if ev == nil {
		return Event{}
	}
	out := Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Status:      ev.Status,
		HTMLLink:    ev.HtmlLink,
	}
	if ev.Start != nil {
		out.Start = &EventTime{
			DateTime: ev.Start.DateTime,
			Date:     ev.Start.Date,
			TimeZone: ev.Start.TimeZone,
		}
	}
	if ev.End != nil {
		out.End = &EventTime{
			DateTime: ev.End.DateTime,
			Date:     ev.End.Date,
			TimeZone: ev.End.TimeZone,
		}
	}
	for _, att := range ev.Attendees {
		if att != nil {
			out.Attendees = append(out.Attendees, Attendee{Email: att.Email})
		}
	}
	return out
}
