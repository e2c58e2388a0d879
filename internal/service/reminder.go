package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teemow/calbridge/internal/airtable"
	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/logging"
)

// reminderDuration is the fixed length of a reminder's calendar block.
const reminderDuration = 15 * time.Minute

// ReminderInput describes a reminder: one calendar event and one task
// record representing the same logical item.
type ReminderInput struct {
	Title    string
	DateTime string
	Notes    string
}

// ReminderResult records the outcome of the two independent writes.
// Partial success is a first-class state: the caller sees which side
// succeeded and which failed, with no rollback of the successful side.
type ReminderResult struct {
	CalendarCreated bool
	AirtableCreated bool
	Event           *calendar.Event
	Task            *airtable.Record
	CalendarErr     error
	AirtableErr     error
}

// CreateReminder writes a "Reminder: <title>" calendar event spanning
// 15 minutes from the given datetime, and a task with status "Pending"
// due on the datetime's date. The two creates are issued sequentially
// and independently; a failure on one side does not stop or undo the
// other.
func (s *Service) CreateReminder(ctx context.Context, in ReminderInput) (*ReminderResult, error) {
	start, err := parseReminderTime(in.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad datetime (want RFC3339, e.g. 2024-01-01T10:00:00Z): %v", ErrInvalidInput, err)
	}

	name := "Reminder: " + in.Title
	event := &calendar.Event{
		Summary:     name,
		Description: in.Notes,
		Start:       &calendar.EventTime{DateTime: in.DateTime, TimeZone: s.timezone},
		End:         &calendar.EventTime{DateTime: start.Add(reminderDuration).UTC().Format(time.RFC3339), TimeZone: s.timezone},
	}

	taskFields := map[string]any{
		"Name":     name,
		"Status":   "Pending",
		"Due Date": datePortion(in.DateTime),
		"Notes":    in.Notes,
	}

	result := &ReminderResult{}

	result.Event, result.CalendarErr = s.CreateEvent(ctx, event)
	result.CalendarCreated = result.CalendarErr == nil

	result.Task, result.AirtableErr = s.CreateRecord(ctx, s.tasksTable, taskFields)
	result.AirtableCreated = result.AirtableErr == nil

	s.logger.Info("reminder processed",
		logging.Operation("create_reminder"),
		logging.Status(reminderStatus(result)))
	return result, nil
}

// FullyCreated reports whether both writes succeeded.
func (r *ReminderResult) FullyCreated() bool {
	return r.CalendarCreated && r.AirtableCreated
}

func reminderStatus(r *ReminderResult) string {
	switch {
	case r.FullyCreated():
		return "both_created"
	case r.CalendarCreated:
		return "calendar_only"
	case r.AirtableCreated:
		return "airtable_only"
	default:
		return "neither_created"
	}
}

// parseReminderTime accepts RFC3339 or a naive timestamp without zone,
// which is treated as UTC.
func parseReminderTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

// datePortion returns everything before the 'T' separator.
func datePortion(datetime string) string {
	if i := strings.Index(datetime, "T"); i >= 0 {
		return datetime[:i]
	}
	return datetime
}
