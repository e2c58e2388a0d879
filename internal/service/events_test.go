package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvent(t *testing.T) {
	svc := newTestService(&fakeCalendar{}, &fakeStore{})

	event := svc.BuildEvent("Standup", "daily sync",
		"2024-03-01T09:00:00", "2024-03-01T09:15:00",
		[]string{"alice@example.com", "bob@example.com"})

	assert.Equal(t, "Standup", event.Summary)
	assert.Equal(t, "daily sync", event.Description)
	assert.Equal(t, "2024-03-01T09:00:00", event.Start.DateTime)
	assert.Equal(t, "2024-03-01T09:15:00", event.End.DateTime)
	assert.Equal(t, "America/New_York", event.Start.TimeZone)
	assert.Equal(t, "America/New_York", event.End.TimeZone)

	if assert.Len(t, event.Attendees, 2) {
		assert.Equal(t, "alice@example.com", event.Attendees[0].Email)
		assert.Equal(t, "bob@example.com", event.Attendees[1].Email)
	}
}

func TestBuildEventNoAttendees(t *testing.T) {
	svc := newTestService(&fakeCalendar{}, &fakeStore{})

	event := svc.BuildEvent("Focus block", "", "2024-03-01T13:00:00", "2024-03-01T15:00:00", nil)

	assert.Nil(t, event.Attendees)
	assert.Empty(t, event.Description)
}
