package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calbridge/internal/upstream"
)

func newFakeProvider(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), "test-token", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client, srv
}

func TestListEventsSetsProviderParameters(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		gotQuery = map[string]string{
			"singleEvents": r.URL.Query().Get("singleEvents"),
			"orderBy":      r.URL.Query().Get("orderBy"),
			"timeMin":      r.URL.Query().Get("timeMin"),
			"timeMax":      r.URL.Query().Get("timeMax"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":      "ev1",
					"summary": "Standup",
					"start":   map[string]string{"dateTime": "2024-01-01T10:00:00Z"},
					"end":     map[string]string{"dateTime": "2024-01-01T10:15:00Z"},
				},
			},
		})
	})

	timeMin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timeMax := timeMin.Add(7 * 24 * time.Hour)

	events, err := client.ListEvents(context.Background(), timeMin, timeMax)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "true", gotQuery["singleEvents"])
	assert.Equal(t, "startTime", gotQuery["orderBy"])
	assert.Equal(t, "2024-01-01T00:00:00Z", gotQuery["timeMin"])
	assert.Equal(t, "2024-01-08T00:00:00Z", gotQuery["timeMax"])

	assert.Equal(t, "Standup", events[0].Summary)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), events[0].StartTime())
}

func TestListEventsClassifiesStatus(t *testing.T) {
	client, _ := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 401, "message": "Invalid Credentials"}}`, http.StatusUnauthorized)
	})

	_, err := client.ListEvents(context.Background(), time.Now(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, upstream.KindUnauthorized, upstream.KindOf(err))
	assert.Equal(t, "calendar", upstream.ProviderOf(err))
}

func TestCreateEventRoundTrip(t *testing.T) {
	var received map[string]any
	client, _ := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "created1",
			"summary": received["summary"],
			"start":   received["start"],
			"end":     received["end"],
		})
	})

	input := &Event{
		Summary:     "Planning",
		Description: "Q1 planning",
		Start:       &EventTime{DateTime: "2024-01-15T14:00:00Z", TimeZone: "America/New_York"},
		End:         &EventTime{DateTime: "2024-01-15T15:00:00Z", TimeZone: "America/New_York"},
		Attendees:   []Attendee{{Email: "a@example.com"}, {Email: "b@example.com"}},
	}

	created, err := client.CreateEvent(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "created1", created.ID)
	assert.Equal(t, "Planning", created.Summary)

	// Attendees must reach the provider one-to-one, in input order.
	attendees, ok := received["attendees"].([]any)
	require.True(t, ok, "attendees missing from outbound event")
	require.Len(t, attendees, 2)
	first := attendees[0].(map[string]any)
	second := attendees[1].(map[string]any)
	assert.Equal(t, "a@example.com", first["email"])
	assert.Equal(t, "b@example.com", second["email"])

	start := received["start"].(map[string]any)
	end := received["end"].(map[string]any)
	assert.Equal(t, "America/New_York", start["timeZone"])
	assert.Equal(t, "America/New_York", end["timeZone"])
}

func TestCreateEventTransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(context.Background(), "tok", WithBaseURL(srv.URL))
	require.NoError(t, err)
	srv.Close()

	_, err = client.CreateEvent(context.Background(), &Event{Summary: "x"})
	require.Error(t, err)
	assert.Equal(t, upstream.KindTransport, upstream.KindOf(err))
}

func TestEventTitle(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
		want  string
	}{
		{"nil event", nil, "Untitled"},
		{"empty summary", &Event{}, "Untitled"},
		{"with summary", &Event{Summary: "Standup"}, "Standup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Title())
		})
	}
}

func TestEventTimeParsing(t *testing.T) {
	allDay := &Event{Start: &EventTime{Date: "2024-03-01"}}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), allDay.StartTime())

	var none *EventTime
	assert.True(t, none.parse().IsZero())

	garbage := &Event{End: &EventTime{DateTime: "not-a-time"}}
	assert.True(t, garbage.EndTime().IsZero())
}
