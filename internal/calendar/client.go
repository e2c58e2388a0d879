package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/calbridge/internal/upstream"
)

const providerName = "calendar"

// Client wraps the Google Calendar service for the primary calendar,
// authenticated with a static bearer token.
type Client struct {
	svc        *gcal.Service
	calendarID string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	calendarID string
}

// WithBaseURL points the client at an alternative API endpoint.
// Tests use this to target an httptest server.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithCalendarID addresses a calendar other than "primary".
func WithCalendarID(id string) Option {
	return func(o *clientOptions) { o.calendarID = id }
}

// NewClient creates a calendar client using the given bearer token.
// The token is read once at startup; there is no refresh flow.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	co := clientOptions{calendarID: "primary"}
	for _, opt := range opts {
		opt(&co)
	}

	clientOpts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
	if co.baseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(co.baseURL))
	}

	svc, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc, calendarID: co.calendarID}, nil
}

// ListEvents lists events between timeMin and timeMax. Recurring
// events are expanded into individual instances and the provider
// orders results by start time; no local re-sort happens.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	result, err := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		TimeMax(timeMax.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", classify(err))
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, fromGoogle(item))
	}
	return events, nil
}

// CreateEvent inserts the event as given and returns the provider's
// created representation.
func (c *Client) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	created, err := c.svc.Events.Insert(c.calendarID, event.toGoogle()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", classify(err))
	}

	out := fromGoogle(created)
	return &out, nil
}

// classify maps an SDK error to the shared upstream taxonomy. Errors
// carrying an HTTP status are classified by status; everything else is
// a transport fault.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return upstream.StatusError(providerName, gerr.Code, err)
	}
	return upstream.TransportError(providerName, err)
}
