package resources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/server"
)

// RegisterResources registers the fixed calendar and table resources
// with the MCP server.
func RegisterResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	todayResource := mcp.NewResource(
		"calendar://today",
		"Today's Events",
		mcp.WithResourceDescription("Calendar events scheduled for today"),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(todayResource, instrumentedReader("calendar://today", sc, handleTodayEvents))

	weekResource := mcp.NewResource(
		"calendar://week",
		"This Week's Events",
		mcp.WithResourceDescription("Calendar events for the next 7 days"),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(weekResource, instrumentedReader("calendar://week", sc, handleWeekEvents))

	tasksResource := mcp.NewResource(
		"table://tasks",
		"Tasks",
		mcp.WithResourceDescription("All records in the tasks table"),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(tasksResource, instrumentedReader("table://tasks", sc, handleTasks))

	contactsResource := mcp.NewResource(
		"table://contacts",
		"Contacts",
		mcp.WithResourceDescription("All records in the contacts table"),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(contactsResource, instrumentedReader("table://contacts", sc, handleContacts))

	return nil
}

type readHandler func(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error)

// instrumentedReader wraps a read handler with resource read metrics.
func instrumentedReader(uri string, sc *server.ServerContext, handler readHandler) func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		contents, err := handler(ctx, request, sc)

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		sc.Metrics().RecordResourceRead(ctx, uri, status)

		return contents, err
	}
}

func handleTodayEvents(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	svc := sc.Service()

	loc, err := time.LoadLocation(svc.Timezone())
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, loc)

	events, err := svc.ListEvents(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's events: %w", err)
	}

	return textContents(request, renderEvents(events, "No events scheduled for today.")), nil
}

func handleWeekEvents(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	now := time.Now().UTC()

	events, err := sc.Service().ListEvents(ctx, now, now.Add(7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list this week's events: %w", err)
	}

	return textContents(request, renderEvents(events, "No events scheduled for the next 7 days.")), nil
}

func handleTasks(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	svc := sc.Service()

	records, err := svc.ListRecords(ctx, svc.TasksTable(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(records) == 0 {
		return textContents(request, "No tasks found."), nil
	}

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "- %s (Status: %s, Due: %s)\n",
			r.StringField("Name"), r.StringField("Status"), r.StringField("Due Date"))
	}
	return textContents(request, b.String()), nil
}

func handleContacts(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	svc := sc.Service()

	records, err := svc.ListRecords(ctx, svc.ContactsTable(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(records) == 0 {
		return textContents(request, "No contacts found."), nil
	}

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "- %s: %s, %s\n",
			r.StringField("Name"), r.StringField("Email"), r.StringField("Phone"))
	}
	return textContents(request, b.String()), nil
}

// renderEvents renders one line per event, or the empty sentence.
func renderEvents(events []calendar.Event, empty string) string {
	if len(events) == 0 {
		return empty
	}

	var b strings.Builder
	for i := range events {
		fmt.Fprintf(&b, "- %s: %s\n", startLabel(&events[i]), events[i].Title())
	}
	return b.String()
}

// startLabel prefers the timed start, falling back to the all-day date.
func startLabel(e *calendar.Event) string {
	if e.Start == nil {
		return ""
	}
	if e.Start.DateTime != "" {
		return e.Start.DateTime
	}
	return e.Start.Date
}

func textContents(request mcp.ReadResourceRequest, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}
