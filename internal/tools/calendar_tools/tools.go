package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
	"github.com/teemow/calbridge/internal/tools/common"
)

// RegisterCalendarTools registers calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create event tool
	createEventTool := mcp.NewTool("create_calendar_event",
		mcp.WithDescription("Create a new calendar event on the primary calendar"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start_datetime",
			mcp.Required(),
			mcp.Description("Start time (e.g., '2025-01-15T14:00:00')"),
		),
		mcp.WithString("end_datetime",
			mcp.Required(),
			mcp.Description("End time (e.g., '2025-01-15T15:00:00')"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithArray("attendees",
			mcp.Description("Attendee email addresses"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandler("create_calendar_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	// Availability check tool
	checkAvailabilityTool := mcp.NewTool("check_availability",
		mcp.WithDescription("Check whether a time slot on the primary calendar is free"),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to check (e.g., '2025-01-15')"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Slot start time (e.g., '14:00')"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Slot duration in minutes"),
		),
	)

	s.AddTool(checkAvailabilityTool, common.InstrumentedToolHandler("check_availability", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckAvailability(ctx, request, sc)
		}))

	return nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	startDatetime, ok := args["start_datetime"].(string)
	if !ok || startDatetime == "" {
		return mcp.NewToolResultError("start_datetime is required"), nil
	}

	endDatetime, ok := args["end_datetime"].(string)
	if !ok || endDatetime == "" {
		return mcp.NewToolResultError("end_datetime is required"), nil
	}

	description := ""
	if descVal, ok := args["description"].(string); ok {
		description = descVal
	}

	var attendees []string
	if attVal, ok := args["attendees"].([]interface{}); ok {
		for _, a := range attVal {
			if email, ok := a.(string); ok && email != "" {
				attendees = append(attendees, email)
			}
		}
	}

	svc := sc.Service()
	event := svc.BuildEvent(title, description, startDatetime, endDatetime, attendees)

	created, err := svc.CreateEvent(ctx, event)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	result := fmt.Sprintf("Event created: %s\n", created.Title())
	result += fmt.Sprintf("ID: %s\n", created.ID)
	result += fmt.Sprintf("Start: %s\n", timeLabel(created.Start))
	result += fmt.Sprintf("End: %s\n", timeLabel(created.End))
	if created.HTMLLink != "" {
		result += fmt.Sprintf("Link: %s\n", created.HTMLLink)
	}
	if len(attendees) > 0 {
		result += fmt.Sprintf("Attendees: %s\n", strings.Join(attendees, ", "))
	}

	return mcp.NewToolResultText(result), nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	date, ok := args["date"].(string)
	if !ok || date == "" {
		return mcp.NewToolResultError("date is required"), nil
	}

	startTime, ok := args["start_time"].(string)
	if !ok || startTime == "" {
		return mcp.NewToolResultError("start_time is required"), nil
	}

	durationVal, ok := args["duration_minutes"].(float64)
	if !ok {
		return mcp.NewToolResultError("duration_minutes is required"), nil
	}

	slot := service.Slot{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: int(durationVal),
	}

	availability, err := sc.Service().CheckAvailability(ctx, slot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check availability: %v", err)), nil
	}

	return mcp.NewToolResultText(renderAvailability(availability)), nil
}

// timeLabel prefers the timed value, falling back to the all-day date.
// Provider echoes may omit either side entirely.
func timeLabel(t *calendar.EventTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

func renderAvailability(a *service.Availability) string {
	if a.Available {
		return fmt.Sprintf("The slot on %s at %s is available.", a.Slot.Date, a.Slot.StartTime)
	}

	result := fmt.Sprintf("The slot on %s at %s is busy. Conflicts:\n", a.Slot.Date, a.Slot.StartTime)
	for _, title := range a.Conflicts {
		result += fmt.Sprintf("- %s\n", title)
	}
	return result
}
