package reminder_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
	"github.com/teemow/calbridge/internal/tools/common"
)

// RegisterReminderTools registers the composite reminder tool with the MCP server
func RegisterReminderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createReminderTool := mcp.NewTool("create_reminder",
		mcp.WithDescription("Create a reminder: a 15-minute calendar event plus a pending task due the same day"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Reminder title"),
		),
		mcp.WithString("datetime",
			mcp.Required(),
			mcp.Description("When to be reminded (e.g., '2025-01-15T10:00:00Z')"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes, stored on the task"),
		),
	)

	s.AddTool(createReminderTool, common.InstrumentedToolHandler("create_reminder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateReminder(ctx, request, sc)
		}))

	return nil
}

func handleCreateReminder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	datetime, ok := args["datetime"].(string)
	if !ok || datetime == "" {
		return mcp.NewToolResultError("datetime is required"), nil
	}

	notes := ""
	if notesVal, ok := args["notes"].(string); ok {
		notes = notesVal
	}

	result, err := sc.Service().CreateReminder(ctx, service.ReminderInput{
		Title:    title,
		DateTime: datetime,
		Notes:    notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid datetime: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(renderReminder(title, result)), nil
}

// renderReminder narrates which of the two independent writes succeeded.
func renderReminder(title string, r *service.ReminderResult) string {
	switch {
	case r.CalendarCreated && r.AirtableCreated:
		return fmt.Sprintf("Reminder %q created: calendar event and task are both in place.", title)
	case r.CalendarCreated:
		return fmt.Sprintf("Reminder %q partially created: calendar event is in place, but the task failed: %v", title, r.AirtableErr)
	case r.AirtableCreated:
		return fmt.Sprintf("Reminder %q partially created: task is in place, but the calendar event failed: %v", title, r.CalendarErr)
	default:
		return fmt.Sprintf("Reminder %q failed: calendar event error: %v; task error: %v", title, r.CalendarErr, r.AirtableErr)
	}
}
