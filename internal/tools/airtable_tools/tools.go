package airtable_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
	"github.com/teemow/calbridge/internal/tools/common"
)

// RegisterAirtableTools registers table-backed tools with the MCP server
func RegisterAirtableTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create task tool
	createTaskTool := mcp.NewTool("create_airtable_task",
		mcp.WithDescription("Create a task record in the tasks table"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name"),
		),
		mcp.WithString("status",
			mcp.Description("Task status (e.g., 'To Do', 'In Progress', 'Done')"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date (e.g., '2025-01-31')"),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority (e.g., 'Low', 'Medium', 'High')"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandler("create_airtable_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	// Contact search tool
	searchContactsTool := mcp.NewTool("search_contacts",
		mcp.WithDescription("Search contacts by name or email (case-insensitive substring match)"),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Text to match against contact names and email addresses"),
		),
	)

	s.AddTool(searchContactsTool, common.InstrumentedToolHandler("search_contacts", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchContacts(ctx, request, sc)
		}))

	return nil
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	in := service.TaskInput{Name: name}
	if statusVal, ok := args["status"].(string); ok {
		in.Status = statusVal
	}
	if dueVal, ok := args["due_date"].(string); ok {
		in.DueDate = dueVal
	}
	if prioVal, ok := args["priority"].(string); ok {
		in.Priority = prioVal
	}
	if notesVal, ok := args["notes"].(string); ok {
		in.Notes = notesVal
	}

	record, err := sc.Service().CreateTask(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
	}

	result := fmt.Sprintf("Task created: %s\n", name)
	result += fmt.Sprintf("Record ID: %s\n", record.ID)
	if in.Status != "" {
		result += fmt.Sprintf("Status: %s\n", in.Status)
	}
	if in.DueDate != "" {
		result += fmt.Sprintf("Due: %s\n", in.DueDate)
	}

	return mcp.NewToolResultText(result), nil
}

func handleSearchContacts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	term, ok := args["search_term"].(string)
	if !ok {
		return mcp.NewToolResultError("search_term is required"), nil
	}

	contacts, err := sc.Service().SearchContacts(ctx, term)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
	}

	if len(contacts) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No contacts matched %q.", term)), nil
	}

	result := fmt.Sprintf("Found %d contacts:\n", len(contacts))
	for _, c := range contacts {
		result += fmt.Sprintf("- %s: %s, %s\n", c.Name, c.Email, c.Phone)
	}

	return mcp.NewToolResultText(result), nil
}
