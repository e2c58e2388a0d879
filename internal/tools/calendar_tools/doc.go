// Package calendar_tools provides MCP tools for calendar event creation
// and availability checks.
package calendar_tools
