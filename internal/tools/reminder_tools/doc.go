// Package reminder_tools provides the composite reminder MCP tool,
// which writes a calendar event and a task in one invocation.
package reminder_tools
