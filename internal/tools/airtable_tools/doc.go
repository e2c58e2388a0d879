// Package airtable_tools provides MCP tools for task creation and
// contact search against the configured Airtable base.
package airtable_tools
