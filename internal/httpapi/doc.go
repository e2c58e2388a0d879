// Package httpapi exposes the integration service as a JSON REST API.
// It mirrors the MCP tool surface: calendar event creation and listing,
// availability checks, table reads and writes, task creation, contact
// search, and the composite reminder flow.
package httpapi
