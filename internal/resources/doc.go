// Package resources provides read-only MCP resources rendering calendar
// events and table records as plain text.
package resources
