// Package cmd implements the command-line interface for calbridge.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide tools for AI assistants
//   - web: Start the JSON REST API server
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
