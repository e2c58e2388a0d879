// Package common provides shared utilities for MCP tool implementations.
package common
