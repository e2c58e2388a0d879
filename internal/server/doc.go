// Package server provides the shared server context used by both the
// MCP and REST adapters, plus a dedicated Prometheus metrics server.
package server
