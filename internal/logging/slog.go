package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyProvider  = "provider"
	KeyTable     = "table"
	KeyTool      = "tool"
	KeyResource  = "resource"
	KeyStatus    = "status"
	KeyKind      = "kind"
	KeyError     = "error"
	KeyDuration  = "duration"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// New creates the process logger. Logs are written as text to w;
// the stdio MCP transport owns stdout, so callers pass stderr there.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Default returns a logger writing to stderr at info level.
func Default() *slog.Logger {
	return New(os.Stderr, false)
}

// Duration returns a slog attribute for an elapsed duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Provider returns a slog attribute for the upstream provider name.
func Provider(p string) slog.Attr {
	return slog.String(KeyProvider, p)
}

// Table returns a slog attribute for the table-store table name.
func Table(table string) slog.Attr {
	return slog.String(KeyTable, table)
}

// Tool returns a slog attribute for the MCP tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Resource returns a slog attribute for the MCP resource URI.
func Resource(uri string) slog.Attr {
	return slog.String(KeyResource, uri)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error. A nil err produces an
// empty group that slog omits from output, so Err(maybeNil) is safe.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a credential for logging.
// Only the length is reported; even partial prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
