// Package logging provides slog-based structured logging with shared
// attribute helpers so log fields stay consistently named across the
// service layer and both adapters.
package logging
