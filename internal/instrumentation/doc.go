// Package instrumentation wires OpenTelemetry metrics for both
// adapters: HTTP request counts and durations, outbound provider call
// outcomes, and MCP tool/resource activity, exported through
// Prometheus by default.
package instrumentation
