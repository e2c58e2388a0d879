package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/service"
)

// ServerContext holds the shared state for a running server process.
// Both the MCP adapter and the REST adapter receive one and route all
// upstream work through the service it carries.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	svc      *service.Service
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context wrapping the given service.
func NewServerContext(ctx context.Context, svc *service.Service, metrics *instrumentation.Metrics, logger *slog.Logger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Service returns the integration service.
func (sc *ServerContext) Service() *service.Service {
	return sc.svc
}

// Metrics returns the metrics recorder. May be nil when instrumentation
// is disabled; all recorder methods tolerate a nil receiver.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Logger returns the structured logger for this server.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Shutdown marks the server as shutting down and cancels its context.
func (sc *ServerContext) Shutdown() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.shutdown {
		sc.shutdown = true
		sc.cancel()
	}
}

// IsShuttingDown returns true if the server is in the process of shutting down.
func (sc *ServerContext) IsShuttingDown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}
