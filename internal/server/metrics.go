package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teemow/calbridge/internal/instrumentation"
)

// DefaultMetricsAddr is where the scrape endpoint listens unless
// configured otherwise.
const DefaultMetricsAddr = ":9090"

// DefaultShutdownTimeout bounds graceful drain of the metrics listener.
const DefaultShutdownTimeout = 30 * time.Second

// Timeouts for the scrape listener.
const (
	metricsReadTimeout  = 10 * time.Second
	metricsWriteTimeout = 10 * time.Second
	metricsIdleTimeout  = 60 * time.Second
)

// MetricsServerConfig configures the scrape endpoint.
type MetricsServerConfig struct {
	// Addr to bind, DefaultMetricsAddr when empty.
	Addr string

	// InstrumentationProvider must be enabled; its Prometheus exporter
	// feeds the registry the handler exposes.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer exposes Prometheus metrics on its own port so scrape
// traffic never mixes with the MCP or REST listeners.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
}

// NewMetricsServer builds the scrape endpoint, serving /metrics and a
// /healthz liveness check. An enabled instrumentation provider is
// required.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.Addr == "" {
		config.Addr = DefaultMetricsAddr
	}
	if config.InstrumentationProvider == nil {
		return nil, fmt.Errorf("instrumentation provider is required for metrics server")
	}
	if !config.InstrumentationProvider.Enabled() {
		return nil, fmt.Errorf("instrumentation provider is not enabled")
	}

	mux := http.NewServeMux()
	// The otel Prometheus exporter registers into the default registry,
	// which promhttp.Handler reads.
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &MetricsServer{
		addr: config.Addr,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           mux,
			ReadHeaderTimeout: metricsReadTimeout,
			WriteTimeout:      metricsWriteTimeout,
			IdleTimeout:       metricsIdleTimeout,
		},
	}, nil
}

// Start listens and blocks until Shutdown or a listener error. Run it
// in a goroutine.
func (s *MetricsServer) Start() error {
	slog.Info("starting metrics server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains the listener within the context deadline.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("shutting down metrics server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bind address.
func (s *MetricsServer) Addr() string {
	return s.addr
}
