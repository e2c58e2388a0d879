package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/teemow/calbridge/internal/airtable"
	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/config"
	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/logging"
	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
)

// buildService loads configuration, validates credentials, and wires
// both upstream clients into the integration service. Shared by the
// serve and web commands. The metrics recorder may be nil when
// instrumentation is disabled.
func buildService(ctx context.Context, debug bool, metrics *instrumentation.Metrics) (*service.Service, *config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	// Stdout may carry the MCP stdio transport, so logs go to stderr.
	logger := logging.New(os.Stderr, debug)

	var calOpts []calendar.Option
	if cfg.CalendarBaseURL != "" {
		calOpts = append(calOpts, calendar.WithBaseURL(cfg.CalendarBaseURL))
	}
	cal, err := calendar.NewClient(ctx, cfg.GoogleCalendarToken, calOpts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	store := airtable.NewClient(cfg.AirtableBaseURL, cfg.AirtableAPIKey, cfg.AirtableBaseID)

	svc := service.New(cal, store, service.Options{
		Timezone:      cfg.Timezone,
		TasksTable:    cfg.TasksTable,
		ContactsTable: cfg.ContactsTable,
		Logger:        logger,
		Metrics:       metrics,
	})

	return svc, cfg, logger, nil
}

// startMetricsServer starts the Prometheus endpoint on its own port
// when instrumentation is enabled. Returns nil when metrics are off.
func startMetricsServer(cfg *config.Config, provider *instrumentation.Provider, logger *slog.Logger) (*server.MetricsServer, error) {
	if !cfg.MetricsEnabled || !provider.Enabled() {
		return nil, nil
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    cfg.MetricsAddr,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	go func() {
		if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", logging.Err(err))
		}
	}()

	return metricsServer, nil
}

// stopMetricsServer shuts the metrics listener down, bounded by the
// default shutdown timeout.
func stopMetricsServer(metricsServer *server.MetricsServer, logger *slog.Logger) {
	if metricsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown failed", logging.Err(err))
	}
}

// shutdownTimeout bounds graceful drain of the HTTP listeners.
const shutdownTimeout = 10 * time.Second
