package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/calbridge/internal/httpapi"
	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/logging"
	"github.com/teemow/calbridge/internal/server"
)

func newWebCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the REST API server",
		Long: `Start the JSON REST API exposing the same calendar and table
operations as the MCP server.

The listen port comes from the PORT environment variable (default 8000).
GOOGLE_CALENDAR_TOKEN, AIRTABLE_API_KEY and AIRTABLE_BASE_ID are
required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeb(debugMode)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runWeb(debugMode bool) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	// The provider comes first so the service can record upstream calls.
	svc, cfg, logger, err := buildService(shutdownCtx, debugMode, provider.Metrics())
	if err != nil {
		_ = provider.Shutdown(shutdownCtx)
		return err
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	metricsServer, err := startMetricsServer(cfg, provider, logger)
	if err != nil {
		return err
	}
	defer stopMetricsServer(metricsServer, logger)

	sc := server.NewServerContext(shutdownCtx, svc, provider.Metrics(), logger)
	defer sc.Shutdown()

	apiServer := httpapi.NewServer(sc, cfg)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		drainCtx, cancelDrain := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelDrain()
		return apiServer.Shutdown(drainCtx)
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}
