package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/logging"
	"github.com/teemow/calbridge/internal/resources"
	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/tools/airtable_tools"
	"github.com/teemow/calbridge/internal/tools/calendar_tools"
	"github.com/teemow/calbridge/internal/tools/reminder_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode bool
		transport string
		httpAddr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing calendar and
table tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Configuration comes from the environment: GOOGLE_CALENDAR_TOKEN,
AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(transport, httpAddr, debugMode)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")

	return cmd
}

func runServe(transport, httpAddr string, debugMode bool) error {
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

	// The stdio transport has no port to scrape, so the metrics server
	// only runs alongside streamable HTTP.
	var metricsServer *server.MetricsServer
	if transport != "stdio" {
		metricsServer, err = startMetricsServer(cfg, provider, logger)
		if err != nil {
			return err
		}
		defer stopMetricsServer(metricsServer, logger)
	}

	sc := server.NewServerContext(shutdownCtx, svc, provider.Metrics(), logger)
	defer sc.Shutdown()

	mcpSrv := mcpserver.NewMCPServer("calbridge", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if err := registerAll(mcpSrv, sc); err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, httpAddr, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// registerAll registers all MCP tools and resources
func registerAll(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := calendar_tools.RegisterCalendarTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register calendar tools: %w", err)
	}
	if err := airtable_tools.RegisterAirtableTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register airtable tools: %w", err)
	}
	if err := reminder_tools.RegisterReminderTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register reminder tools: %w", err)
	}
	if err := resources.RegisterResources(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}
	return nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, addr string, logger *slog.Logger) error {
	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		logger.Info("starting mcp server", "transport", "streamable-http", "addr", addr)
		if err := httpServer.Start(addr); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(drainCtx)
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}
