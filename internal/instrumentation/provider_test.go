package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProviderDisabled(t *testing.T) {
	config := Config{Enabled: false}
	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	if provider.Enabled() {
		t.Error("Expected disabled provider")
	}
	if provider.Metrics() == nil {
		t.Error("Disabled provider must still return a metrics recorder")
	}

	// No-op recorder must be safe to call.
	provider.Metrics().RecordHTTPRequest(context.Background(), "GET", "/health", 200, time.Millisecond)
	provider.Metrics().RecordUpstreamCall(context.Background(), "calendar", "list_events", StatusSuccess, time.Millisecond)
	provider.Metrics().RecordToolInvocation(context.Background(), "create_reminder", StatusError, time.Millisecond)
	provider.Metrics().RecordResourceRead(context.Background(), "calendar://today", StatusSuccess)

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown of disabled provider failed: %v", err)
	}
}

func TestNewProviderStdout(t *testing.T) {
	config := Config{
		ServiceName:     "calbridge-test",
		ServiceVersion:  "test",
		Enabled:         true,
		MetricsExporter: ExporterStdout,
	}

	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	}()

	if !provider.Enabled() {
		t.Error("Expected enabled provider")
	}

	provider.Metrics().RecordToolInvocation(context.Background(), "check_availability", StatusSuccess, 10*time.Millisecond)
}

func TestNewProviderOTLPRequiresEndpoint(t *testing.T) {
	config := Config{
		ServiceName:     "calbridge-test",
		Enabled:         true,
		MetricsExporter: ExporterOTLP,
	}
	_, err := NewProvider(context.Background(), config)
	if err == nil {
		t.Fatal("Expected error for otlp exporter without endpoint")
	}
}

func TestNewProviderUnsupportedExporter(t *testing.T) {
	config := Config{Enabled: true, MetricsExporter: "carrier-pigeon"}
	if _, err := NewProvider(context.Background(), config); err == nil {
		t.Error("Expected error for unsupported exporter")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.ServiceName != "calbridge" {
		t.Errorf("Expected service name calbridge, got %s", config.ServiceName)
	}
	if !config.Enabled {
		t.Error("Expected instrumentation enabled by default")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("Expected prometheus exporter by default, got %s", config.MetricsExporter)
	}
}

func TestDefaultConfigEnvOverride(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", ExporterOTLP)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	config := DefaultConfig()
	if config.Enabled {
		t.Error("Expected instrumentation disabled via env")
	}
	if config.MetricsExporter != ExporterOTLP {
		t.Errorf("Expected otlp exporter via env, got %s", config.MetricsExporter)
	}
	if config.OTLPEndpoint != "collector:4318" {
		t.Errorf("Expected OTLP endpoint from env, got %s", config.OTLPEndpoint)
	}
	if !config.OTLPInsecure {
		t.Error("Expected insecure OTLP via env")
	}
}
