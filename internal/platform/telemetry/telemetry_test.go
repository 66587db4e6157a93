package telemetry_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

// Setup replaces the OpenTelemetry globals, so these tests restore them and
// do not run in parallel.
func restoreGlobals(t *testing.T) {
	t.Helper()
	tp, mp, prop := otel.GetTracerProvider(), otel.GetMeterProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		otel.SetTextMapPropagator(prop)
	})
}

func telemetryConfig(exporter, endpoint string) config.TelemetryConfig {
	return config.TelemetryConfig{
		Enabled:     true,
		Exporter:    exporter,
		Endpoint:    endpoint,
		ServiceName: "notion-page-service",
	}
}

func TestSetup_Disabled(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	p, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Enabled: false, Exporter: "bogus"})

	require.NoError(t, err)
	assert.Nil(t, p.Tracer)
	assert.Nil(t, p.Meter)
	assert.Nil(t, p.Metrics)
	assert.Same(t, before, otel.GetTracerProvider(), "disabled telemetry must not touch the globals")
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	restoreGlobals(t)
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetryConfig(telemetry.ExporterStdout, ""),
		telemetry.WithEnvironment("dev"),
		telemetry.WithStdoutWriter(io.Discard),
	)
	require.NoError(t, err)

	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Meter)
	require.NotNil(t, p.Metrics)
	assert.Same(t, p.Tracer, otel.GetTracerProvider())
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())

	_, span := otel.Tracer("test").Start(ctx, "GET /api/v1/pages/{id}")
	span.End()

	assert.NoError(t, p.Shutdown(ctx))
}

func TestSetup_OTLP(t *testing.T) {
	restoreGlobals(t)
	ctx := context.Background()

	// Exporters connect lazily, so no collector is needed to build them.
	p, err := telemetry.Setup(ctx, telemetryConfig(telemetry.ExporterOTLP, "http://localhost:4318"))
	require.NoError(t, err)
	require.NotNil(t, p.Metrics)

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = p.Shutdown(shutdownCtx)
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		endpoint string
		want     string
	}{
		{name: "unknown exporter", exporter: "zipkin", want: `unsupported exporter "zipkin"`},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, want: "requires an endpoint"},
		{name: "otlp with bad scheme", exporter: telemetry.ExporterOTLP, endpoint: "grpc://collector:4317", want: "scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreGlobals(t)

			p, err := telemetry.Setup(context.Background(), telemetryConfig(tt.exporter, tt.endpoint))

			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(mp, "notion-page-service")
	require.NoError(t, err)

	assert.NotNil(t, m.ServerRequestDuration)
	assert.NotNil(t, m.ServerRequestTotal)
	assert.NotNil(t, m.ClientRequestDuration)
	assert.NotNil(t, m.ClientRequestTotal)
	assert.NotNil(t, m.PageOperationTotal)
}
