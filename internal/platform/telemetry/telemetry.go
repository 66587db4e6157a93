// Package telemetry sets up OpenTelemetry tracing and metrics for the page
// service and defines the instruments it records.
//
//	providers, err := telemetry.Setup(ctx, cfg.Telemetry, telemetry.WithEnvironment(profile))
//	defer providers.Shutdown(shutdownCtx)
//	handler := middleware.Stack(logger, providers.Metrics, timeout)
//
// With telemetry disabled Setup installs nothing and returns providers whose
// Metrics is nil; every consumer treats nil metrics as "do not record".
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
)

// Providers owns the SDK providers created by Setup. All fields are nil when
// telemetry is disabled.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Shutdown flushes and stops both providers. Safe on a zero Providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

type settings struct {
	environment string
	stdout      io.Writer
}

// Option adjusts Setup.
type Option func(*settings)

// WithEnvironment records the deployment environment (the config profile)
// on the telemetry resource.
func WithEnvironment(env string) Option {
	return func(s *settings) { s.environment = env }
}

// WithStdoutWriter redirects the stdout exporters, mainly for tests.
func WithStdoutWriter(w io.Writer) Option {
	return func(s *settings) { s.stdout = w }
}

// Setup creates the tracer and meter providers described by cfg, installs
// them as the OpenTelemetry globals together with a W3C trace context and
// baggage propagator, and registers the service's instruments.
func Setup(ctx context.Context, cfg config.TelemetryConfig, opts ...Option) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	s := settings{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	res, err := newResource(cfg.ServiceName, s.environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spans, err := newSpanExporter(ctx, cfg.Exporter, cfg.Endpoint, s.stdout)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	readings, err := newMetricExporter(ctx, cfg.Exporter, cfg.Endpoint, s.stdout)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(spans),
			sdktrace.WithResource(res),
		),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(readings)),
			sdkmetric.WithResource(res),
		),
	}

	p.Metrics, err = NewMetrics(p.Meter, cfg.ServiceName)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

func newResource(serviceName, environment string) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	if environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironmentNameKey.String(environment))
	}
	return resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
}
