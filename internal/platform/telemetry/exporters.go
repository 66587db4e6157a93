package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted in telemetry.exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var errEmptyEndpoint = errors.New("otlp exporter requires an endpoint")

// collector is an OTLP/HTTP endpoint split the way the exporters want it.
type collector struct {
	hostPort string
	insecure bool
}

// parseCollector accepts "http(s)://host:port" or a bare "host:port"; bare
// addresses are treated as plain HTTP.
func parseCollector(endpoint string) (collector, error) {
	if endpoint == "" {
		return collector{}, errEmptyEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return collector{hostPort: endpoint, insecure: true}, nil
	}

	switch u.Scheme {
	case "http":
		return collector{hostPort: u.Host, insecure: true}, nil
	case "https":
		return collector{hostPort: u.Host}, nil
	default:
		return collector{}, fmt.Errorf("otlp endpoint scheme must be http or https, got %q", u.Scheme)
	}
}

func newSpanExporter(ctx context.Context, exporter, endpoint string, stdout io.Writer) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterOTLP:
		c, err := parseCollector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.hostPort)}
		if c.insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(stdout), stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}

func newMetricExporter(ctx context.Context, exporter, endpoint string, stdout io.Writer) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterOTLP:
		c, err := parseCollector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.hostPort)}
		if c.insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case ExporterStdout:
		return stdoutmetric.New(stdoutmetric.WithWriter(stdout))
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}
