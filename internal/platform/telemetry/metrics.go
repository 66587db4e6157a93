package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOperation   = attribute.Key("notion.page.operation")
)

// Metrics holds the instruments recorded by the page service.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	// PageOperationTotal counts CreatePage and ReadPageByID calls by
	// operation and result (success, rejected, error).
	PageOperationTotal metric.Int64Counter
}

// NewMetrics registers the instruments on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	m := &Metrics{}

	var err error
	histogram := func(dst *metric.Float64Histogram, name, desc string) {
		if err != nil {
			return
		}
		*dst, err = meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			err = fmt.Errorf("creating %s: %w", name, err)
		}
	}
	counter := func(dst *metric.Int64Counter, name, desc, unit string) {
		if err != nil {
			return
		}
		*dst, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			err = fmt.Errorf("creating %s: %w", name, err)
		}
	}

	histogram(&m.ServerRequestDuration, "http.server.request.duration", "Duration of page service HTTP requests")
	counter(&m.ServerRequestTotal, "http.server.request.total", "Page service HTTP requests", "{request}")
	histogram(&m.ClientRequestDuration, "http.client.request.duration", "Duration of Notion API requests")
	counter(&m.ClientRequestTotal, "http.client.request.total", "Notion API requests", "{request}")
	counter(&m.PageOperationTotal, "notion.page.operations.total", "Page create and read operations", "{operation}")

	if err != nil {
		return nil, err
	}
	return m, nil
}
