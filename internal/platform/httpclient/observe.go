package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

const (
	instrumentation = "github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"

	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

// Values of the result attribute on client metrics.
const (
	resultSuccess     = "success"
	resultError       = "error"
	resultRateLimited = "rate_limited"
	resultCircuitOpen = "circuit_open"
)

type forwardedID int

const (
	requestID forwardedID = iota
	correlationID
)

// WithRequestID stores the inbound request ID for forwarding.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestID, id)
}

// WithCorrelationID stores the inbound correlation ID for forwarding.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationID, id)
}

func forwardIDs(ctx context.Context, req *http.Request) {
	for key, header := range map[forwardedID]string{
		requestID:     headerRequestID,
		correlationID: headerCorrelationID,
	} {
		if id, _ := ctx.Value(key).(string); id != "" {
			req.Header.Set(header, id)
		}
	}
}

// startSpan opens a client span named "METHOD peer" and injects the W3C
// trace context into the outgoing headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(instrumentation).Start(ctx, req.Method+" "+c.peer,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFullKey.String(req.URL.String()),
			semconv.ServerAddressKey.String(req.URL.Hostname()),
			telemetry.AttrPeerService.String(c.peer),
		),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

func finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(resp.StatusCode))
	}
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// observe records one Do call, including calls the breaker or limiter
// rejected before anything was sent.
func (c *Client) observe(ctx context.Context, method string, began time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	var status int
	if resp != nil {
		status = resp.StatusCode
	}

	set := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.peer),
		telemetry.AttrResult.String(outcome(status, err)),
	)
	c.metrics.ClientRequestDuration.Record(ctx, time.Since(began).Seconds(), set)
	c.metrics.ClientRequestTotal.Add(ctx, 1, set)
}

func outcome(status int, err error) string {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return resultCircuitOpen
	}
	switch {
	case status == http.StatusTooManyRequests:
		return resultRateLimited
	case status != 0 && status < http.StatusBadRequest:
		return resultSuccess
	}
	return resultError
}
