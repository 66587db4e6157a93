// Package middleware provides the inbound request pipeline for the page API.
//
// Stack assembles the standard order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → router
//
// Recovery is outermost so that a panic anywhere below it still produces a
// problem+json response. Timeout is innermost so that the deadline it sets is
// the one seen by the page manager and the outbound Notion calls.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// Chain composes middlewares so that the first argument is the outermost:
// Chain(a, b)(h) is a(b(h)).
func Chain(middlewares ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}

// Stack returns the standard pipeline used by the server. metrics may be nil.
func Stack(logger *slog.Logger, metrics *telemetry.Metrics, timeout time.Duration) Middleware {
	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(metrics),
		Logging(logger),
		Timeout(timeout),
	)
}
