// Package httpclient is the outbound HTTP client used to talk to the Notion
// API. Each request passes through, in order:
//
//	rate limiter → circuit breaker → ID headers → client span → retry → net/http
//
// Construction and use:
//
//	client := httpclient.New(&cfg.Client, "notion-api", metrics, logger)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, client.BaseURL()+"/pages/"+id, http.NoBody)
//	resp, err := client.Do(ctx, req)
//
// Request and correlation IDs set by the inbound middleware with
// [WithRequestID] and [WithCorrelationID] are forwarded as headers.
package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

// Client sends requests to one downstream service, the peer. It also
// implements ports.HealthChecker by reporting its breaker state.
type Client struct {
	hc      *http.Client
	baseURL string
	peer    string
	cb      *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil when limiting is off
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a client for peer from cfg. peer labels spans, metrics and
// breaker logs. metrics may be nil.
func New(cfg *config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		peer:    peer,
		cb:      newBreaker(peer, cfg.CircuitBreaker, logger),
		retry: retryPolicy{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}

	if rps := cfg.RateLimit.RequestsPerSecond; rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), cfg.RateLimit.BurstSize)
	}
	return c
}

// Do sends req and returns the response with its body open.
//
// When every attempt ends in a retryable status, Do returns the last
// response together with a *StatusError so the caller can still read the
// upstream error object; the caller must close resp.Body in that case too.
// Breaker rejections and transport errors return a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	began := time.Now()

	// The limiter sits in front of the breaker: running out of local budget
	// says nothing about the peer's health.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			err = fmt.Errorf("waiting for rate limiter: %w", err)
			c.observe(ctx, req.Method, began, nil, err)
			return nil, err
		}
	}

	var resp *http.Response
	_, err := c.cb.Execute(func() (struct{}, error) {
		var sendErr error
		resp, sendErr = c.traced(ctx, req)
		return struct{}{}, sendErr
	})

	c.observe(ctx, req.Method, began, resp, err)
	return resp, err
}

// traced runs the retry loop inside a client span.
func (c *Client) traced(ctx context.Context, req *http.Request) (*http.Response, error) {
	forwardIDs(ctx, req)

	ctx, span := c.startSpan(ctx, req)
	defer span.End()

	resp, err := c.send(ctx, req.WithContext(ctx))
	finishSpan(span, resp, err)
	return resp, err
}

// BaseURL returns the configured base URL without a trailing path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the peer name used in readiness output.
func (c *Client) Name() string {
	return c.peer
}
