package httpclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

const service = "notion-api"

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

// statusSequence answers with codes in order, repeating the last one, and
// counts the requests it receives.
func statusSequence(t *testing.T, codes ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(hits.Add(1))
		code := codes[min(n, len(codes))-1]
		w.WriteHeader(code)
		_, _ = io.WriteString(w, `{"object":"error","status":`+strconv.Itoa(code)+`}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func get(t *testing.T, c *httpclient.Client, ctx context.Context, url string) (*http.Response, error) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	require.NoError(t, err)

	resp, err := c.Do(ctx, req)
	if resp != nil {
		t.Cleanup(func() { _ = resp.Body.Close() })
	}
	return resp, err
}

func TestDo_Success(t *testing.T) {
	t.Parallel()

	srv, hits := statusSequence(t, http.StatusOK)
	c := httpclient.New(testConfig(srv.URL), service, nil, nil)

	resp, err := get(t, c, context.Background(), srv.URL+"/v1/pages/p1")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, srv.URL, c.BaseURL())
}

func TestDo_Retries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		codes     []int
		wantCode  int
		wantHits  int32
		wantError bool
	}{
		{name: "5xx then success", codes: []int{500, 502, 200}, wantCode: 200, wantHits: 3},
		{name: "rate limited then success", codes: []int{429, 200}, wantCode: 200, wantHits: 2},
		{name: "conflict then success", codes: []int{409, 201}, wantCode: 201, wantHits: 2},
		{name: "bad request is final", codes: []int{400}, wantCode: 400, wantHits: 1},
		{name: "not found is final", codes: []int{404}, wantCode: 404, wantHits: 1},
		{name: "not implemented is final", codes: []int{501}, wantCode: 501, wantHits: 1},
		{name: "exhausted", codes: []int{503}, wantCode: 503, wantHits: 3, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, hits := statusSequence(t, tt.codes...)
			c := httpclient.New(testConfig(srv.URL), service, nil, nil)

			resp, err := get(t, c, context.Background(), srv.URL)

			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantHits, hits.Load())
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			var statusErr *httpclient.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, httpclient.StatusError{Service: service, StatusCode: 503, Attempts: 3}, *statusErr)
		})
	}
}

func TestDo_ExhaustedKeepsUpstreamBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"object":"error","status":429,"code":"rate_limited"}`)
	}))
	t.Cleanup(srv.Close)

	c := httpclient.New(testConfig(srv.URL), service, nil, nil)
	resp, err := get(t, c, context.Background(), srv.URL)

	require.Error(t, err)
	require.NotNil(t, resp)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"object":"error","status":429,"code":"rate_limited"}`, string(body))
}

func TestDo_HonorsRetryAfter(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		times []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		first := len(times) == 1
		mu.Unlock()

		if first {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := httpclient.New(testConfig(srv.URL), service, nil, nil)
	resp, err := get(t, c, context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, times, 2)
	// Backoff alone would wait at most a few milliseconds.
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), 900*time.Millisecond)
}

func TestDo_ReplaysBodyOnRetry(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := httpclient.New(testConfig(srv.URL), service, nil, nil)

	payload := `{"parent":{"database_id":"db"},"properties":{}}`
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/v1/pages", strings.NewReader(payload))
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{payload, payload}, bodies)
}

func TestDo_ForwardsIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      context.Context
		wantReq  string
		wantCorr string
	}{
		{
			name:     "ids in context",
			ctx:      httpclient.WithCorrelationID(httpclient.WithRequestID(context.Background(), "req-123"), "corr-456"),
			wantReq:  "req-123",
			wantCorr: "corr-456",
		},
		{
			name: "no ids",
			ctx:  context.Background(),
		},
		{
			name: "empty ids",
			ctx:  httpclient.WithRequestID(context.Background(), ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotReq, gotCorr string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotReq = r.Header.Get("X-Request-ID")
				gotCorr = r.Header.Get("X-Correlation-ID")
			}))
			t.Cleanup(srv.Close)

			c := httpclient.New(testConfig(srv.URL), service, nil, nil)
			_, err := get(t, c, tt.ctx, srv.URL)

			require.NoError(t, err)
			assert.Equal(t, tt.wantReq, gotReq)
			assert.Equal(t, tt.wantCorr, gotCorr)
		})
	}
}

func TestDo_BreakerOpensOnOutage(t *testing.T) {
	t.Parallel()

	srv, hits := statusSequence(t, http.StatusInternalServerError)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.Retry.MaxAttempts = 1
	c := httpclient.New(cfg, service, nil, nil)

	_, _ = get(t, c, context.Background(), srv.URL)
	before := hits.Load()

	resp, err := get(t, c, context.Background(), srv.URL)

	assert.Nil(t, resp)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the server")

	err = c.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

func TestDo_BreakerIgnoresRateLimiting(t *testing.T) {
	t.Parallel()

	srv, hits := statusSequence(t, http.StatusTooManyRequests)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.Retry.MaxAttempts = 1
	c := httpclient.New(cfg, service, nil, nil)

	for range 3 {
		_, err := get(t, c, context.Background(), srv.URL)
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
	assert.EqualValues(t, 3, hits.Load())
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestDo_BreakerRecovers(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 50 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
	c := httpclient.New(cfg, service, nil, nil)

	_, _ = get(t, c, context.Background(), srv.URL)
	require.Error(t, c.HealthCheck(context.Background()))

	require.Eventually(t, func() bool {
		err := c.HealthCheck(context.Background())
		return err != nil && strings.Contains(err.Error(), "degraded")
	}, time.Second, 10*time.Millisecond, "breaker never went half-open")

	failing.Store(false)

	resp, err := get(t, c, context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestDo_CanceledContext(t *testing.T) {
	t.Parallel()

	srv, hits := statusSequence(t, http.StatusOK)
	c := httpclient.New(testConfig(srv.URL), service, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := get(t, c, ctx, srv.URL)

	assert.Nil(t, resp)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
	assert.NoError(t, c.HealthCheck(context.Background()), "caller cancellation must not count against the breaker")
}

func TestDo_RateLimiterHonorsContext(t *testing.T) {
	t.Parallel()

	srv, _ := statusSequence(t, http.StatusOK)

	cfg := testConfig(srv.URL)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}
	c := httpclient.New(cfg, service, nil, nil)

	_, err := get(t, c, context.Background(), srv.URL)
	require.NoError(t, err, "burst allows the first request")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = get(t, c, ctx, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestClient_Name(t *testing.T) {
	t.Parallel()

	c := httpclient.New(testConfig("http://localhost"), service, nil, nil)

	assert.Equal(t, service, c.Name())
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestDo_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(t.Context()) })

	metrics, err := telemetry.NewMetrics(mp, "test")
	require.NoError(t, err)

	srv, _ := statusSequence(t, http.StatusTooManyRequests)
	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 1
	c := httpclient.New(cfg, service, metrics, nil)

	_, _ = get(t, c, context.Background(), srv.URL)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)

			attrs := sum.DataPoints[0].Attributes
			result, _ := attrs.Value(telemetry.AttrResult)
			peer, _ := attrs.Value(telemetry.AttrPeerService)
			assert.Equal(t, "rate_limited", result.AsString())
			assert.Equal(t, service, peer.AsString())
			return
		}
	}
	t.Fatal("http.client.request.total not recorded")
}

// Replaces the global tracer provider; not parallel.
func TestDo_ClientSpanAndPropagation(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := httpclient.New(testConfig(srv.URL), service, nil, nil)
	_, err := get(t, c, context.Background(), srv.URL+"/v1/pages/missing")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Equal(t, "GET "+service, span.Name)
	assert.Equal(t, trace.SpanKindClient, span.SpanKind)
	assert.Contains(t, traceparent, span.SpanContext.TraceID().String())

	attrs := map[string]any{}
	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "GET", attrs["http.request.method"])
	assert.Equal(t, int64(http.StatusNotFound), attrs["http.response.status_code"])
	assert.Equal(t, service, attrs["peer.service"])
}

func TestStatusError_Message(t *testing.T) {
	t.Parallel()

	err := error(&httpclient.StatusError{Service: service, StatusCode: 503, Attempts: 3})
	assert.Equal(t, "notion-api: HTTP 503 after 3 attempt(s)", err.Error())

	var target *httpclient.StatusError
	assert.True(t, errors.As(err, &target))
}
