package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
)

// jitterFraction spreads each backoff delay by up to ±25%.
const jitterFraction = 0.25

// maxRetryAfter caps how long a Retry-After header may stall one request.
const maxRetryAfter = 30 * time.Second

// StatusError reports that every attempt ended in a retryable status.
type StatusError struct {
	Service    string
	StatusCode int
	Attempts   int
	// RetryAfter is the server's last Retry-After hint, zero if none.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d after %d attempt(s)", e.Service, e.StatusCode, e.Attempts)
}

type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// send performs up to maxAttempts round trips. The body is buffered once and
// replayed on each attempt. Between attempts it waits for the server's
// Retry-After hint when there is one, and for exponential backoff otherwise.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.maxAttempts <= 0 {
		return nil, fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}

	var (
		lastErr error
		hint    time.Duration
	)
	for attempt := 1; attempt <= c.retry.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.pause(ctx, req, attempt, hint, lastErr); err != nil {
				return nil, err
			}
		}

		rewindBody(req, body)

		resp, err := c.hc.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return nil, err
			}
			lastErr, hint = err, 0
			continue
		}

		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		hint = retryAfter(resp.Header, time.Now())
		statusErr := &StatusError{
			Service:    c.peer,
			StatusCode: resp.StatusCode,
			Attempts:   attempt,
			RetryAfter: hint,
		}
		if attempt == c.retry.maxAttempts {
			// Hand back the final response unread so the upstream error
			// object can be decoded.
			return resp, statusErr
		}
		lastErr = statusErr
		discard(resp)
	}

	return nil, lastErr
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return b, nil
}

func rewindBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// discard drains resp so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, hint time.Duration, lastErr error) error {
	delay := hint
	if delay <= 0 {
		delay = backoff(attempt-1, c.retry)
	}

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("peer_service", c.peer),
		slog.Int("attempt", attempt),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("delay", delay),
		slog.Bool("retry_after", hint > 0),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryAfter parses a Retry-After header given either as delay seconds or as
// an HTTP date. The result is clamped to [0, maxRetryAfter].
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}

	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}

	return min(max(d, 0), maxRetryAfter)
}

// backoff returns the jittered delay before retry number n (1-based).
func backoff(n int, p retryPolicy) time.Duration {
	delay := float64(p.initialInterval) * math.Pow(p.multiplier, float64(n-1))
	delay = math.Min(delay, float64(p.maxInterval))

	delay += delay * jitterFraction * (2*randFloat64() - 1)

	return time.Duration(math.Max(delay, 0))
}

// randFloat64 returns a uniform float64 in [0, 1) from crypto/rand.
func randFloat64() float64 {
	const mantissaBits = 53

	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(64-mantissaBits)) / (1 << mantissaBits)
}

// isRetryable reports whether a transport error is worth another attempt.
// The caller's own cancellation or deadline never is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus lists the statuses Notion documents as transient:
// conflict_error (409), rate_limited (429), and the 5xx family except 501.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusConflict, http.StatusTooManyRequests:
		return true
	case http.StatusNotImplemented:
		return false
	default:
		return code >= http.StatusInternalServerError
	}
}
