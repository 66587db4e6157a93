package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
)

func newBreaker(peer string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= clampUint32(cfg.MaxFailures)
		},
		IsSuccessful: func(err error) bool {
			return !countsAsOutage(err)
		},
		OnStateChange: func(peer string, from, to gobreaker.State) {
			level := slog.LevelWarn
			if to == gobreaker.StateClosed {
				level = slog.LevelInfo
			}
			logger.Log(context.Background(), level, "circuit breaker changed state",
				slog.String("peer_service", peer),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// countsAsOutage decides which errors move the breaker toward open. Rate
// limiting and conflicts mean the peer is up, and a caller giving up says
// nothing about the peer at all.
func countsAsOutage(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// HealthCheck maps the breaker state to a readiness result without making a
// network call. An open breaker reports failing and a half-open one degraded.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.cb.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s degraded: circuit breaker half-open", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s failing: circuit breaker open", c.peer)
	}
	return fmt.Errorf("%s: circuit breaker in unknown state %v", c.peer, state)
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
