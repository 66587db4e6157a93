package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxBlockChildren is the largest page_size the block-children endpoint
// accepts.
const maxBlockChildren = 100

// Ozzo rules other than Required accept zero values, so mandatory settings
// pair Required with their range rule.
var positiveDuration = validation.Min(time.Duration(0)).Exclusive()

// Validate reports every invalid setting at once, keyed by section and
// field, e.g. "client: (retry: (max_attempts: must be no less than 1.).)".
func (c *Config) Validate() error {
	return validation.Errors{
		"server":    c.Server.validate(),
		"log":       c.Log.validate(),
		"client":    c.Client.validate(),
		"pages":     c.Pages.validate(),
		"telemetry": c.Telemetry.validate(),
	}.Filter()
}

func (s *ServerConfig) validate() error {
	return validation.Errors{
		"port":          validation.Validate(s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		"read_timeout":  validation.Validate(s.ReadTimeout, validation.Required, positiveDuration),
		"write_timeout": validation.Validate(s.WriteTimeout, validation.Required, positiveDuration),
		"idle_timeout":  validation.Validate(s.IdleTimeout, positiveDuration),
	}.Filter()
}

func (l *LogConfig) validate() error {
	return validation.Errors{
		"level":  validation.Validate(l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		"format": validation.Validate(l.Format, validation.Required, validation.In("json", "text")),
	}.Filter()
}

func (cl *ClientConfig) validate() error {
	limiting := cl.RateLimit.RequestsPerSecond > 0

	return validation.Errors{
		"base_url":    validation.Validate(cl.BaseURL, validation.Required),
		"api_version": validation.Validate(cl.APIVersion, validation.Required),
		"timeout":     validation.Validate(cl.Timeout, validation.Required, positiveDuration),
		"retry": validation.Errors{
			"max_attempts": validation.Validate(cl.Retry.MaxAttempts, validation.Required, validation.Min(1)),
			"multiplier":   validation.Validate(cl.Retry.Multiplier, validation.Required, validation.Min(0.0).Exclusive()),
		}.Filter(),
		"circuit_breaker": validation.Errors{
			"max_failures": validation.Validate(cl.CircuitBreaker.MaxFailures, validation.Required, validation.Min(1)),
		}.Filter(),
		"rate_limit": validation.Errors{
			"requests_per_second": validation.Validate(cl.RateLimit.RequestsPerSecond, validation.Min(0.0)),
			"burst_size":          validation.Validate(cl.RateLimit.BurstSize, validation.When(limiting, validation.Required, validation.Min(1))),
		}.Filter(),
	}.Filter()
}

// RequireAuth fails when no integration token is configured. Validate does
// not check the token so that profiles load without a secret present.
func (cl *ClientConfig) RequireAuth() error {
	err := validation.Validate(strings.TrimSpace(cl.AuthToken),
		validation.Required.Error("must be set (APP_CLIENT_AUTH_TOKEN)"))
	if err != nil {
		return fmt.Errorf("client.auth_token: %w", err)
	}
	return nil
}

func (p *PagesConfig) validate() error {
	return validation.Errors{
		"max_block_children": validation.Validate(p.MaxBlockChildren,
			validation.Required, validation.Min(1), validation.Max(maxBlockChildren)),
	}.Filter()
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	return validation.Errors{
		"exporter":     validation.Validate(t.Exporter, validation.Required, validation.In("stdout", "otlp")),
		"endpoint":     validation.Validate(t.Endpoint, validation.When(t.Exporter == "otlp", validation.Required)),
		"service_name": validation.Validate(t.ServiceName, validation.Required),
	}.Filter()
}
