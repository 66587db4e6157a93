// Package config loads the service configuration from embedded defaults,
// YAML files under configs/ and APP_* environment variables, and validates
// it with ozzo-validation.
package config

import "time"

// Config is the complete service configuration. Keys mirror defaults.yaml.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Pages     PagesConfig     `koanf:"pages"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig configures the inbound HTTP listener. A zero IdleTimeout
// falls back to ReadTimeout.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds settings for the Notion API client. AuthToken is the
// integration secret sent as a bearer token; APIVersion is sent as the
// Notion-Version header on every request.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	AuthToken      string               `koanf:"auth_token"`
	APIVersion     string               `koanf:"api_version"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig bounds retries of idempotent failures. MaxAttempts counts the
// first try; delays grow by Multiplier from InitialInterval up to MaxInterval
// unless the response carries Retry-After.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig opens the breaker after MaxFailures consecutive
// outages and tries again after Timeout with up to HalfOpenLimit requests.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side token bucket settings. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// PagesConfig holds page translation settings.
type PagesConfig struct {
	// MaxBlockChildren is the page_size of the single block-children call
	// made when reading a page.
	MaxBlockChildren int `koanf:"max_block_children"`
}

// TelemetryConfig enables OpenTelemetry export. Endpoint is only read by
// the otlp exporter.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
