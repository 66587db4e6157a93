// Package logging builds the service's slog loggers and carries the
// request-scoped logger through a context.
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
//
// The HTTP middleware stores a child logger tagged with request_id and
// correlation_id; code below it fetches that logger instead of its own:
//
//	log := logging.FromContextOr(ctx, m.logger)
//	log.ErrorContext(ctx, "failed to read page",
//	    slog.String("operation", "ReadPageByID"),
//	    slog.String("page_id", id),
//	    slog.Any("error", err),
//	)
//
// Error records carry the operation, the page or database id involved and
// the error itself under "error". Credentials are masked by the handler
// regardless of how they reach a record (see redact.go).
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// New returns a logger writing to w. level is one of debug, info, warn or
// error (case-insensitive, anything else means info). format "text" selects
// the logfmt-style handler; every other value selects JSON. Debug loggers
// also record the source location.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}

	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, slog.Default())
}

// FromContextOr returns the logger stored in ctx, or fallback when there is
// none. Services use it so that calls made outside an HTTP request (the CLI,
// tests) still log through their configured logger.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}

// With adds attrs to the context logger and stores the result back.
func With(ctx context.Context, attrs ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(attrs...))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
