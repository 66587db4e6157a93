// Command server runs the page service HTTP API. Configuration comes from
// configs/<APP_PROFILE>.yaml layered over configs/base.yaml, then APP_*
// environment variables; a .env file in the working directory is loaded
// first when present. SIGINT or SIGTERM drains in-flight requests and flushes
// telemetry before exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/notion-page-service/internal/adapters/http"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
)

const (
	drainTimeout = 15 * time.Second
	flushTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Client.RequireAuth(); err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, telemetry.WithEnvironment(profile))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer flush(providers, logger)

	injector := do.New()
	provide(injector, cfg, logger, providers.Metrics)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	if err := server.Listen(); err != nil {
		return err
	}
	logger.Info("page service ready",
		slog.String("profile", profile),
		slog.String("addr", server.Addr()),
		slog.String("notion_version", cfg.Client.APIVersion),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serveErr

	logger.Info("shutdown complete")
	return nil
}

func flush(providers *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := providers.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}
