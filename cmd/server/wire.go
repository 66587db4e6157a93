package main

import (
	"log/slog"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl"
	adapthttp "github.com/jsamuelsen11/notion-page-service/internal/adapters/http"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/notion-page-service/internal/app"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/health"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// notionService names the Notion API in spans, metrics and readiness output.
const notionService = "notion-api"

// provide registers the service graph, outbound client first and server
// last. metrics may be nil when telemetry is disabled.
func provide(injector do.Injector, cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) {
	do.Provide(injector, func(_ do.Injector) (*httpclient.Client, error) {
		return httpclient.New(&cfg.Client, notionService, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.DocumentClient, error) {
		creds := acl.Credentials{Token: cfg.Client.AuthToken, Version: cfg.Client.APIVersion}
		return acl.NewDocumentClient(do.MustInvoke[*httpclient.Client](i), creds, cfg.Pages.MaxBlockChildren, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.PageManager, error) {
		return app.NewPageManager(do.MustInvoke[ports.DocumentClient](i), logger, app.WithMetrics(metrics)), nil
	})

	// Readiness follows the Notion client's circuit breaker.
	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New(health.WithCheckTimeout(cfg.Client.Timeout))
		registry.Register(do.MustInvoke[*httpclient.Client](i))
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (http.Handler, error) {
		return adapthttp.NewRouter(
			handlers.NewPageHandler(do.MustInvoke[ports.PageManager](i)),
			handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			middleware.Stack(logger, metrics, cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[http.Handler](i), logger), nil
	})
}
