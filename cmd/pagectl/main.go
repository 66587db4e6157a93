// Package main is pagectl, a command-line client for the page service. It
// creates pages in a database from a JSON document and prints existing
// pages in the same generic shape the HTTP API uses.
//
//	pagectl create --database <id> --file page.json
//	pagectl read <page-id>
//
// Configuration is loaded the same way as the server (configs/ plus APP_
// environment variables, with .env picked up automatically).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/notion-page-service/internal/app"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/config"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

func main() {
	cmd := newRootCommand(os.Stdout, buildPageManager)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, domain.Trace(err))
		os.Exit(1)
	}
}

// buildPageManager wires the outbound stack for one CLI invocation.
// Telemetry is not initialised; the client records no metrics.
func buildPageManager(opts globalOptions) (ports.PageManager, error) {
	cfg, err := config.Load(opts.profile, config.WithConfigDir(opts.configDir))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Client.RequireAuth(); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger := logging.New(level, "text", os.Stderr)
	logger.Debug("pagectl configured", slog.String("profile", opts.profile))

	injector := do.New()
	do.Provide(injector, func(_ do.Injector) (*httpclient.Client, error) {
		return httpclient.New(&cfg.Client, "notion-api", nil, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.DocumentClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		creds := acl.Credentials{Token: cfg.Client.AuthToken, Version: cfg.Client.APIVersion}
		return acl.NewDocumentClient(client, creds, cfg.Pages.MaxBlockChildren, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.PageManager, error) {
		return app.NewPageManager(do.MustInvoke[ports.DocumentClient](i), logger), nil
	})

	mgr, err := do.Invoke[ports.PageManager](injector)
	if err != nil {
		return nil, fmt.Errorf("resolving page manager: %w", err)
	}
	return mgr, nil
}
