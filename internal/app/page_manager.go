// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// Compile-time check that PageManager implements ports.PageManager.
var _ ports.PageManager = (*PageManager)(nil)

// Operation names used in logs and metrics.
const (
	OpCreatePage   = "CreatePage"
	OpReadPageByID = "ReadPageByID"
)

// PageManager implements ports.PageManager by validating inbound pages and
// delegating to the DocumentClient port. It performs no retries; the first
// failure is returned to the caller unchanged.
type PageManager struct {
	client  ports.DocumentClient
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Option configures a PageManager.
type Option func(*PageManager)

// WithMetrics records every operation on metrics.PageOperationTotal.
func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(m *PageManager) {
		m.metrics = metrics
	}
}

// NewPageManager creates a PageManager. logger is used when the call context
// carries no request-scoped logger; nil discards output.
func NewPageManager(client ports.DocumentClient, logger *slog.Logger, opts ...Option) *PageManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &PageManager{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreatePage validates p and creates it in the database parentID.
func (m *PageManager) CreatePage(ctx context.Context, p *page.Page, parentID string) (string, error) {
	log := logging.FromContextOr(ctx, m.logger)
	log.InfoContext(ctx, "creating page", slog.String("database_id", parentID))

	if err := validateCreate(p, parentID); err != nil {
		log.WarnContext(ctx, "rejected page",
			slog.String("operation", OpCreatePage),
			slog.String("database_id", parentID),
			slog.Any("error", err),
		)
		m.record(ctx, OpCreatePage, err)
		return "", err
	}

	id, err := m.client.CreatePage(ctx, parentID, p)
	m.record(ctx, OpCreatePage, err)
	if err != nil {
		log.ErrorContext(ctx, "failed to create page",
			slog.String("operation", OpCreatePage),
			slog.String("database_id", parentID),
			slog.Int("properties", len(p.Properties)),
			slog.Int("blocks", len(p.Blocks)),
			slog.Any("error", err),
		)
		return "", err
	}

	log.InfoContext(ctx, "created page",
		slog.String("database_id", parentID),
		slog.String("page_id", id),
	)
	return id, nil
}

// ReadPageByID returns the full page pageID.
func (m *PageManager) ReadPageByID(ctx context.Context, pageID string) (*page.Page, error) {
	log := logging.FromContextOr(ctx, m.logger)
	log.InfoContext(ctx, "reading page", slog.String("page_id", pageID))

	if strings.TrimSpace(pageID) == "" {
		err := domain.NewValidationError("page_id", domain.MsgRequired)
		m.record(ctx, OpReadPageByID, err)
		return nil, err
	}

	p, err := m.client.GetPage(ctx, pageID)
	m.record(ctx, OpReadPageByID, err)
	if err != nil {
		log.ErrorContext(ctx, "failed to read page",
			slog.String("operation", OpReadPageByID),
			slog.String("page_id", pageID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

func validateCreate(p *page.Page, parentID string) error {
	if strings.TrimSpace(parentID) == "" {
		return domain.NewValidationError("database_id", domain.MsgRequired)
	}
	if p == nil {
		return domain.NewValidationError("page", domain.MsgRequired)
	}
	return p.Validate()
}

// record counts one operation. Safe to call with nil metrics.
func (m *PageManager) record(ctx context.Context, op string, err error) {
	if m.metrics == nil || m.metrics.PageOperationTotal == nil {
		return
	}

	m.metrics.PageOperationTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrOperation.String(op),
		telemetry.AttrResult.String(resultOf(err)),
	))
}

// resultOf classifies err for the result metric attribute.
func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrExternalService):
		return "error"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupported):
		return "rejected"
	default:
		return "error"
	}
}
