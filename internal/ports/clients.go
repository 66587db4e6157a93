package ports

import (
	"context"

	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// DocumentClient defines the client port for the external document service
// (Notion). Implemented by the ACL adapter; called by the application layer.
// Requests are built and responses decoded entirely inside the adapter, so
// callers only ever see domain pages.
type DocumentClient interface {
	// CreatePage creates p as a new row of the database databaseID and
	// returns the assigned page ID. The request body is built before any
	// network call, so encoding failures (ValidationError,
	// DuplicatePropertyError, UnsupportedOperationError) issue no request.
	// Transport and API failures are returned as *domain.ExternalServiceError.
	CreatePage(ctx context.Context, databaseID string, p *page.Page) (string, error)

	// GetPage retrieves the page pageID and the first page of its top-level
	// block children, merged into one aggregate. Malformed payloads return
	// a *domain.DecodeError.
	GetPage(ctx context.Context, pageID string) (*page.Page, error)
}
