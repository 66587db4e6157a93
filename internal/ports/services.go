package ports

import (
	"context"

	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// PageManager defines the service port for page operations.
// Implemented by the application layer; called by inbound adapters
// (HTTP handlers and the pagectl CLI).
type PageManager interface {
	// CreatePage validates p and creates it under the database parentID,
	// returning the new page ID. Returns domain.ErrValidation for an empty
	// parentID or an invalid page, and domain.ErrUnsupported for read-only
	// values.
	CreatePage(ctx context.Context, p *page.Page, parentID string) (string, error)

	// ReadPageByID returns the page with its icon, every property (computed
	// ones included) and its top-level blocks in document order.
	// Returns domain.ErrValidation for an empty pageID.
	ReadPageByID(ctx context.Context, pageID string) (*page.Page, error)
}
