// Package page implements the Anti-Corruption Layer assembler for Notion
// pages. It composes the create-page request from the icon, property and
// block translators, and merges a page response with its block listing
// back into the domain aggregate.
package page

import (
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/block"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/icon"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/property"
)

// ParentDTO places a new page inside a database.
type ParentDTO struct {
	Type       string `json:"type,omitempty"`
	DatabaseID string `json:"database_id"`
}

// CreatePageRequestDTO is the body of POST /v1/pages.
type CreatePageRequestDTO struct {
	Parent     ParentDTO              `json:"parent"`
	Icon       *icon.DTO              `json:"icon,omitempty"`
	Properties property.PropertiesDTO `json:"properties"`
	Children   []block.DTO            `json:"children"`
}

// PageDTO matches the page object returned by create and retrieve. Only the
// fields this service reads are declared.
type PageDTO struct {
	Object     string                 `json:"object"`
	ID         string                 `json:"id"`
	Icon       *icon.DTO              `json:"icon"`
	Properties property.PropertiesDTO `json:"properties"`
	Archived   bool                   `json:"archived,omitempty"`
	URL        string                 `json:"url,omitempty"`
}

// BlockListDTO matches the paginated list returned by
// GET /v1/blocks/{id}/children.
type BlockListDTO struct {
	Object     string      `json:"object"`
	Results    []block.DTO `json:"results"`
	NextCursor *string     `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}
