// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// CreatePageResponse is returned after a page has been created.
type CreatePageResponse struct {
	PageID string `json:"page_id"`
}

// PageResponse represents a full page in HTTP responses. Properties keep the
// order returned by the document service; blocks are in document order.
type PageResponse struct {
	ID         string             `json:"id"`
	Icon       *IconBody          `json:"icon"`
	Properties []PropertyResponse `json:"properties"`
	Blocks     []BlockResponse    `json:"blocks"`
}

// PropertyResponse is one property of a PageResponse. Name is empty for
// rollup array items.
type PropertyResponse struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// BlockResponse is one block of a PageResponse.
type BlockResponse struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// ToPageResponse converts a domain Page to an HTTP response DTO.
func ToPageResponse(p *page.Page) PageResponse {
	resp := PageResponse{
		ID:         p.ID,
		Properties: make([]PropertyResponse, 0, len(p.Properties)),
		Blocks:     make([]BlockResponse, 0, len(p.Blocks)),
	}

	if !p.Icon.IsZero() {
		resp.Icon = &IconBody{Type: p.Icon.Kind.String(), Value: p.Icon.Value}
	}

	for _, prop := range p.Properties {
		resp.Properties = append(resp.Properties, PropertyResponse{
			Name:  prop.Name,
			Type:  prop.Type.String(),
			Value: encodePropertyValue(prop.Value),
		})
	}

	for _, b := range p.Blocks {
		resp.Blocks = append(resp.Blocks, BlockResponse{
			ID:    b.ID,
			Type:  b.Type.String(),
			Value: encodeBlockValue(b),
		})
	}

	return resp
}
