// Package handlers adapts HTTP requests to the page and health ports.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// PageHandler serves the page create and read endpoints.
type PageHandler struct {
	svc ports.PageManager
}

// NewPageHandler returns a PageHandler backed by svc.
func NewPageHandler(svc ports.PageManager) *PageHandler {
	return &PageHandler{svc: svc}
}

// CreatePage handles POST /api/v1/pages/{id}, where id is the parent
// database. It answers 200 with the new page id.
func (h *PageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	databaseID, err := idParam(r, "database_id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := readCreateRequest(w, r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	id, err := h.svc.CreatePage(r.Context(), p, databaseID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CreatePageResponse{PageID: id})
}

// ReadPage handles GET /api/v1/pages/{id}.
func (h *PageHandler) ReadPage(w http.ResponseWriter, r *http.Request) {
	pageID, err := idParam(r, "page_id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.ReadPageByID(r.Context(), pageID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToPageResponse(p))
}
