// Package http is the inbound HTTP adapter: the chi router and the server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/handlers"
)

// Route patterns served by NewRouter.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
	PagePath      = "/api/v1/pages/{" + handlers.PageIDParam + "}"
)

// NewRouter mounts the page and health endpoints behind middlewares, applied
// outermost first. Unknown routes and methods answer with problem+json like
// every other error.
func NewRouter(
	pageHandler *handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatusResponse(w, req, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatusResponse(w, req, http.StatusMethodNotAllowed)
	})

	r.Get(LivenessPath, healthHandler.Liveness)
	r.Get(ReadinessPath, healthHandler.Readiness)

	// POST takes the parent database id, GET the page id.
	r.Post(PagePath, pageHandler.CreatePage)
	r.Get(PagePath, pageHandler.ReadPage)

	return r
}
