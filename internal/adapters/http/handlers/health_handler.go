package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is the whole
// check, so it always returns 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.LivenessResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 when every dependency check
// passes, 503 otherwise. The body always lists each check.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	code := http.StatusOK
	if !resp.Ready() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp)
}
