package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
)

// PageIDParam is the chi URL parameter of both page routes. It names the
// parent database on POST and the page on GET; chi cannot route one segment
// through two differently named parameters.
const PageIDParam = "id"

// maxBodyBytes caps a create request body.
const maxBodyBytes = 1 << 20

// idParam returns the trimmed {id} segment, or a validation error naming
// field when it is blank.
func idParam(r *http.Request, field string) (string, error) {
	if id := strings.TrimSpace(chi.URLParam(r, PageIDParam)); id != "" {
		return id, nil
	}
	return "", domain.NewValidationError(field, domain.MsgRequired)
}

// readCreateRequest decodes, validates and maps a create body.
func readCreateRequest(w http.ResponseWriter, r *http.Request) (*page.Page, error) {
	var req dto.CreatePageRequest

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, bodyError(err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req.ToDomain()
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.NewValidationError("body", fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
	}
	return domain.NewValidationError("body", "invalid JSON")
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing response body",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}
