package dto

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
)

// ProblemContentType is the media type of every error body (RFC 9457).
const ProblemContentType = "application/problem+json"

// ErrorResponse is an RFC 9457 problem document. Trace is an extension
// member carrying the error's wrap chain, outermost layer first.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
	Trace    string        `json:"trace,omitempty"`
}

// ErrorDetail points at one offending member of the request body.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewErrorResponse describes err as a problem document for request r.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := StatusFor(err)

	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
		Errors:   detailsFor(err),
		Trace:    domain.Trace(err),
	}
}

// WriteErrorResponse writes err as problem+json with the mapped status.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteStatusResponse writes a problem document carrying only status, for
// failures such as an unknown route that have no underlying error.
func WriteStatusResponse(w http.ResponseWriter, r *http.Request, status int) {
	writeProblem(w, r, ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Instance: r.RequestURI,
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, problem ErrorResponse) {
	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing problem response",
			slog.Int("status", problem.Status),
			slog.Any("error", err),
		)
	}
}

// StatusFor maps an error to its response status. An external service
// failure is a 502 even when what it wraps is a validation error or a
// deadline: the fault lies upstream, not with the caller.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func detailsFor(err error) []ErrorDetail {
	var dup *domain.DuplicatePropertyError
	if errors.As(err, &dup) {
		return []ErrorDetail{{Location: "body.properties", Message: "duplicate property name", Value: dup.Name}}
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	details := make([]ErrorDetail, 0, len(verr.Fields))
	for field, msg := range verr.Fields {
		details = append(details, ErrorDetail{Location: "body." + field, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return details
}
