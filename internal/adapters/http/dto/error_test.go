package dto_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("database_id", "is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("property %q: %w", "Name", domain.NewValidationError("properties.Name", "bad")), http.StatusBadRequest},
		{"duplicate property", &domain.DuplicatePropertyError{Name: "Name"}, http.StatusBadRequest},
		{"external not found", &domain.ExternalServiceError{Operation: "pages.retrieve", Err: domain.ErrNotFound}, http.StatusBadGateway},
		{"external rejected payload", &domain.ExternalServiceError{Operation: "pages.create", Err: domain.ErrValidation}, http.StatusBadGateway},
		{"external deadline", &domain.ExternalServiceError{Operation: "pages.create", Err: context.DeadlineExceeded}, http.StatusBadGateway},
		{"request deadline", fmt.Errorf("reading page: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unsupported property", &domain.UnsupportedOperationError{Kind: "property", Type: "formula"}, http.StatusInternalServerError},
		{"malformed document", &domain.DecodeError{Type: "number", Reason: "not a number"}, http.StatusInternalServerError},
		{"anything else", errors.New("oops"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, dto.StatusFor(tt.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("creating page: %w",
		&domain.ExternalServiceError{Operation: "pages.create", Err: domain.ErrNotFound})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/pages/c7c1007a", nil)

	got := dto.NewErrorResponse(r, err)

	assert.Equal(t, dto.ErrorResponse{
		Type:     "about:blank",
		Title:    "Bad Gateway",
		Status:   http.StatusBadGateway,
		Detail:   err.Error(),
		Instance: "/api/v1/pages/c7c1007a",
		Trace:    domain.Trace(err),
	}, got)
	assert.Contains(t, got.Trace, "*domain.ExternalServiceError")
}

func TestNewErrorResponse_Details(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []dto.ErrorDetail
	}{
		{
			name: "validation fields sorted by location",
			err: &domain.ValidationError{Fields: map[string]string{
				"properties.0.name": "cannot be blank",
				"database_id":       "is required",
				"blocks.2.value":    "must be a string",
			}},
			want: []dto.ErrorDetail{
				{Location: "body.blocks.2.value", Message: "must be a string"},
				{Location: "body.database_id", Message: "is required"},
				{Location: "body.properties.0.name", Message: "cannot be blank"},
			},
		},
		{
			name: "duplicate property carries the name",
			err:  fmt.Errorf("assembling page: %w", &domain.DuplicatePropertyError{Name: "Tags"}),
			want: []dto.ErrorDetail{
				{Location: "body.properties", Message: "duplicate property name", Value: "Tags"},
			},
		},
		{
			name: "non-validation errors have none",
			err:  &domain.ExternalServiceError{Operation: "pages.retrieve", Err: domain.ErrNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/v1/pages/db", nil)
			assert.Equal(t, tt.want, dto.NewErrorResponse(r, tt.err).Errors)
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/pages/db", nil)

	dto.WriteErrorResponse(rec, r, domain.NewValidationError("database_id", "is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ProblemContentType, rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "about:blank", body["type"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.InDelta(t, http.StatusBadRequest, body["status"], 0)
	assert.Equal(t, "/api/v1/pages/db", body["instance"])
	assert.NotEmpty(t, body["trace"])
	assert.Equal(t, []any{
		map[string]any{"location": "body.database_id", "message": "is required"},
	}, body["errors"])
}
