package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
)

func notionResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTranslateHTTPError_ByStatus(t *testing.T) {
	t.Parallel()

	sentinels := map[int]error{
		http.StatusBadRequest:          domain.ErrValidation,
		http.StatusUnprocessableEntity: domain.ErrValidation,
		http.StatusUnauthorized:        domain.ErrForbidden,
		http.StatusForbidden:           domain.ErrForbidden,
		http.StatusNotFound:            domain.ErrNotFound,
		http.StatusConflict:            domain.ErrConflict,
		http.StatusTooManyRequests:     domain.ErrUnavailable,
		http.StatusInternalServerError: domain.ErrUnavailable,
		http.StatusBadGateway:          domain.ErrUnavailable,
		http.StatusServiceUnavailable:  domain.ErrUnavailable,
		http.StatusGatewayTimeout:      domain.ErrUnavailable,
	}

	for status, want := range sentinels {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(notionResponse(status, ""))

			require.ErrorIs(t, got, want)
			assert.Contains(t, got.Error(), http.StatusText(status))
		})
	}
}

func TestTranslateHTTPError_ErrorObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		want     error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "page not shared with the integration",
			status:   http.StatusNotFound,
			body:     `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page with ID: 9bd15f8d.","request_id":"3f1d2c4e"}`,
			want:     domain.ErrNotFound,
			wantCode: CodeObjectNotFound,
			wantMsg:  "Could not find page with ID: 9bd15f8d.",
		},
		{
			name:     "property value of the wrong shape",
			status:   http.StatusBadRequest,
			body:     `{"object":"error","status":400,"code":"validation_error","message":"body.properties.Price.number should be a number."}`,
			want:     domain.ErrValidation,
			wantCode: CodeValidation,
			wantMsg:  "body.properties.Price.number should be a number.",
		},
		{
			name:     "missing Notion-Version header",
			status:   http.StatusBadRequest,
			body:     `{"object":"error","status":400,"code":"missing_version","message":"Notion-Version header failed validation."}`,
			want:     domain.ErrValidation,
			wantCode: CodeMissingVersion,
			wantMsg:  "Notion-Version header failed validation.",
		},
		{
			name:     "integration lacks capability",
			status:   http.StatusForbidden,
			body:     `{"object":"error","status":403,"code":"restricted_resource","message":"Insufficient permissions for this endpoint."}`,
			want:     domain.ErrForbidden,
			wantCode: CodeRestrictedResource,
			wantMsg:  "Insufficient permissions for this endpoint.",
		},
		{
			name:     "code takes precedence over status",
			status:   http.StatusBadRequest,
			body:     `{"object":"error","status":409,"code":"conflict_error","message":"Conflict occurred while saving."}`,
			want:     domain.ErrConflict,
			wantCode: CodeConflict,
			wantMsg:  "Conflict occurred while saving.",
		},
		{
			name:     "database connection unavailable",
			status:   http.StatusServiceUnavailable,
			body:     `{"object":"error","status":503,"code":"database_connection_unavailable","message":"Unavailable."}`,
			want:     domain.ErrUnavailable,
			wantCode: CodeDatabaseUnavailable,
			wantMsg:  "Unavailable.",
		},
		{
			name:    "json that is not an error object",
			status:  http.StatusNotFound,
			body:    `{"object":"page","id":"9bd15f8d"}`,
			want:    domain.ErrNotFound,
			wantMsg: "Not Found",
		},
		{
			name:    "html from a proxy",
			status:  http.StatusBadGateway,
			body:    "<html><body>502 Bad Gateway</body></html>",
			want:    domain.ErrUnavailable,
			wantMsg: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(notionResponse(tt.status, tt.body))
			require.ErrorIs(t, got, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, got, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestTranslateHTTPError_KeepsRequestID(t *testing.T) {
	t.Parallel()

	got := TranslateHTTPError(notionResponse(http.StatusNotFound,
		`{"object":"error","status":404,"code":"object_not_found","message":"gone","request_id":"3f1d2c4e"}`))

	var apiErr *APIError
	require.ErrorAs(t, got, &apiErr)
	assert.Equal(t, "3f1d2c4e", apiErr.RequestID)
	assert.Equal(t, "notion: object_not_found (404): gone", apiErr.Error())
}

func TestTranslateHTTPError_UnmappedStatus(t *testing.T) {
	t.Parallel()

	got := TranslateHTTPError(notionResponse(http.StatusTeapot, ""))

	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrValidation, domain.ErrConflict,
		domain.ErrForbidden, domain.ErrUnavailable,
	} {
		assert.NotErrorIs(t, got, sentinel)
	}
	assert.Nil(t, errors.Unwrap(got))
	assert.Equal(t, "notion: status 418: I'm a teapot", got.Error())
}

func TestTranslateHTTPError_NilBody(t *testing.T) {
	t.Parallel()

	resp := notionResponse(http.StatusConflict, "")
	resp.Body = nil

	assert.ErrorIs(t, TranslateHTTPError(resp), domain.ErrConflict)
}
