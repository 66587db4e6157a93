package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

const (
	testDatabaseID = "c7c1007a-d112-4b8c-a621-a769adaf7dda"
	testPageID     = "6f48b54c-094d-4339-aa90-89f9985fb6c7"
)

// withChiParams attaches URL params the way chi's router would.
func withChiParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for name, value := range params {
		routeCtx.URLParams.Add(name, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func validPage() *page.Page {
	return &page.Page{
		ID:   testPageID,
		Icon: page.Icon{Kind: page.IconEmoji, Value: "🚀"},
		Properties: []page.Property{
			{Name: "Name", Type: page.PropertyTitle, Value: page.Text("My Page")},
			{Name: "Number", Type: page.PropertyNumber, Value: page.NumberOf(123.45)},
		},
		Blocks: []page.Block{
			{ID: "86e0df54-07e2-4ab7-ad33-0924fcf8c895", Type: page.BlockHeading1, Value: page.PlainText("Title 1")},
		},
	}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
