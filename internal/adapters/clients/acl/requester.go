package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/logging"
)

const (
	headerAuthorization = "Authorization"
	headerNotionVersion = "Notion-Version"
	headerContentType   = "Content-Type"
)

// Credentials authenticate requests to the Notion API.
type Credentials struct {
	// Token is the integration secret, sent as a bearer token.
	Token string
	// Version pins the API schema via the Notion-Version header.
	Version string
}

// Requester sends JSON requests to the Notion API through the resilient
// httpclient and turns Notion error objects into *APIError values.
type Requester struct {
	client *httpclient.Client
	creds  Credentials
	logger *slog.Logger
}

// NewRequester returns a Requester that authenticates with creds.
func NewRequester(client *httpclient.Client, creds Credentials, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{client: client, creds: creds, logger: logger}
}

// BaseURL returns the base URL of the underlying HTTP client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// Do sends method path with reqBody encoded as JSON (omitted when nil) and
// decodes a wantStatus response into respBody (skipped when nil). Any other
// status is returned as an *APIError; that includes a retryable status the
// client gave up on, so the caller sees Notion's own error code.
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	req, err := r.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return err
	}

	log := logging.FromContextOr(ctx, r.logger).With(
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := r.client.Do(ctx, req)
	if resp == nil {
		log.ErrorContext(ctx, "notion request failed", slog.Any("error", err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer r.drain(ctx, resp)

	if resp.StatusCode != wantStatus {
		apiErr := TranslateHTTPError(resp)
		log.ErrorContext(ctx, "notion returned an error",
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
			slog.Any("error", apiErr),
		)
		return apiErr
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}

	if reqBody != nil {
		req.Header.Set(headerContentType, "application/json")
	}
	if r.creds.Token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+r.creds.Token)
	}
	if r.creds.Version != "" {
		req.Header.Set(headerNotionVersion, r.creds.Version)
	}
	return req, nil
}

// drain closes the body; a failed close only costs the connection.
func (r *Requester) drain(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.FromContextOr(ctx, r.logger).DebugContext(ctx, "closing notion response body", slog.Any("error", err))
	}
}
