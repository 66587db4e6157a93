package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"
	aclpage "github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/page"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
	"github.com/jsamuelsen11/notion-page-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// Compile-time interface check.
var _ ports.DocumentClient = (*DocumentClient)(nil)

// Operation names carried by ExternalServiceError.
const (
	opCreatePage    = "pages.create"
	opRetrievePage  = "pages.retrieve"
	opListBlockKids = "blocks.children.list"
)

// DocumentClient is the outbound adapter for the Notion API. It implements
// [ports.DocumentClient].
//
// Requests are built with the ACL assembler in [aclpage] before anything is
// sent, so a page that cannot be encoded never reaches the network. HTTP
// failures are mapped by [TranslateHTTPError] and wrapped in a
// [domain.ExternalServiceError]; translator errors are returned unwrapped.
//
// The underlying [httpclient.Client] provides circuit breaking, rate
// limiting, retry with exponential backoff, and OpenTelemetry tracing for
// every outbound call.
type DocumentClient struct {
	req      *Requester
	pageSize int
	logger   *slog.Logger
}

// NewDocumentClient creates a DocumentClient that sends requests through the
// given [httpclient.Client]. The client's BaseURL should point to the Notion
// API root ("https://api.notion.com"). pageSize bounds the single
// block-children call made by GetPage.
func NewDocumentClient(client *httpclient.Client, creds Credentials, pageSize int, logger *slog.Logger) *DocumentClient {
	return &DocumentClient{
		req:      NewRequester(client, creds, logger),
		pageSize: pageSize,
		logger:   logger,
	}
}

// CreatePage sends POST /v1/pages with the assembled body and returns the id
// Notion assigned. Only the id is read from the response.
func (c *DocumentClient) CreatePage(ctx context.Context, databaseID string, p *dompage.Page) (string, error) {
	body, err := aclpage.ToCreatePageRequest(notionapi.NormalizeID(databaseID), p)
	if err != nil {
		return "", err
	}

	var ref aclpage.PageDTO
	if err := c.req.Do(ctx, http.MethodPost, "/v1/pages", http.StatusOK, body, &ref); err != nil {
		return "", external(ctx, opCreatePage, err)
	}
	if ref.ID == "" {
		return "", &domain.DecodeError{Type: "page", Reason: "create response has no id"}
	}
	return ref.ID, nil
}

// GetPage sends GET /v1/pages/{id} and then one
// GET /v1/blocks/{id}/children?page_size=N, and merges both responses.
// Blocks beyond the first page of results are not fetched.
func (c *DocumentClient) GetPage(ctx context.Context, pageID string) (*dompage.Page, error) {
	id := url.PathEscape(notionapi.NormalizeID(pageID))

	var pageDTO aclpage.PageDTO
	if err := c.req.Do(ctx, http.MethodGet, "/v1/pages/"+id, http.StatusOK, nil, &pageDTO); err != nil {
		return nil, external(ctx, opRetrievePage, err)
	}

	q := url.Values{}
	q.Set("page_size", strconv.Itoa(c.pageSize))

	var list aclpage.BlockListDTO
	path := fmt.Sprintf("/v1/blocks/%s/children?%s", id, q.Encode())
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &list); err != nil {
		return nil, external(ctx, opListBlockKids, err)
	}

	if list.HasMore {
		c.logger.DebugContext(ctx, "block children truncated to first page",
			slog.String("page_id", pageID),
			slog.Int("page_size", c.pageSize),
		)
	}

	return aclpage.ToDomainPage(&pageDTO, &list)
}

// external wraps a requester failure. Only a cancellation or deadline of
// the caller's own ctx is passed through unchanged; the HTTP client's
// timeout is a transport failure like any other.
func external(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	return &domain.ExternalServiceError{Operation: op, Err: err}
}
