// Package acl implements the Anti-Corruption Layer between the Notion API and
// the page domain. Resource translators live in subpackages (acl/icon,
// acl/property, acl/block, acl/page); the HTTP requester, Notion error
// mapping and the DocumentClient adapter live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// Notion error codes, from the "code" member of the error object.
const (
	CodeInvalidJSON         = "invalid_json"
	CodeInvalidRequestURL   = "invalid_request_url"
	CodeInvalidRequest      = "invalid_request"
	CodeValidation          = "validation_error"
	CodeMissingVersion      = "missing_version"
	CodeUnauthorized        = "unauthorized"
	CodeRestrictedResource  = "restricted_resource"
	CodeObjectNotFound      = "object_not_found"
	CodeConflict            = "conflict_error"
	CodeRateLimited         = "rate_limited"
	CodeInternalServerError = "internal_server_error"
	CodeServiceUnavailable  = "service_unavailable"
	CodeDatabaseUnavailable = "database_connection_unavailable"
	CodeGatewayTimeout      = "gateway_timeout"
)

// errorObject is the body Notion returns for every non-2xx response.
type errorObject struct {
	Object    string `json:"object"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// APIError is a Notion error response. It unwraps to the domain sentinel
// matching its code (or, failing that, its status) so callers can test
// errors.Is(err, domain.ErrNotFound) without knowing Notion codes.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	sentinel  error
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: %s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// TranslateHTTPError maps a Notion error response to an *APIError wrapping
// the matching domain sentinel. Bodies that are not a Notion error object
// fall back to the HTTP status text.
func TranslateHTTPError(resp *http.Response) error {
	eo := parseErrorObject(resp)

	msg := eo.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		Status:    resp.StatusCode,
		Code:      eo.Code,
		Message:   msg,
		RequestID: eo.RequestID,
		sentinel:  sentinelFor(eo.Code, resp.StatusCode),
	}
}

// sentinelFor prefers the Notion code and falls back to the status.
// Unknown 4xx statuses map to nil, leaving only the APIError itself.
func sentinelFor(code string, status int) error {
	switch code {
	case CodeObjectNotFound:
		return domain.ErrNotFound
	case CodeInvalidJSON, CodeInvalidRequestURL, CodeInvalidRequest, CodeValidation, CodeMissingVersion:
		return domain.ErrValidation
	case CodeUnauthorized, CodeRestrictedResource:
		return domain.ErrForbidden
	case CodeConflict:
		return domain.ErrConflict
	case CodeRateLimited, CodeInternalServerError, CodeServiceUnavailable,
		CodeDatabaseUnavailable, CodeGatewayTimeout:
		return domain.ErrUnavailable
	}

	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case status == http.StatusConflict:
		return domain.ErrConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// parseErrorObject reads and parses a Notion error object from the response.
// Returns an empty errorObject if the body is missing or not an error object.
func parseErrorObject(resp *http.Response) errorObject {
	if resp.Body == nil {
		return errorObject{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return errorObject{}
	}

	var eo errorObject
	if err := json.Unmarshal(body, &eo); err != nil || eo.Object != "error" {
		return errorObject{}
	}
	return eo
}
