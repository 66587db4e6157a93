package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists, in lowercase, the request headers that carry
// credentials. The HTTP middleware masks them when dumping headers and the
// handler masks any attribute with the same name.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

// Attribute names masked wherever they appear, on top of SensitiveHeaders.
// auth_token matches the client.auth_token config key.
var sensitiveFields = []string{"auth_token", "password", "secret", "token"}

var sensitivePrefixes = []string{"api_key", "secret_"}

// Value patterns masked inside any string attribute.
var sensitiveValues = []*regexp.Regexp{
	// Notion integration secrets: legacy "secret_..." and current "ntn_...".
	regexp.MustCompile(`\b(secret|ntn)_[a-zA-Z0-9]{20,}`),
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// JWTs; 10+ chars per segment keeps version strings like 2022.06.28 out.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
}

// redactor builds the masq ReplaceAttr hook installed on every handler.
func redactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+len(sensitivePrefixes)+len(sensitiveValues))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range sensitiveValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return masq.New(opts...)
}
