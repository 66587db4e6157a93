// Package notionapi holds the wire types shared by several Notion API
// resources: rich-text runs and file objects. Resource-specific DTOs live in
// the sibling translator packages (acl/icon, acl/property, acl/block, acl/page).
package notionapi

import "strings"

// RichTextTypeText is the only rich-text run type this service writes.
const RichTextTypeText = "text"

// RichTextDTO matches one run of the Notion rich text array. Annotations,
// mentions and equations are not modeled; they are dropped on read.
type RichTextDTO struct {
	Type      string   `json:"type"`
	Text      *TextDTO `json:"text,omitempty"`
	PlainText string   `json:"plain_text,omitempty"`
	Href      *string  `json:"href,omitempty"`
}

// TextDTO is the payload of a "text" rich-text run.
type TextDTO struct {
	Content string   `json:"content"`
	Link    *LinkDTO `json:"link,omitempty"`
}

// LinkDTO is an inline hyperlink inside a text run.
type LinkDTO struct {
	URL string `json:"url"`
}

// FromPlain wraps s into a single unformatted text run. An empty string
// yields an empty, non-nil array so the field is still sent.
func FromPlain(s string) []RichTextDTO {
	if s == "" {
		return []RichTextDTO{}
	}
	return []RichTextDTO{{
		Type: RichTextTypeText,
		Text: &TextDTO{Content: s},
	}}
}

// Plain concatenates the plain text of every run.
func Plain(runs []RichTextDTO) string {
	var b strings.Builder
	for i := range runs {
		b.WriteString(runs[i].plain())
	}
	return b.String()
}

// First returns the plain text of the first run, or "" when there is none.
func First(runs []RichTextDTO) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].plain()
}

// plain prefers the service-computed plain_text and falls back to the text
// content for runs built locally.
func (r *RichTextDTO) plain() string {
	if r.PlainText != "" {
		return r.PlainText
	}
	if r.Text != nil {
		return r.Text.Content
	}
	return ""
}
