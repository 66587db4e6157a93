// Package icon implements the Anti-Corruption Layer translator for Notion
// page icons.
package icon

import "github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"

// Icon type tags used by the Notion API.
const (
	TypeEmoji    = "emoji"
	TypeExternal = "external"
	TypeFile     = "file"
)

// DTO matches the Notion icon object. Only the field named by Type is set.
type DTO struct {
	Type     string                 `json:"type"`
	Emoji    string                 `json:"emoji,omitempty"`
	External *notionapi.ExternalDTO `json:"external,omitempty"`
	File     *notionapi.HostedDTO   `json:"file,omitempty"`
}
