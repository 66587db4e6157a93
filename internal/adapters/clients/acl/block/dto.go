// Package block implements the Anti-Corruption Layer translators for Notion
// content blocks.
package block

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"
)

// ObjectBlock is the object tag of every block.
const ObjectBlock = "block"

// DTO matches a Notion block object. Like property values, the payload sits
// under a key equal to Type and is kept raw until the translator decodes it.
type DTO struct {
	ID          string
	Type        string
	HasChildren bool
	Payload     json.RawMessage
}

// MarshalJSON writes {"object":"block", "id"?, "type", <type>: payload}.
func (d DTO) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"object": ObjectBlock,
		"type":   d.Type,
	}
	if d.ID != "" {
		fields["id"] = d.ID
	}
	if d.HasChildren {
		fields["has_children"] = true
	}

	payload := d.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	fields[d.Type] = payload

	return json.Marshal(fields)
}

// UnmarshalJSON reads the block envelope and keeps the field named by type
// as the raw payload.
func (d *DTO) UnmarshalJSON(data []byte) error {
	var env struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("block %s: %w", env.ID, err)
	}

	*d = DTO{
		ID:          env.ID,
		Type:        env.Type,
		HasChildren: env.HasChildren,
	}
	if env.Type != "" {
		d.Payload = fields[env.Type]
	}
	return nil
}

// TextDTO is the payload of text-bearing blocks. Checked is only sent by
// to_do blocks and is ignored on read.
type TextDTO struct {
	RichText []notionapi.RichTextDTO `json:"rich_text"`
	Checked  *bool                   `json:"checked,omitempty"`
}

// CodeDTO is the payload of code blocks.
type CodeDTO struct {
	RichText []notionapi.RichTextDTO `json:"rich_text"`
	Language string                  `json:"language"`
}

// DividerDTO is the empty payload of divider blocks.
type DividerDTO struct{}
