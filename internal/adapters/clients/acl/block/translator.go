package block

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// ToDTO converts a domain Block to the Notion block object sent as a page
// child. Unknown block types and values that do not match their type return
// a *domain.ValidationError.
func ToDTO(b dompage.Block) (DTO, error) {
	if !b.Type.IsKnown() {
		return DTO{}, domain.NewValidationError("blocks.type", fmt.Sprintf("unknown block type %q", b.Type))
	}
	if !b.Matches() {
		return DTO{}, domain.NewValidationError("blocks.value", fmt.Sprintf("value does not match type %q", b.Type))
	}

	var payload any
	switch v := b.Value.(type) {
	case dompage.PlainText:
		payload = TextDTO{RichText: notionapi.FromPlain(string(v))}
	case dompage.Media:
		if v.Name != "" && b.Type != dompage.BlockFile {
			return DTO{}, domain.NewValidationError("blocks.value.name",
				fmt.Sprintf("only %q blocks carry a name", dompage.BlockFile))
		}
		payload = notionapi.ExternalFile(v.Name, v.URL)
	case dompage.Code:
		payload = CodeDTO{RichText: notionapi.FromPlain(v.Content), Language: v.Language}
	case dompage.Empty:
		payload = DividerDTO{}
	default:
		return DTO{}, &domain.UnsupportedOperationError{Kind: "block", Type: b.Type.String()}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return DTO{}, fmt.Errorf("encoding %s block: %w", b.Type, err)
	}
	return DTO{Type: b.Type.String(), Payload: raw}, nil
}

// ToDomain converts a Notion block object to a domain Block carrying its
// external id. Text blocks keep only the first rich-text run. Block types
// this service does not model decode to dompage.UnsupportedBlock instead of
// failing, so a read survives new block kinds. A payload that does not fit
// a modeled type returns a *domain.DecodeError.
func ToDomain(dto DTO) (dompage.Block, error) {
	typ := dompage.BlockType(dto.Type)
	out := dompage.Block{ID: dto.ID, Type: typ}

	raw := dto.Payload
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}

	switch {
	case typ.IsText():
		p, err := unmarshal[TextDTO](typ, raw)
		if err != nil {
			return dompage.Block{}, err
		}
		out.Value = dompage.PlainText(notionapi.First(p.RichText))

	case typ.IsMedia():
		f, err := unmarshal[notionapi.FileDTO](typ, raw)
		if err != nil {
			return dompage.Block{}, err
		}
		url, ok := f.URL()
		if !ok {
			return dompage.Block{}, &domain.DecodeError{Type: typ.String(), Reason: "file has no url"}
		}
		m := dompage.Media{URL: url}
		if typ == dompage.BlockFile {
			m.Name = f.Name
		}
		out.Value = m

	case typ == dompage.BlockCode:
		c, err := unmarshal[CodeDTO](typ, raw)
		if err != nil {
			return dompage.Block{}, err
		}
		out.Value = dompage.Code{Content: notionapi.Plain(c.RichText), Language: c.Language}

	case typ == dompage.BlockDivider:
		out.Value = dompage.Empty{}

	default:
		out.Value = dompage.UnsupportedBlock{Raw: append([]byte(nil), raw...)}
	}

	return out, nil
}

func unmarshal[T any](typ dompage.BlockType, raw json.RawMessage) (T, error) {
	var v T
	if string(raw) == "null" {
		return v, &domain.DecodeError{Type: typ.String(), Reason: "missing payload"}
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &domain.DecodeError{Type: typ.String(), Reason: err.Error()}
	}
	return v, nil
}
