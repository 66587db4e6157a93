package icon

import (
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// ToDTO converts a domain Icon to the Notion icon object. A zero icon yields
// nil so the field is omitted. Only emoji and external icons can be written;
// anything else returns a *domain.UnsupportedOperationError.
func ToDTO(ic dompage.Icon) (*DTO, error) {
	if ic.IsZero() {
		return nil, nil //nolint:nilnil // absent icon is not an error
	}

	switch ic.Kind {
	case dompage.IconEmoji:
		return &DTO{Type: TypeEmoji, Emoji: ic.Value}, nil
	case dompage.IconExternal:
		return &DTO{Type: TypeExternal, External: &notionapi.ExternalDTO{URL: ic.Value}}, nil
	default:
		return nil, &domain.UnsupportedOperationError{Kind: "icon", Type: ic.Kind.String()}
	}
}

// ToDomain converts a Notion icon object to a domain Icon. It never fails:
// kinds this service does not model decode to dompage.IconOpaque carrying
// the raw type tag. A nil DTO yields the zero Icon.
func ToDomain(dto *DTO) dompage.Icon {
	if dto == nil {
		return dompage.Icon{}
	}

	switch dto.Type {
	case TypeEmoji:
		return dompage.Icon{Kind: dompage.IconEmoji, Value: dto.Emoji}
	case TypeExternal:
		if dto.External != nil {
			return dompage.Icon{Kind: dompage.IconExternal, Value: dto.External.URL}
		}
	case TypeFile:
		if dto.File != nil {
			return dompage.Icon{Kind: dompage.IconFile, Value: dto.File.URL}
		}
	}
	return dompage.Icon{Kind: dompage.IconOpaque, Value: dto.Type}
}
