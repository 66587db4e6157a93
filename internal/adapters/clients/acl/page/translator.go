package page

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/block"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/icon"
	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/property"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

const parentTypeDatabase = "database_id"

// ToCreatePageRequest builds the create-page body for p under the database
// databaseID. Duplicate property names are rejected before anything is
// encoded. Translator errors are returned wrapped with the offending
// property name or block index and keep their domain type.
func ToCreatePageRequest(databaseID string, p *dompage.Page) (*CreatePageRequestDTO, error) {
	if strings.TrimSpace(databaseID) == "" {
		return nil, domain.NewValidationError("database_id", domain.MsgRequired)
	}
	if p == nil {
		return nil, domain.NewValidationError("page", domain.MsgRequired)
	}
	if err := p.CheckDuplicates(); err != nil {
		return nil, err
	}

	ic, err := icon.ToDTO(p.Icon)
	if err != nil {
		return nil, err
	}

	props := make(property.PropertiesDTO, 0, len(p.Properties))
	for _, prop := range p.Properties {
		v, err := property.ToDTO(prop)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		props = append(props, property.NamedValueDTO{Name: prop.Name, Value: v})
	}

	children := make([]block.DTO, 0, len(p.Blocks))
	for i, b := range p.Blocks {
		dto, err := block.ToDTO(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		children = append(children, dto)
	}

	return &CreatePageRequestDTO{
		Parent:     ParentDTO{Type: parentTypeDatabase, DatabaseID: databaseID},
		Icon:       ic,
		Properties: props,
		Children:   children,
	}, nil
}

// ToDomainPage merges a page response and the first page of its block
// children into the domain aggregate. Every property is decoded, read-only
// ones included, in response order. Blocks keep the listing order and their
// ids; nested children are not followed.
func ToDomainPage(pageDTO *PageDTO, blocks *BlockListDTO) (*dompage.Page, error) {
	if pageDTO == nil {
		return nil, &domain.DecodeError{Type: "page", Reason: "empty response"}
	}

	out := &dompage.Page{
		ID:         pageDTO.ID,
		Icon:       icon.ToDomain(pageDTO.Icon),
		Properties: make([]dompage.Property, 0, len(pageDTO.Properties)),
		Blocks:     []dompage.Block{},
	}

	for _, nv := range pageDTO.Properties {
		prop, err := property.ToDomain(nv.Name, nv.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", nv.Name, err)
		}
		out.Properties = append(out.Properties, prop)
	}

	if blocks == nil {
		return out, nil
	}

	out.Blocks = make([]dompage.Block, 0, len(blocks.Results))
	for i, dto := range blocks.Results {
		b, err := block.ToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, dto.ID, err)
		}
		out.Blocks = append(out.Blocks, b)
	}

	return out, nil
}
