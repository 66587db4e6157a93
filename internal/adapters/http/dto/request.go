package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// CreatePageRequest represents the JSON body for creating a page:
//
//	{"icon": {"type": "emoji", "value": "🚀"},
//	 "properties": [{"name": "Name", "type": "title", "value": "My Page"}],
//	 "blocks": [{"type": "paragraph", "value": "Hello"}]}
type CreatePageRequest struct {
	Icon       *IconBody         `json:"icon,omitempty"`
	Properties []PropertyRequest `json:"properties"`
	Blocks     []BlockRequest    `json:"blocks"`
}

// IconBody is the generic icon shape shared by requests and responses.
type IconBody struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PropertyRequest is one entry of CreatePageRequest.Properties. Value is
// interpreted according to Type.
type PropertyRequest struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// BlockRequest is one entry of CreatePageRequest.Blocks. Value is
// interpreted according to Type.
type BlockRequest struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Validate checks the request envelope. Value shapes are checked by
// ToDomain. Returns a *domain.ValidationError if any checks fail.
func (r *CreatePageRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Icon),
		validation.Field(&r.Properties),
		validation.Field(&r.Blocks),
	))
}

// Validate checks that the icon names a kind and carries a value.
func (b IconBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Type, validation.Required),
		validation.Field(&b.Value, validation.Required),
	)
}

// Validate checks that the property is named and of a known type.
func (p PropertyRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.By(knownPropertyType)),
	)
}

// Validate checks that the block is of a known type.
func (b BlockRequest) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Type, validation.Required, validation.By(knownBlockType)),
	)
}

func knownPropertyType(v any) error {
	s, _ := v.(string)
	if s == "" || page.PropertyType(s).IsKnown() {
		return nil
	}
	return fmt.Errorf("unknown property type %q", s)
}

func knownBlockType(v any) error {
	s, _ := v.(string)
	if s == "" || page.BlockType(s).IsKnown() {
		return nil
	}
	return fmt.Errorf("unknown block type %q", s)
}

// ToDomain converts the request to a page aggregate. Each value is decoded
// according to its declared type; a value of the wrong shape returns a
// *domain.ValidationError naming its position. Read-only property types
// are carried through so the page manager can reject them.
func (r *CreatePageRequest) ToDomain() (*page.Page, error) {
	p := &page.Page{
		Properties: make([]page.Property, 0, len(r.Properties)),
		Blocks:     make([]page.Block, 0, len(r.Blocks)),
	}

	if r.Icon != nil {
		p.Icon = page.Icon{Kind: page.IconKind(r.Icon.Type), Value: r.Icon.Value}
	}

	fields := make(map[string]string)

	for i, pr := range r.Properties {
		t := page.PropertyType(pr.Type)
		v, err := decodePropertyValue(t, pr.Value)
		if err != nil {
			fields[fmt.Sprintf("properties.%d.value", i)] = err.Error()
			continue
		}
		p.Properties = append(p.Properties, page.Property{Name: pr.Name, Type: t, Value: v})
	}

	for i, br := range r.Blocks {
		t := page.BlockType(br.Type)
		v, err := decodeBlockValue(t, br.Value)
		if err != nil {
			fields[fmt.Sprintf("blocks.%d.value", i)] = err.Error()
			continue
		}
		p.Blocks = append(p.Blocks, page.Block{Type: t, Value: v})
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return p, nil
}

// asValidationError flattens ozzo validation errors into a
// *domain.ValidationError keyed by dotted JSON path ("properties.0.name").
// Internal ozzo errors are returned as-is.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string)
	flattenErrors("", errs, fields)
	return &domain.ValidationError{Fields: fields}
}

func flattenErrors(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flattenErrors(key, nested, out)
			continue
		}
		out[key] = err.Error()
	}
}
