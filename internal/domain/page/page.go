// Package page defines the document aggregate exchanged with the document
// service: a page with an icon, an ordered list of typed properties, and an
// ordered list of typed content blocks.
package page

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
)

// Page is the document-level aggregate. ID is empty until the page has been
// created. Property order is kept for reconstruction; block order is the
// visual order of the document.
type Page struct {
	ID         string
	Icon       Icon
	Properties []Property
	Blocks     []Block
}

// Property returns the property with the given name.
func (p *Page) Property(name string) (Property, bool) {
	for _, prop := range p.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// CheckDuplicates returns a *domain.DuplicatePropertyError for the first
// property name that appears twice, or nil.
func (p *Page) CheckDuplicates() error {
	seen := make(map[string]struct{}, len(p.Properties))
	for _, prop := range p.Properties {
		if _, ok := seen[prop.Name]; ok {
			return &domain.DuplicatePropertyError{Name: prop.Name}
		}
		seen[prop.Name] = struct{}{}
	}
	return nil
}

// Validate runs the pre-flight checks for a page about to be created.
// Duplicate names yield a *domain.DuplicatePropertyError; read-only property
// or icon types yield a *domain.UnsupportedOperationError; anything else
// yields a *domain.ValidationError with per-field details.
func (p *Page) Validate() error {
	if err := p.CheckDuplicates(); err != nil {
		return err
	}

	if !p.Icon.IsZero() && !p.Icon.Kind.IsWritable() {
		return &domain.UnsupportedOperationError{Kind: "icon", Type: p.Icon.Kind.String()}
	}

	fields := make(map[string]string)

	if !p.Icon.IsZero() && strings.TrimSpace(p.Icon.Value) == "" {
		fields["icon.value"] = domain.MsgRequired
	}

	for i, prop := range p.Properties {
		key := fmt.Sprintf("properties[%d]", i)
		switch {
		case strings.TrimSpace(prop.Name) == "":
			fields[key+".name"] = domain.MsgRequired
		case prop.Type.IsReadOnly(), isUnsupported(prop.Value):
			return &domain.UnsupportedOperationError{Kind: "property", Type: prop.Type.String()}
		case !prop.Type.IsWritable():
			fields[key+".type"] = fmt.Sprintf("unknown property type %q", prop.Type)
		case !prop.Matches():
			fields[key+".value"] = fmt.Sprintf("does not match type %q", prop.Type)
		}
	}

	for i, b := range p.Blocks {
		key := fmt.Sprintf("blocks[%d]", i)
		switch {
		case !b.Type.IsKnown():
			fields[key+".type"] = fmt.Sprintf("unknown block type %q", b.Type)
		case !b.Matches():
			fields[key+".value"] = fmt.Sprintf("does not match type %q", b.Type)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func isUnsupported(v PropertyValue) bool {
	_, ok := v.(Unsupported)
	return ok
}
