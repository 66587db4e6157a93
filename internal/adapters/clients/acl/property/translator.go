package property

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/clients/acl/notionapi"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

var jsonNull = json.RawMessage("null")

// ToDTO converts a domain Property to the Notion property value sent on
// create. Computed types and unsupported values return a
// *domain.UnsupportedOperationError; a value whose shape does not match the
// declared type returns a *domain.ValidationError.
func ToDTO(p dompage.Property) (ValueDTO, error) {
	if _, ok := p.Value.(dompage.Unsupported); ok || p.Type.IsReadOnly() {
		return ValueDTO{}, &domain.UnsupportedOperationError{Kind: "property", Type: p.Type.String()}
	}
	if !p.Type.IsWritable() {
		return ValueDTO{}, domain.NewValidationError(
			"properties."+p.Name, fmt.Sprintf("unknown property type %q", p.Type))
	}
	if !p.Matches() {
		return ValueDTO{}, domain.NewValidationError(
			"properties."+p.Name, fmt.Sprintf("value does not match type %q", p.Type))
	}

	var payload any
	switch v := p.Value.(type) {
	case dompage.Text:
		if p.Type == dompage.PropertyTitle || p.Type == dompage.PropertyRichText {
			payload = notionapi.FromPlain(string(v))
		} else {
			payload = optionalString(string(v))
		}
	case dompage.Number:
		if v.Value != nil && (math.IsNaN(*v.Value) || math.IsInf(*v.Value, 0)) {
			return ValueDTO{}, domain.NewValidationError(
				"properties."+p.Name, "number must be finite")
		}
		payload = v.Value
	case dompage.Select:
		payload = toOptionDTO(v.Option)
	case dompage.MultiSelect:
		opts := make([]SelectOptionDTO, len(v))
		for i := range v {
			opts[i] = *toOptionDTO(&v[i])
		}
		payload = opts
	case dompage.Date:
		payload = toDateDTO(v)
	case dompage.Checkbox:
		payload = bool(v)
	case dompage.People:
		users := make([]UserDTO, len(v))
		for i, id := range v {
			users[i] = UserDTO{ID: id}
		}
		payload = users
	case dompage.Files:
		files := make([]notionapi.FileDTO, len(v))
		for i, f := range v {
			files[i] = notionapi.ExternalFile(f.Name, f.URL)
		}
		payload = files
	case dompage.Relation:
		refs := make([]PageRefDTO, len(v))
		for i, id := range v {
			refs[i] = PageRefDTO{ID: id}
		}
		payload = refs
	default:
		return ValueDTO{}, &domain.UnsupportedOperationError{Kind: "property", Type: p.Type.String()}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ValueDTO{}, fmt.Errorf("encoding property %q: %w", p.Name, err)
	}
	return ValueDTO{Type: p.Type.String(), Payload: raw}, nil
}

// ToDomain converts a Notion property value to a domain Property named name.
// Every writable and computed type is decoded; types this service does not
// model decode to dompage.Unsupported. A payload that does not fit its
// declared type returns a *domain.DecodeError.
func ToDomain(name string, dto ValueDTO) (dompage.Property, error) {
	typ := dompage.PropertyType(dto.Type)

	value, err := decodeValue(typ, dto.Payload)
	if err != nil {
		return dompage.Property{}, err
	}

	return dompage.Property{
		ID:    dto.ID,
		Name:  name,
		Type:  typ,
		Value: value,
	}, nil
}

// decodeValue is shared by top-level properties and rollup array entries.
func decodeValue(typ dompage.PropertyType, raw json.RawMessage) (dompage.PropertyValue, error) {
	if len(raw) == 0 {
		raw = jsonNull
	}

	switch typ {
	case dompage.PropertyTitle, dompage.PropertyRichText:
		runs, err := unmarshal[[]notionapi.RichTextDTO](typ, raw)
		return dompage.Text(notionapi.Plain(runs)), err

	case dompage.PropertyURL, dompage.PropertyEmail, dompage.PropertyPhoneNumber:
		s, err := unmarshal[*string](typ, raw)
		if s == nil {
			return dompage.Text(""), err
		}
		return dompage.Text(*s), err

	case dompage.PropertyNumber:
		n, err := unmarshal[*float64](typ, raw)
		return dompage.Number{Value: n}, err

	case dompage.PropertySelect, dompage.PropertyStatus:
		opt, err := unmarshal[*SelectOptionDTO](typ, raw)
		return dompage.Select{Option: toDomainOption(opt)}, err

	case dompage.PropertyMultiSelect:
		opts, err := unmarshal[[]SelectOptionDTO](typ, raw)
		out := make(dompage.MultiSelect, 0, len(opts))
		for i := range opts {
			out = append(out, *toDomainOption(&opts[i]))
		}
		return out, err

	case dompage.PropertyDate:
		d, err := unmarshal[*DateDTO](typ, raw)
		return toDomainDate(d), err

	case dompage.PropertyCheckbox:
		b, err := unmarshal[bool](typ, raw)
		return dompage.Checkbox(b), err

	case dompage.PropertyPeople:
		users, err := unmarshal[[]UserDTO](typ, raw)
		out := make(dompage.People, 0, len(users))
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out, err

	case dompage.PropertyFiles:
		return decodeFiles(raw)

	case dompage.PropertyRelation:
		refs, err := unmarshal[[]PageRefDTO](typ, raw)
		out := make(dompage.Relation, 0, len(refs))
		for _, r := range refs {
			out = append(out, r.ID)
		}
		return out, err

	case dompage.PropertyCreatedBy, dompage.PropertyLastEditedBy:
		u, err := unmarshal[*UserDTO](typ, raw)
		if u == nil {
			return dompage.UserRef(""), err
		}
		return dompage.UserRef(u.ID), err

	case dompage.PropertyCreatedTime, dompage.PropertyLastEditedTime:
		ts, err := unmarshal[string](typ, raw)
		return dompage.Timestamp(ts), err

	case dompage.PropertyFormula:
		return decodeFormula(raw)

	case dompage.PropertyRollup:
		return decodeRollup(raw)

	default:
		return dompage.Unsupported{Raw: append([]byte(nil), raw...)}, nil
	}
}

func decodeFiles(raw json.RawMessage) (dompage.PropertyValue, error) {
	files, err := unmarshal[[]notionapi.FileDTO](dompage.PropertyFiles, raw)
	if err != nil {
		return nil, err
	}

	out := make(dompage.Files, 0, len(files))
	for i := range files {
		url, ok := files[i].URL()
		if !ok {
			return nil, &domain.DecodeError{
				Type:   dompage.PropertyFiles.String(),
				Reason: fmt.Sprintf("file %q has no url", files[i].Name),
			}
		}
		out = append(out, dompage.FileRef{Name: files[i].Name, URL: url})
	}
	return out, nil
}

func decodeFormula(raw json.RawMessage) (dompage.PropertyValue, error) {
	f, err := unmarshal[*FormulaDTO](dompage.PropertyFormula, raw)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &domain.DecodeError{Type: dompage.PropertyFormula.String(), Reason: "missing result"}
	}

	out := dompage.Formula{Kind: dompage.FormulaKind(f.Type)}
	switch out.Kind {
	case dompage.FormulaBoolean:
		out.Boolean = f.Boolean
	case dompage.FormulaNumber:
		out.Number = f.Number
	case dompage.FormulaString:
		out.String = f.String
	case dompage.FormulaDate:
		if d := toDomainDate(f.Date); !d.IsZero() {
			out.Date = &d
		}
	default:
		return nil, &domain.DecodeError{
			Type:   dompage.PropertyFormula.String(),
			Reason: fmt.Sprintf("unknown result type %q", f.Type),
		}
	}
	return out, nil
}

// decodeRollup decodes array entries with decodeValue, so an entry of any
// supported type (including nested computed ones) keeps its full value.
// Tags other than array, number and date are kept with no payload.
func decodeRollup(raw json.RawMessage) (dompage.PropertyValue, error) {
	r, err := unmarshal[*RollupDTO](dompage.PropertyRollup, raw)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.DecodeError{Type: dompage.PropertyRollup.String(), Reason: "missing result"}
	}

	out := dompage.Rollup{Function: r.Function, Kind: dompage.RollupKind(r.Type)}
	switch out.Kind {
	case dompage.RollupArray:
		out.Items = make([]dompage.Property, 0, len(r.Array))
		for i, inner := range r.Array {
			typ := dompage.PropertyType(inner.Type)
			v, err := decodeValue(typ, inner.Payload)
			if err != nil {
				return nil, fmt.Errorf("rollup entry %d: %w", i, err)
			}
			out.Items = append(out.Items, dompage.Property{Type: typ, Value: v})
		}
	case dompage.RollupNumber:
		out.Number = r.Number
	case dompage.RollupDate:
		if d := toDomainDate(r.Date); !d.IsZero() {
			out.Date = &d
		}
	}
	return out, nil
}

// unmarshal decodes raw into T, reporting failures as a *domain.DecodeError
// for typ.
func unmarshal[T any](typ dompage.PropertyType, raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &domain.DecodeError{Type: typ.String(), Reason: err.Error()}
	}
	return v, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toOptionDTO(o *dompage.SelectOption) *SelectOptionDTO {
	if o == nil {
		return nil
	}
	color := o.Color
	if color == "" {
		color = dompage.DefaultColor
	}
	return &SelectOptionDTO{Name: o.Name, Color: color}
}

func toDomainOption(o *SelectOptionDTO) *dompage.SelectOption {
	if o == nil {
		return nil
	}
	return &dompage.SelectOption{Name: o.Name, Color: o.Color}
}

func toDateDTO(d dompage.Date) *DateDTO {
	if d.IsZero() {
		return nil
	}
	return &DateDTO{Start: d.Start, End: optionalString(d.End)}
}

func toDomainDate(d *DateDTO) dompage.Date {
	if d == nil {
		return dompage.Date{}
	}
	out := dompage.Date{Start: d.Start}
	if d.End != nil {
		out.End = *d.End
	}
	return out
}
