package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

// OptionBody is the generic shape of a select, status or multi_select option.
type OptionBody struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateBody is the object form of a date value. The string form
// ("2024-05-24") is accepted on input and emitted when End is empty.
type DateBody struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// FileBody is the generic shape of a file reference.
type FileBody struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// CodeBody is the generic shape of a code block value.
type CodeBody struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

var errNotNull = errors.New("must not be null")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeInto unmarshals raw into dst, describing the expected shape on
// failure.
func decodeInto(raw json.RawMessage, dst any, want string) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("must be %s", want)
	}
	return nil
}

// decodePropertyValue interprets a generic request value according to t.
// Types this service cannot write decode to page.Unsupported carrying the
// raw value.
func decodePropertyValue(t page.PropertyType, raw json.RawMessage) (page.PropertyValue, error) {
	switch t {
	case page.PropertyTitle, page.PropertyRichText, page.PropertyURL,
		page.PropertyEmail, page.PropertyPhoneNumber:
		if isNull(raw) {
			return page.Text(""), nil
		}
		var s string
		if err := decodeInto(raw, &s, "a string"); err != nil {
			return nil, err
		}
		return page.Text(s), nil

	case page.PropertyNumber:
		if isNull(raw) {
			return page.Number{}, nil
		}
		var f float64
		if err := decodeInto(raw, &f, "a number"); err != nil {
			return nil, err
		}
		return page.NumberOf(f), nil

	case page.PropertySelect, page.PropertyStatus:
		if isNull(raw) {
			return page.Select{}, nil
		}
		var o OptionBody
		if err := decodeInto(raw, &o, "an object with name and color"); err != nil {
			return nil, err
		}
		if o.Name == "" {
			return nil, errors.New("option name is required")
		}
		return page.Selected(o.Name, o.Color), nil

	case page.PropertyMultiSelect:
		var opts []OptionBody
		if !isNull(raw) {
			if err := decodeInto(raw, &opts, "a list of options"); err != nil {
				return nil, err
			}
		}
		ms := make(page.MultiSelect, 0, len(opts))
		for _, o := range opts {
			ms = append(ms, page.SelectOption{Name: o.Name, Color: o.Color})
		}
		return ms, nil

	case page.PropertyDate:
		return decodeDate(raw)

	case page.PropertyCheckbox:
		if isNull(raw) {
			return nil, errNotNull
		}
		var b bool
		if err := decodeInto(raw, &b, "a boolean"); err != nil {
			return nil, err
		}
		return page.Checkbox(b), nil

	case page.PropertyPeople:
		ids, err := decodeIDs(raw)
		if err != nil {
			return nil, err
		}
		return page.People(ids), nil

	case page.PropertyRelation:
		ids, err := decodeIDs(raw)
		if err != nil {
			return nil, err
		}
		return page.Relation(ids), nil

	case page.PropertyFiles:
		var files []FileBody
		if !isNull(raw) {
			if err := decodeInto(raw, &files, "a list of files with name and url"); err != nil {
				return nil, err
			}
		}
		out := make(page.Files, 0, len(files))
		for _, f := range files {
			out = append(out, page.FileRef{Name: f.Name, URL: f.URL})
		}
		return out, nil

	default:
		return page.Unsupported{Raw: bytes.Clone(raw)}, nil
	}
}

func decodeDate(raw json.RawMessage) (page.Date, error) {
	if isNull(raw) {
		return page.Date{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return page.Date{Start: s}, nil
	}

	var d DateBody
	if err := decodeInto(raw, &d, "a date string or an object with start and end"); err != nil {
		return page.Date{}, err
	}
	return page.Date{Start: d.Start, End: d.End}, nil
}

func decodeIDs(raw json.RawMessage) ([]string, error) {
	ids := []string{}
	if isNull(raw) {
		return ids, nil
	}
	if err := decodeInto(raw, &ids, "a list of ids"); err != nil {
		return nil, err
	}
	return ids, nil
}

// decodeBlockValue interprets a generic request value according to t. Only
// file blocks accept the {name, url} object; other media take a URL string.
func decodeBlockValue(t page.BlockType, raw json.RawMessage) (page.BlockValue, error) {
	switch {
	case t.IsText():
		var s string
		if !isNull(raw) {
			if err := decodeInto(raw, &s, "a string"); err != nil {
				return nil, err
			}
		}
		return page.PlainText(s), nil

	case t == page.BlockFile:
		var url string
		if err := json.Unmarshal(raw, &url); err == nil {
			return page.Media{URL: url}, nil
		}
		var f FileBody
		if err := decodeInto(raw, &f, "a URL or an object with name and url"); err != nil {
			return nil, err
		}
		return page.Media{Name: f.Name, URL: f.URL}, nil

	case t.IsMedia():
		var url string
		if err := decodeInto(raw, &url, "a URL string"); err != nil {
			return nil, err
		}
		return page.Media{URL: url}, nil

	case t == page.BlockCode:
		var c CodeBody
		if err := decodeInto(raw, &c, "an object with content and language"); err != nil {
			return nil, err
		}
		return page.Code(c), nil

	case t == page.BlockDivider:
		return page.Empty{}, nil

	default:
		return page.UnsupportedBlock{Raw: bytes.Clone(raw)}, nil
	}
}

// encodePropertyValue renders a domain value in the generic response shape.
func encodePropertyValue(v page.PropertyValue) any {
	switch v := v.(type) {
	case page.Text:
		return string(v)
	case page.Number:
		return v.Value
	case page.Select:
		if v.Option == nil {
			return nil
		}
		return OptionBody{Name: v.Option.Name, Color: v.Option.Color}
	case page.MultiSelect:
		out := make([]OptionBody, 0, len(v))
		for _, o := range v {
			out = append(out, OptionBody{Name: o.Name, Color: o.Color})
		}
		return out
	case page.Date:
		return encodeDate(v)
	case page.Checkbox:
		return bool(v)
	case page.People:
		return nonNilIDs(v)
	case page.Relation:
		return nonNilIDs(v)
	case page.Files:
		out := make([]FileBody, 0, len(v))
		for _, f := range v {
			out = append(out, FileBody{Name: f.Name, URL: f.URL})
		}
		return out
	case page.UserRef:
		return string(v)
	case page.Timestamp:
		return string(v)
	case page.Formula:
		return encodeFormula(v)
	case page.Rollup:
		return encodeRollup(v)
	case page.Unsupported:
		if len(v.Raw) == 0 {
			return nil
		}
		return json.RawMessage(v.Raw)
	default:
		return nil
	}
}

func encodeDate(d page.Date) any {
	switch {
	case d.IsZero():
		return nil
	case d.End == "":
		return d.Start
	default:
		return DateBody(d)
	}
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// encodeFormula renders {"type": kind, kind: result}.
func encodeFormula(f page.Formula) map[string]any {
	out := map[string]any{"type": string(f.Kind)}
	switch f.Kind {
	case page.FormulaBoolean:
		out[string(f.Kind)] = f.Boolean
	case page.FormulaNumber:
		out[string(f.Kind)] = f.Number
	case page.FormulaString:
		out[string(f.Kind)] = f.String
	case page.FormulaDate:
		if f.Date != nil {
			out[string(f.Kind)] = encodeDate(*f.Date)
		} else {
			out[string(f.Kind)] = nil
		}
	}
	return out
}

// encodeRollup renders {"type": kind, "function": fn, kind: result}. Array
// items use the same {type, value} shape as top-level properties.
func encodeRollup(r page.Rollup) map[string]any {
	out := map[string]any{
		"type":     string(r.Kind),
		"function": r.Function,
	}
	switch r.Kind {
	case page.RollupArray:
		items := make([]PropertyResponse, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, PropertyResponse{
				Type:  item.Type.String(),
				Value: encodePropertyValue(item.Value),
			})
		}
		out[string(r.Kind)] = items
	case page.RollupNumber:
		out[string(r.Kind)] = r.Number
	case page.RollupDate:
		if r.Date != nil {
			out[string(r.Kind)] = encodeDate(*r.Date)
		} else {
			out[string(r.Kind)] = nil
		}
	}
	return out
}

// encodeBlockValue renders a domain block value in the generic response shape.
func encodeBlockValue(b page.Block) any {
	switch v := b.Value.(type) {
	case page.PlainText:
		return string(v)
	case page.Media:
		if b.Type == page.BlockFile {
			return FileBody{Name: v.Name, URL: v.URL}
		}
		return v.URL
	case page.Code:
		return CodeBody(v)
	case page.UnsupportedBlock:
		if len(v.Raw) == 0 {
			return nil
		}
		return json.RawMessage(v.Raw)
	default:
		return nil
	}
}
