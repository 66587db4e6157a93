// Package property implements the Anti-Corruption Layer translators for
// Notion page property values.
package property

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ValueDTO matches a Notion property value object. The payload lives under a
// key equal to Type (e.g. {"type":"number","number":42}); it is kept raw and
// decoded by the translator according to Type.
type ValueDTO struct {
	ID      string
	Type    string
	Payload json.RawMessage
}

// MarshalJSON writes {"id"?, "type", <type>: payload}. A nil payload is
// written as null, which clears the value on write.
func (v ValueDTO) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, 3)

	if v.ID != "" {
		id, err := json.Marshal(v.ID)
		if err != nil {
			return nil, err
		}
		fields["id"] = id
	}

	typ, err := json.Marshal(v.Type)
	if err != nil {
		return nil, err
	}
	fields["type"] = typ

	payload := v.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	fields[v.Type] = payload

	return json.Marshal(fields)
}

// UnmarshalJSON reads id and type, then keeps the field named by type as the
// raw payload. Other fields are ignored.
func (v *ValueDTO) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*v = ValueDTO{}
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &v.ID); err != nil {
			return fmt.Errorf("property id: %w", err)
		}
	}
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &v.Type); err != nil {
			return fmt.Errorf("property type: %w", err)
		}
	}
	if v.Type != "" {
		v.Payload = fields[v.Type]
	}
	return nil
}

// NamedValueDTO pairs a property name with its value.
type NamedValueDTO struct {
	Name  string
	Value ValueDTO
}

// PropertiesDTO is the name-to-value mapping of a page. It marshals as a JSON
// object but keeps its entries in order, so properties read back in the order
// the service listed them.
type PropertiesDTO []NamedValueDTO

// MarshalJSON writes the entries as a JSON object in slice order.
func (p PropertiesDTO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nv.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nv.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", nv.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order.
func (p *PropertiesDTO) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	out := PropertiesDTO{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return errors.New("properties: expected string key")
		}

		var v ValueDTO
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		out = append(out, NamedValueDTO{Name: name, Value: v})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

// SelectOptionDTO matches a select, status or multi_select option.
type SelectOptionDTO struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateDTO matches the Notion date value.
type DateDTO struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// UserDTO matches a partial Notion user object.
type UserDTO struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
}

// PageRefDTO matches a relation entry.
type PageRefDTO struct {
	ID string `json:"id"`
}

// FormulaDTO matches the computed result of a formula property.
type FormulaDTO struct {
	Type    string   `json:"type"`
	Boolean *bool    `json:"boolean,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	String  *string  `json:"string,omitempty"`
	Date    *DateDTO `json:"date,omitempty"`
}

// RollupDTO matches the computed result of a rollup property. Array entries
// are property values without an id.
type RollupDTO struct {
	Type     string     `json:"type"`
	Function string     `json:"function"`
	Array    []ValueDTO `json:"array,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	Date     *DateDTO   `json:"date,omitempty"`
}
