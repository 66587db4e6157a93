package page

// PropertyType identifies the schema type of a page property.
type PropertyType string

// Writable property types.
const (
	PropertyTitle       PropertyType = "title"
	PropertyRichText    PropertyType = "rich_text"
	PropertyNumber      PropertyType = "number"
	PropertySelect      PropertyType = "select"
	PropertyStatus      PropertyType = "status"
	PropertyMultiSelect PropertyType = "multi_select"
	PropertyDate        PropertyType = "date"
	PropertyCheckbox    PropertyType = "checkbox"
	PropertyPeople      PropertyType = "people"
	PropertyFiles       PropertyType = "files"
	PropertyURL         PropertyType = "url"
	PropertyEmail       PropertyType = "email"
	PropertyPhoneNumber PropertyType = "phone_number"
	PropertyRelation    PropertyType = "relation"
)

// Read-only property types, computed by the document service.
const (
	PropertyCreatedBy      PropertyType = "created_by"
	PropertyLastEditedBy   PropertyType = "last_edited_by"
	PropertyCreatedTime    PropertyType = "created_time"
	PropertyLastEditedTime PropertyType = "last_edited_time"
	PropertyFormula        PropertyType = "formula"
	PropertyRollup         PropertyType = "rollup"
)

// IsWritable reports whether values of this type can be sent on create.
func (t PropertyType) IsWritable() bool {
	switch t {
	case PropertyTitle, PropertyRichText, PropertyNumber, PropertySelect, PropertyStatus,
		PropertyMultiSelect, PropertyDate, PropertyCheckbox, PropertyPeople, PropertyFiles,
		PropertyURL, PropertyEmail, PropertyPhoneNumber, PropertyRelation:
		return true
	default:
		return false
	}
}

// IsReadOnly reports whether the type is one of the computed types this
// service understands but cannot write.
func (t PropertyType) IsReadOnly() bool {
	switch t {
	case PropertyCreatedBy, PropertyLastEditedBy, PropertyCreatedTime, PropertyLastEditedTime,
		PropertyFormula, PropertyRollup:
		return true
	default:
		return false
	}
}

// IsKnown reports whether the type is modeled by this service at all.
func (t PropertyType) IsKnown() bool {
	return t.IsWritable() || t.IsReadOnly()
}

// String implements fmt.Stringer.
func (t PropertyType) String() string {
	return string(t)
}

// Property is a named, typed field attached to a page. ID is assigned by
// the document service's schema and only populated on read.
type Property struct {
	ID    string
	Name  string
	Type  PropertyType
	Value PropertyValue
}

// Matches reports whether the property's value has the shape its type expects.
func (p Property) Matches() bool {
	if p.Value == nil {
		return false
	}
	return valueMatches(p.Type, p.Value)
}

func valueMatches(t PropertyType, v PropertyValue) bool {
	switch v.(type) {
	case Text:
		return t == PropertyTitle || t == PropertyRichText || t == PropertyURL ||
			t == PropertyEmail || t == PropertyPhoneNumber
	case Number:
		return t == PropertyNumber
	case Select:
		return t == PropertySelect || t == PropertyStatus
	case MultiSelect:
		return t == PropertyMultiSelect
	case Date:
		return t == PropertyDate
	case Checkbox:
		return t == PropertyCheckbox
	case People:
		return t == PropertyPeople
	case Files:
		return t == PropertyFiles
	case Relation:
		return t == PropertyRelation
	case UserRef:
		return t == PropertyCreatedBy || t == PropertyLastEditedBy
	case Timestamp:
		return t == PropertyCreatedTime || t == PropertyLastEditedTime
	case Formula:
		return t == PropertyFormula
	case Rollup:
		return t == PropertyRollup
	case Unsupported:
		return !t.IsKnown()
	default:
		return false
	}
}
