package page

// PropertyValue is the closed set of property payloads. The concrete type is
// determined by the owning Property's Type; see Property.Matches.
type PropertyValue interface {
	isPropertyValue()
}

// Text is the payload of title, rich_text, url, email and phone_number
// properties. Inline formatting is not modeled.
type Text string

// Number is the payload of number properties. Value is nil for an empty cell.
type Number struct {
	Value *float64
}

// NumberOf returns a populated Number.
func NumberOf(v float64) Number {
	return Number{Value: &v}
}

// SelectOption is one option of a select, status or multi_select property.
type SelectOption struct {
	Name  string
	Color string
}

// DefaultColor is sent when an option carries no color.
const DefaultColor = "default"

// Select is the payload of select and status properties. A nil Option is the
// explicit "no selection" state.
type Select struct {
	Option *SelectOption
}

// Selected returns a Select holding the given option.
func Selected(name, color string) Select {
	return Select{Option: &SelectOption{Name: name, Color: color}}
}

// MultiSelect is the payload of multi_select properties. Empty is valid.
type MultiSelect []SelectOption

// Date is the payload of date properties. Start and End are ISO 8601 date or
// date-time strings; End is optional. A zero Date is an empty cell.
type Date struct {
	Start string
	End   string
}

// IsZero reports whether the date is empty.
func (d Date) IsZero() bool {
	return d.Start == "" && d.End == ""
}

// Checkbox is the payload of checkbox properties.
type Checkbox bool

// People is the payload of people properties: a list of user IDs.
type People []string

// FileRef references a file by URL.
type FileRef struct {
	Name string
	URL  string
}

// Files is the payload of files properties. Empty is valid.
type Files []FileRef

// Relation is the payload of relation properties: a list of related page IDs.
type Relation []string

// UserRef is the payload of created_by and last_edited_by properties.
type UserRef string

// Timestamp is the payload of created_time and last_edited_time properties,
// kept as the ISO 8601 string the document service returned.
type Timestamp string

// FormulaKind is the result tag of a formula property.
type FormulaKind string

const (
	FormulaBoolean FormulaKind = "boolean"
	FormulaNumber  FormulaKind = "number"
	FormulaString  FormulaKind = "string"
	FormulaDate    FormulaKind = "date"
)

// Formula is the computed result of a formula property. Exactly the field
// matching Kind is meaningful; it is nil when the service returned null.
type Formula struct {
	Kind    FormulaKind
	Boolean *bool
	Number  *float64
	String  *string
	Date    *Date
}

// RollupKind is the result tag of a rollup property.
type RollupKind string

const (
	RollupArray  RollupKind = "array"
	RollupNumber RollupKind = "number"
	RollupDate   RollupKind = "date"
)

// Rollup is the computed result of a rollup property. For RollupArray, Items
// holds each inner value decoded as an unnamed Property.
type Rollup struct {
	Function string
	Kind     RollupKind
	Items    []Property
	Number   *float64
	Date     *Date
}

// Unsupported carries a property value of a type this service does not model.
// Raw is the value JSON exactly as returned.
type Unsupported struct {
	Raw []byte
}

func (Text) isPropertyValue()        {}
func (Number) isPropertyValue()      {}
func (Select) isPropertyValue()      {}
func (MultiSelect) isPropertyValue() {}
func (Date) isPropertyValue()        {}
func (Checkbox) isPropertyValue()    {}
func (People) isPropertyValue()      {}
func (Files) isPropertyValue()       {}
func (Relation) isPropertyValue()    {}
func (UserRef) isPropertyValue()     {}
func (Timestamp) isPropertyValue()   {}
func (Formula) isPropertyValue()     {}
func (Rollup) isPropertyValue()      {}
func (Unsupported) isPropertyValue() {}
