package page

// IconKind identifies how an icon is stored by the document service.
type IconKind string

const (
	IconEmoji    IconKind = "emoji"
	IconExternal IconKind = "external"
	// IconFile is an icon uploaded to the document service. It can be read
	// but not created by this service.
	IconFile IconKind = "file"
	// IconOpaque covers icon kinds this service does not model (custom
	// emoji, future kinds). Value holds the raw type tag.
	IconOpaque IconKind = "opaque"
)

// IsWritable reports whether icons of this kind can be sent on create.
func (k IconKind) IsWritable() bool {
	return k == IconEmoji || k == IconExternal
}

// String implements fmt.Stringer.
func (k IconKind) String() string {
	return string(k)
}

// Icon is a small visual marker for a page. Value is the emoji glyph for
// IconEmoji and a URL for IconExternal and IconFile.
type Icon struct {
	Kind  IconKind
	Value string
}

// IsZero reports whether the icon is unset.
func (i Icon) IsZero() bool {
	return i.Kind == "" && i.Value == ""
}
