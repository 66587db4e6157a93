package notionapi

// File object types.
const (
	FileTypeExternal = "external"
	FileTypeHosted   = "file"
)

// ExternalDTO references a file hosted outside Notion.
type ExternalDTO struct {
	URL string `json:"url"`
}

// HostedDTO references a file uploaded to Notion. The URL is signed and
// expires at ExpiryTime.
type HostedDTO struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// FileDTO matches the Notion file object used by files properties and
// media blocks.
type FileDTO struct {
	Name     string       `json:"name,omitempty"`
	Type     string       `json:"type"`
	External *ExternalDTO `json:"external,omitempty"`
	File     *HostedDTO   `json:"file,omitempty"`
}

// ExternalFile builds a file object pointing at url.
func ExternalFile(name, url string) FileDTO {
	return FileDTO{
		Name:     name,
		Type:     FileTypeExternal,
		External: &ExternalDTO{URL: url},
	}
}

// URL returns the file's URL regardless of where it is hosted, and whether
// one was present.
func (f *FileDTO) URL() (string, bool) {
	switch {
	case f.External != nil:
		return f.External.URL, true
	case f.File != nil:
		return f.File.URL, true
	default:
		return "", false
	}
}
