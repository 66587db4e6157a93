package notionapi

import "github.com/google/uuid"

// NormalizeID returns the canonical dashed form of a Notion object id.
// Notion accepts ids with or without dashes and URLs carry them undashed;
// values that are not UUIDs are returned unchanged and left for the API to
// reject.
func NormalizeID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()
}
