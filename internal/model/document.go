package model

import "time"

// ExportVersion is the nominal version stamped on export documents. Import
// only checks that some version is present, not that it matches.
const ExportVersion = "1.0"

// Document is the portable snapshot of the full entity set, as written by
// export and consumed by import.
type Document struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Prompts    []Prompt  `json:"prompts"`
	Folders    []Folder  `json:"folders"`
	Tags       []Tag     `json:"tags"`
}
