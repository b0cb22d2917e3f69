package model

import "time"

// MaxVersions is the number of prior content snapshots kept per prompt.
// Older versions beyond the cap are dropped and cannot be restored.
const MaxVersions = 10

// DefaultPromptTitle is used when a prompt is created without a title.
const DefaultPromptTitle = "Untitled prompt"

// Version is a retained prior content value of a prompt. Only content is
// versioned; title, folder and tag changes leave the history untouched.
type Version struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Prompt represents a titled, versioned text template.
type Prompt struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folderId"` // nil = uncategorized
	Tags      []string  `json:"tags"`     // tag IDs
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Versions  []Version `json:"versions"` // newest first
}

// NewPromptParams holds parameters for creating a new Prompt.
type NewPromptParams struct {
	Title    string
	Content  string
	FolderID *string
	Tags     []string
}

// NewPrompt creates a Prompt with a generated UUID, defaults applied and an
// empty version history.
func NewPrompt(params NewPromptParams) Prompt {
	title := params.Title
	if title == "" {
		title = DefaultPromptTitle
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	return Prompt{
		ID:        NewID(),
		Title:     title,
		Content:   params.Content,
		FolderID:  params.FolderID,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
		Versions:  []Version{},
	}
}
