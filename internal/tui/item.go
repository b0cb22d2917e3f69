package tui

import "github.com/nikbrunner/ph/internal/model"

// ItemKind distinguishes between folders and prompts in a list.
type ItemKind int

const (
	ItemFolder ItemKind = iota
	ItemPrompt
)

// Item represents either a folder or a prompt in the list.
type Item struct {
	Kind   ItemKind
	Folder *model.Folder
	Prompt *model.Prompt
}

// ID returns the item's ID regardless of type.
func (i Item) ID() string {
	if i.Kind == ItemFolder {
		return i.Folder.ID
	}
	return i.Prompt.ID
}

// Title returns a display title for the item.
func (i Item) Title() string {
	if i.Kind == ItemFolder {
		return i.Folder.Name
	}
	return i.Prompt.Title
}

// IsFolder returns true if this item is a folder.
func (i Item) IsFolder() bool {
	return i.Kind == ItemFolder
}
