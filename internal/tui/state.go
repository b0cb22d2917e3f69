package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/ph/internal/model"
	"github.com/nikbrunner/ph/internal/tui/layout"
)

// Mode is the current interaction mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModePromptForm
	ModeFolderForm
	ModeConfirmDelete
	ModeVersions
	ModeHelp
)

// promptFormField enumerates focusable fields of the prompt form.
type promptFormField int

const (
	fieldTitle promptFormField = iota
	fieldContent
	fieldTags
)

// PromptFormState holds state for adding or editing a prompt.
type PromptFormState struct {
	EditID  string // empty = adding
	Title   textinput.Model
	Content textarea.Model
	Tags    textinput.Model // comma-separated tag names
	Focus   promptFormField
}

// NewPromptFormState creates a PromptFormState with initialized inputs.
func NewPromptFormState(cfg layout.Config) PromptFormState {
	title := textinput.New()
	title.Placeholder = model.DefaultPromptTitle
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Width = cfg.Input.StandardWidth

	content := textarea.New()
	content.Placeholder = "Prompt content..."
	content.SetHeight(cfg.Input.ContentHeight)
	content.SetWidth(cfg.Input.StandardWidth + 20)

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.CharLimit = cfg.Input.TagsCharLimit
	tags.Width = cfg.Input.StandardWidth

	return PromptFormState{
		Title:   title,
		Content: content,
		Tags:    tags,
	}
}

// Reset clears the form for a new session.
func (f *PromptFormState) Reset() {
	f.EditID = ""
	f.Title.Reset()
	f.Content.Reset()
	f.Tags.Reset()
	f.Focus = fieldTitle
}

// FolderFormState holds state for adding or renaming a folder.
type FolderFormState struct {
	EditID string // empty = adding
	Name   textinput.Model
}

// NewFolderFormState creates a FolderFormState with an initialized input.
func NewFolderFormState(cfg layout.Config) FolderFormState {
	name := textinput.New()
	name.Placeholder = "Folder name"
	name.CharLimit = cfg.Input.TitleCharLimit
	name.Width = cfg.Input.StandardWidth
	return FolderFormState{Name: name}
}

// Reset clears the form for a new session.
func (f *FolderFormState) Reset() {
	f.EditID = ""
	f.Name.Reset()
}

// SearchState holds state for the global search overlay.
type SearchState struct {
	Input   textinput.Model
	Results []model.Prompt
	Cursor  int
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.Config) SearchState {
	input := textinput.New()
	input.Placeholder = "Search title and content..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.StandardWidth
	return SearchState{Input: input}
}

// Reset clears the search state for a new session.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
}

// VersionsState holds state for the version history overlay.
type VersionsState struct {
	PromptID string
	Versions []model.Version
	Cursor   int
}
