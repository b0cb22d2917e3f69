package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/ph/internal/model"
	"github.com/nikbrunner/ph/internal/tui/layout"
)

// Repository is the data-layer surface the TUI drives.
type Repository interface {
	ListFolders() ([]model.Folder, error)
	CreateFolder(name string, parentID *string) (model.Folder, error)
	UpdateFolder(id string, patch model.FolderPatch) (model.Folder, error)
	DeleteFolder(id string) error
	ListTags() ([]model.Tag, error)
	GetOrCreateTags(names []string) ([]model.Tag, error)
	ListPromptsByFolder(folderID string) ([]model.Prompt, error)
	SearchPrompts(keyword string) ([]model.Prompt, error)
	CreatePrompt(params model.NewPromptParams) (model.Prompt, error)
	UpdatePrompt(id string, patch model.PromptPatch) (model.Prompt, error)
	DeletePrompt(id string) error
	RestoreVersion(promptID, versionID string) (model.Prompt, error)
	CountPromptsByFolder(folderID string) (int, error)
}

// App is the main bubbletea model for the prompt manager.
type App struct {
	repo           Repository
	keys           KeyMap
	styles         Styles
	cfg            layout.Config
	confirmDeletes bool

	mode Mode

	// Navigation state
	currentFolderID *string  // nil = root
	folderStack     []string // breadcrumb trail of folder IDs
	cursor          int
	items           []Item
	folderNames     map[string]string
	tagsByID        map[string]model.Tag

	// Mode state, explicitly owned and reset per session
	promptForm   PromptFormState
	folderForm   FolderFormState
	search       SearchState
	versions     VersionsState
	deleteTarget *Item

	status string

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Repo           Repository
	Keys           *KeyMap        // optional, uses default if nil
	Styles         *Styles        // optional, uses default if nil
	LayoutConfig   *layout.Config // optional, uses default if nil
	ConfirmDeletes *bool          // optional, default true
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		cfg = *params.LayoutConfig
	}

	confirmDeletes := true
	if params.ConfirmDeletes != nil {
		confirmDeletes = *params.ConfirmDeletes
	}

	app := App{
		repo:           params.Repo,
		keys:           keys,
		styles:         styles,
		cfg:            cfg,
		confirmDeletes: confirmDeletes,
		promptForm:     NewPromptFormState(cfg),
		folderForm:     NewFolderFormState(cfg),
		search:         NewSearchState(cfg),
		width:          80,
		height:         24,
	}

	app.refreshItems()
	return app
}

// WithDimensions returns a copy of the app with fixed dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// CurrentFolderID returns the ID of the current folder (nil for root).
func (a App) CurrentFolderID() *string {
	return a.currentFolderID
}

// Items returns the current list of items.
func (a App) Items() []Item {
	return a.items
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// refreshItems rebuilds the items slice based on the current folder.
func (a *App) refreshItems() {
	a.items = []Item{}

	folders, err := a.repo.ListFolders()
	if err != nil {
		a.status = err.Error()
		return
	}

	a.folderNames = make(map[string]string, len(folders))
	for _, f := range folders {
		a.folderNames[f.ID] = f.Name
	}

	tags, err := a.repo.ListTags()
	if err != nil {
		a.status = err.Error()
		return
	}
	a.tagsByID = make(map[string]model.Tag, len(tags))
	for _, t := range tags {
		a.tagsByID[t.ID] = t
	}

	// The "all" view has no subfolders; every other level shows its child
	// folders first.
	inAllView := a.currentFolderID != nil && *a.currentFolderID == model.AllFolderID
	if !inAllView {
		children := childFolders(folders, a.currentFolderID)
		for i := range children {
			a.items = append(a.items, Item{Kind: ItemFolder, Folder: &children[i]})
		}
	}

	folderID := ""
	if a.currentFolderID != nil {
		folderID = *a.currentFolderID
	}

	var prompts []model.Prompt
	if folderID == "" {
		// Root level: prompts without a folder.
		all, err := a.repo.ListPromptsByFolder(model.AllFolderID)
		if err != nil {
			a.status = err.Error()
			return
		}
		for _, p := range all {
			if p.FolderID == nil {
				prompts = append(prompts, p)
			}
		}
	} else {
		var err error
		prompts, err = a.repo.ListPromptsByFolder(folderID)
		if err != nil {
			a.status = err.Error()
			return
		}
	}

	for i := range prompts {
		a.items = append(a.items, Item{Kind: ItemPrompt, Prompt: &prompts[i]})
	}

	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// childFolders returns folders whose parent matches, keeping list order.
func childFolders(folders []model.Folder, parentID *string) []model.Folder {
	var result []model.Folder
	for _, f := range folders {
		if ptrEqual(f.ParentID, parentID) {
			result = append(result, f)
		}
	}
	return result
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// selectedItem returns the item under the cursor, or nil.
func (a App) selectedItem() *Item {
	if len(a.items) == 0 || a.cursor >= len(a.items) {
		return nil
	}
	return &a.items[a.cursor]
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeNormal:
			return a.updateNormal(msg)
		case ModeSearch:
			return a.updateSearch(msg)
		case ModePromptForm:
			return a.updatePromptForm(msg)
		case ModeFolderForm:
			return a.updateFolderForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeVersions:
			return a.updateVersions(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.items) > 0 && a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.Right):
		if item := a.selectedItem(); item != nil && item.IsFolder() {
			if a.currentFolderID != nil {
				a.folderStack = append(a.folderStack, *a.currentFolderID)
			}
			id := item.Folder.ID
			a.currentFolderID = &id
			a.cursor = 0
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Left):
		if a.currentFolderID != nil {
			if len(a.folderStack) > 0 {
				lastIdx := len(a.folderStack) - 1
				parentID := a.folderStack[lastIdx]
				a.folderStack = a.folderStack[:lastIdx]
				a.currentFolderID = &parentID
			} else {
				a.currentFolderID = nil
			}
			a.cursor = 0
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.AddPrompt):
		a.promptForm.Reset()
		a.promptForm.Title.Focus()
		a.mode = ModePromptForm

	case key.Matches(msg, a.keys.AddFolder):
		a.folderForm.Reset()
		a.folderForm.Name.Focus()
		a.mode = ModeFolderForm

	case key.Matches(msg, a.keys.Edit):
		item := a.selectedItem()
		if item == nil {
			break
		}
		if item.IsFolder() {
			a.folderForm.Reset()
			a.folderForm.EditID = item.Folder.ID
			a.folderForm.Name.SetValue(item.Folder.Name)
			a.folderForm.Name.Focus()
			a.mode = ModeFolderForm
		} else {
			a.promptForm.Reset()
			a.promptForm.EditID = item.Prompt.ID
			a.promptForm.Title.SetValue(item.Prompt.Title)
			a.promptForm.Content.SetValue(item.Prompt.Content)
			a.promptForm.Tags.SetValue(a.tagNames(item.Prompt.Tags))
			a.promptForm.Title.Focus()
			a.mode = ModePromptForm
		}

	case key.Matches(msg, a.keys.Delete):
		if item := a.selectedItem(); item != nil {
			target := *item
			a.deleteTarget = &target
			if a.confirmDeletes {
				a.mode = ModeConfirmDelete
			} else {
				a.performDelete()
			}
		}

	case key.Matches(msg, a.keys.Yank):
		if item := a.selectedItem(); item != nil && !item.IsFolder() {
			if err := clipboard.WriteAll(item.Prompt.Content); err != nil {
				a.status = "clipboard: " + err.Error()
			} else {
				a.status = "Copied content of \"" + item.Prompt.Title + "\""
			}
		}

	case key.Matches(msg, a.keys.Versions):
		if item := a.selectedItem(); item != nil && !item.IsFolder() {
			a.versions = VersionsState{
				PromptID: item.Prompt.ID,
				Versions: item.Prompt.Versions,
			}
			a.mode = ModeVersions
		}

	case key.Matches(msg, a.keys.Search):
		a.search.Reset()
		a.search.Input.Focus()
		a.mode = ModeSearch

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		if len(a.search.Results) > 0 && a.search.Cursor < len(a.search.Results) {
			p := a.search.Results[a.search.Cursor]
			if err := clipboard.WriteAll(p.Content); err != nil {
				a.status = "clipboard: " + err.Error()
			} else {
				a.status = "Copied content of \"" + p.Title + "\""
			}
		}
		a.mode = ModeNormal
		return a, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if a.search.Cursor < len(a.search.Results)-1 {
			a.search.Cursor++
		}
		return a, nil

	case tea.KeyUp, tea.KeyCtrlP:
		if a.search.Cursor > 0 {
			a.search.Cursor--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)

	results, err := a.repo.SearchPrompts(a.search.Input.Value())
	if err != nil {
		a.status = err.Error()
		return a, cmd
	}
	a.search.Results = results
	if a.search.Cursor >= len(results) {
		a.search.Cursor = 0
	}

	return a, cmd
}

func (a App) updatePromptForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab:
		a.promptForm.Focus = (a.promptForm.Focus + 1) % 3
		a.syncPromptFormFocus()
		return a, nil

	case tea.KeyShiftTab:
		a.promptForm.Focus = (a.promptForm.Focus + 2) % 3
		a.syncPromptFormFocus()
		return a, nil

	case tea.KeyCtrlS:
		a.savePromptForm()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.promptForm.Focus {
	case fieldTitle:
		a.promptForm.Title, cmd = a.promptForm.Title.Update(msg)
	case fieldContent:
		a.promptForm.Content, cmd = a.promptForm.Content.Update(msg)
	case fieldTags:
		a.promptForm.Tags, cmd = a.promptForm.Tags.Update(msg)
	}
	return a, cmd
}

func (a *App) syncPromptFormFocus() {
	a.promptForm.Title.Blur()
	a.promptForm.Content.Blur()
	a.promptForm.Tags.Blur()
	switch a.promptForm.Focus {
	case fieldTitle:
		a.promptForm.Title.Focus()
	case fieldContent:
		a.promptForm.Content.Focus()
	case fieldTags:
		a.promptForm.Tags.Focus()
	}
}

func (a *App) savePromptForm() {
	tagIDs, err := a.resolveTagNames(a.promptForm.Tags.Value())
	if err != nil {
		a.status = err.Error()
		return
	}

	if a.promptForm.EditID == "" {
		_, err = a.repo.CreatePrompt(model.NewPromptParams{
			Title:    a.promptForm.Title.Value(),
			Content:  a.promptForm.Content.Value(),
			FolderID: a.promptFolderID(),
			Tags:     tagIDs,
		})
	} else {
		_, err = a.repo.UpdatePrompt(a.promptForm.EditID, model.PromptPatch{
			Title:   model.Set(a.promptForm.Title.Value()),
			Content: model.Set(a.promptForm.Content.Value()),
			Tags:    model.Set(tagIDs),
		})
	}
	if err != nil {
		a.status = err.Error()
		return
	}

	a.mode = ModeNormal
	a.refreshItems()
}

// promptFolderID returns the folder new prompts land in. Inside the "all"
// view there is no concrete folder, so prompts stay uncategorized.
func (a App) promptFolderID() *string {
	if a.currentFolderID == nil || *a.currentFolderID == model.AllFolderID {
		return nil
	}
	return a.currentFolderID
}

// resolveTagNames turns a comma-separated name list into tag IDs, creating
// missing tags on the way.
func (a App) resolveTagNames(value string) ([]string, error) {
	names := []string{}
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{}, nil
	}

	tags, err := a.repo.GetOrCreateTags(names)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids, nil
}

// tagNames renders tag IDs as a comma-separated name list for the form.
func (a App) tagNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := a.tagsByID[id]; ok {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}

func (a App) updateFolderForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(a.folderForm.Name.Value())
		var err error
		if a.folderForm.EditID == "" {
			_, err = a.repo.CreateFolder(name, a.promptFolderID())
		} else {
			_, err = a.repo.UpdateFolder(a.folderForm.EditID, model.FolderPatch{
				Name: model.Set(name),
			})
		}
		if err != nil {
			a.status = err.Error()
			a.mode = ModeNormal
			return a, nil
		}
		a.mode = ModeNormal
		a.refreshItems()
		return a, nil
	}

	var cmd tea.Cmd
	a.folderForm.Name, cmd = a.folderForm.Name.Update(msg)
	return a, cmd
}

// performDelete removes the pending delete target and refreshes the list.
func (a *App) performDelete() {
	if a.deleteTarget != nil {
		var err error
		if a.deleteTarget.IsFolder() {
			err = a.repo.DeleteFolder(a.deleteTarget.Folder.ID)
		} else {
			err = a.repo.DeletePrompt(a.deleteTarget.Prompt.ID)
		}
		if err != nil {
			a.status = err.Error()
		} else {
			a.status = "Deleted \"" + a.deleteTarget.Title() + "\""
		}
	}
	a.deleteTarget = nil
	a.mode = ModeNormal
	a.refreshItems()
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		a.performDelete()
		return a, nil

	case "n", "esc", "q":
		a.deleteTarget = nil
		a.mode = ModeNormal
		return a, nil
	}
	return a, nil
}

func (a App) updateVersions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		a.mode = ModeNormal
		return a, nil

	case "j", "down":
		if a.versions.Cursor < len(a.versions.Versions)-1 {
			a.versions.Cursor++
		}
		return a, nil

	case "k", "up":
		if a.versions.Cursor > 0 {
			a.versions.Cursor--
		}
		return a, nil

	case "enter":
		if len(a.versions.Versions) > 0 && a.versions.Cursor < len(a.versions.Versions) {
			v := a.versions.Versions[a.versions.Cursor]
			if _, err := a.repo.RestoreVersion(a.versions.PromptID, v.ID); err != nil {
				a.status = err.Error()
			} else {
				a.status = "Restored previous version"
			}
		}
		a.mode = ModeNormal
		a.refreshItems()
		return a, nil
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
