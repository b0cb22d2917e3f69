package tui_test

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/ph/internal/model"
	"github.com/nikbrunner/ph/internal/storage"
	"github.com/nikbrunner/ph/internal/tui"
)

// newTestApp creates an app over a fresh seeded store. The seed provides the
// "All", "Writing", "Coding" and "Translation" folders at root level.
func newTestApp(t *testing.T) (tui.App, *storage.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "prompts.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	app := tui.NewApp(tui.AppParams{Repo: store})
	return app.WithDimensions(80, 24), store
}

func pressRune(t *testing.T, app tui.App, r rune) tui.App {
	t.Helper()
	updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(tui.App)
}

func pressKey(t *testing.T, app tui.App, k tea.KeyType) tui.App {
	t.Helper()
	updated, _ := app.Update(tea.KeyMsg{Type: k})
	return updated.(tui.App)
}

func TestApp_Navigation_JK(t *testing.T) {
	app, _ := newTestApp(t)

	if app.Cursor() != 0 {
		t.Errorf("expected initial cursor 0, got %d", app.Cursor())
	}

	app = pressRune(t, app, 'j')
	if app.Cursor() != 1 {
		t.Errorf("after j, expected cursor 1, got %d", app.Cursor())
	}

	app = pressRune(t, app, 'k')
	if app.Cursor() != 0 {
		t.Errorf("after k, expected cursor 0, got %d", app.Cursor())
	}

	// No wrap at the top.
	app = pressRune(t, app, 'k')
	if app.Cursor() != 0 {
		t.Errorf("k at top should stay at 0, got %d", app.Cursor())
	}
}

func TestApp_Navigation_GG_And_G(t *testing.T) {
	app, _ := newTestApp(t)

	app = pressRune(t, app, 'G')
	if app.Cursor() != len(app.Items())-1 {
		t.Errorf("after G, expected cursor at bottom, got %d", app.Cursor())
	}

	app = pressRune(t, app, 'g')
	app = pressRune(t, app, 'g')
	if app.Cursor() != 0 {
		t.Errorf("after gg, expected cursor 0, got %d", app.Cursor())
	}
}

func TestApp_Navigation_EnterAndLeaveFolder(t *testing.T) {
	app, _ := newTestApp(t)

	if app.CurrentFolderID() != nil {
		t.Error("expected to start at root")
	}

	// Cursor 0 is the "All" folder; enter it.
	app = pressRune(t, app, 'l')
	if app.CurrentFolderID() == nil || *app.CurrentFolderID() != model.AllFolderID {
		t.Fatal("expected to be inside the 'All' folder")
	}

	// The "all" view lists prompts only, no subfolders.
	for _, item := range app.Items() {
		if item.IsFolder() {
			t.Error("expected no folders inside the 'All' view")
		}
	}

	app = pressRune(t, app, 'h')
	if app.CurrentFolderID() != nil {
		t.Error("expected to be back at root")
	}
}

func TestApp_RootShowsSeededFolders(t *testing.T) {
	app, _ := newTestApp(t)

	folderCount := 0
	for _, item := range app.Items() {
		if item.IsFolder() {
			folderCount++
		}
	}
	if folderCount != 4 {
		t.Errorf("expected 4 seeded folders at root, got %d", folderCount)
	}
}

func TestApp_RootShowsOnlyUncategorizedPrompts(t *testing.T) {
	app, store := newTestApp(t)

	f, err := store.CreateFolder("Work", nil)
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	if _, err := store.CreatePrompt(model.NewPromptParams{Title: "Filed", FolderID: &f.ID}); err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}
	if _, err := store.CreatePrompt(model.NewPromptParams{Title: "Loose"}); err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	// Re-enter root to pick up the new data.
	app = pressRune(t, app, 'l')
	app = pressRune(t, app, 'h')

	var promptTitles []string
	for _, item := range app.Items() {
		if !item.IsFolder() {
			promptTitles = append(promptTitles, item.Prompt.Title)
		}
	}
	if len(promptTitles) != 1 || promptTitles[0] != "Loose" {
		t.Errorf("expected only the uncategorized prompt at root, got %v", promptTitles)
	}
}

func TestApp_ModeTransitions(t *testing.T) {
	app, _ := newTestApp(t)

	app = pressRune(t, app, 'a')
	if app.Mode() != tui.ModePromptForm {
		t.Errorf("expected prompt form after a, got %v", app.Mode())
	}
	app = pressKey(t, app, tea.KeyEsc)
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode after esc, got %v", app.Mode())
	}

	app = pressRune(t, app, 'A')
	if app.Mode() != tui.ModeFolderForm {
		t.Errorf("expected folder form after A, got %v", app.Mode())
	}
	app = pressKey(t, app, tea.KeyEsc)

	app = pressRune(t, app, '/')
	if app.Mode() != tui.ModeSearch {
		t.Errorf("expected search mode after /, got %v", app.Mode())
	}
	app = pressKey(t, app, tea.KeyEsc)

	app = pressRune(t, app, '?')
	if app.Mode() != tui.ModeHelp {
		t.Errorf("expected help mode after ?, got %v", app.Mode())
	}
	app = pressRune(t, app, 'x')
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected any key to close help, got %v", app.Mode())
	}
}

func TestApp_CreateFolderViaForm(t *testing.T) {
	app, store := newTestApp(t)

	app = pressRune(t, app, 'A')
	for _, r := range "Ideas" {
		app = pressRune(t, app, r)
	}
	app = pressKey(t, app, tea.KeyEnter)

	if app.Mode() != tui.ModeNormal {
		t.Fatalf("expected normal mode after save, got %v", app.Mode())
	}

	folders, err := store.ListFolders()
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	found := false
	for _, f := range folders {
		if f.Name == "Ideas" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'Ideas' folder to be created")
	}
}

func TestApp_DeletePromptWithConfirm(t *testing.T) {
	app, store := newTestApp(t)

	p, err := store.CreatePrompt(model.NewPromptParams{Title: "Doomed"})
	if err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	// Refresh, then move the cursor onto the prompt (after the 4 folders).
	app = pressRune(t, app, 'l')
	app = pressRune(t, app, 'h')
	app = pressRune(t, app, 'G')

	item := app.Items()[app.Cursor()]
	if item.IsFolder() || item.Prompt.ID != p.ID {
		t.Fatal("expected cursor on the new prompt")
	}

	app = pressRune(t, app, 'd')
	if app.Mode() != tui.ModeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", app.Mode())
	}

	// n cancels.
	app = pressRune(t, app, 'n')
	if _, err := store.GetPrompt(p.ID); err != nil {
		t.Fatalf("expected prompt to survive cancel: %v", err)
	}

	// y confirms.
	app = pressRune(t, app, 'G')
	app = pressRune(t, app, 'd')
	app = pressRune(t, app, 'y')
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode after delete, got %v", app.Mode())
	}
	if _, err := store.GetPrompt(p.ID); err == nil {
		t.Error("expected prompt to be deleted")
	}
}

func TestApp_DeleteWithoutConfirmWhenDisabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prompts.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	p, err := store.CreatePrompt(model.NewPromptParams{Title: "Doomed"})
	if err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	confirm := false
	app := tui.NewApp(tui.AppParams{Repo: store, ConfirmDeletes: &confirm})
	app = app.WithDimensions(80, 24)

	app = pressRune(t, app, 'G')
	item := app.Items()[app.Cursor()]
	if item.IsFolder() || item.Prompt.ID != p.ID {
		t.Fatal("expected cursor on the new prompt")
	}

	app = pressRune(t, app, 'd')
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected delete to skip confirm mode, got %v", app.Mode())
	}
	if _, err := store.GetPrompt(p.ID); err == nil {
		t.Error("expected prompt to be deleted immediately")
	}
}

func TestApp_VersionsModeOnPrompt(t *testing.T) {
	app, store := newTestApp(t)

	p, err := store.CreatePrompt(model.NewPromptParams{Title: "Versioned", Content: "v1"})
	if err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}
	if _, err := store.UpdatePrompt(p.ID, model.PromptPatch{Content: model.Set("v2")}); err != nil {
		t.Fatalf("failed to update prompt: %v", err)
	}

	app = pressRune(t, app, 'l')
	app = pressRune(t, app, 'h')
	app = pressRune(t, app, 'G')

	app = pressRune(t, app, 'v')
	if app.Mode() != tui.ModeVersions {
		t.Fatalf("expected versions mode, got %v", app.Mode())
	}

	// Restore the previous content.
	app = pressKey(t, app, tea.KeyEnter)
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode after restore, got %v", app.Mode())
	}

	got, err := store.GetPrompt(p.ID)
	if err != nil {
		t.Fatalf("failed to get prompt: %v", err)
	}
	if got.Content != "v1" {
		t.Errorf("expected restored content 'v1', got %q", got.Content)
	}
}

func TestApp_VersionsModeIgnoredOnFolder(t *testing.T) {
	app, _ := newTestApp(t)

	// Cursor starts on a folder.
	app = pressRune(t, app, 'v')
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected versions mode to be ignored for folders, got %v", app.Mode())
	}
}
