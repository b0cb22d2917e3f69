package storage_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/ph/internal/model"
)

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(promptParams("One", "body")); err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	doc, err := s.Snapshot()
	if err != nil {
		t.Fatalf("failed to snapshot: %v", err)
	}

	if doc.Version != model.ExportVersion {
		t.Errorf("expected version %q, got %q", model.ExportVersion, doc.Version)
	}
	if doc.ExportedAt.IsZero() {
		t.Error("expected export timestamp")
	}
	if len(doc.Prompts) != 1 {
		t.Errorf("expected 1 prompt, got %d", len(doc.Prompts))
	}
	if len(doc.Folders) != 4 || len(doc.Tags) != 4 {
		t.Errorf("expected seeded folders and tags in snapshot, got %d folders, %d tags",
			len(doc.Folders), len(doc.Tags))
	}
}

func TestImport_Merge(t *testing.T) {
	s := newTestStore(t)

	now := time.Now().Truncate(time.Second)
	doc := model.Document{
		Version: model.ExportVersion,
		Folders: []model.Folder{
			{ID: "f1", Name: "Imported folder", Order: 50},
		},
		Tags: []model.Tag{
			{ID: "t1", Name: "imported", Color: "#123456"},
		},
		Prompts: []model.Prompt{
			{
				ID:        "p1",
				Title:     "Imported prompt",
				Content:   "body",
				Tags:      []string{"t1"},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	result, err := s.Import(doc, true)
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}

	if result.PromptsAdded != 1 || result.FoldersAdded != 1 || result.TagsAdded != 1 {
		t.Errorf("unexpected added counts: %+v", result)
	}
	if result.PromptsSkipped != 0 || result.FoldersSkipped != 0 || result.TagsSkipped != 0 {
		t.Errorf("unexpected skipped counts: %+v", result)
	}

	p, err := s.GetPrompt("p1")
	if err != nil {
		t.Fatalf("failed to get imported prompt: %v", err)
	}
	if p.Title != "Imported prompt" || len(p.Tags) != 1 {
		t.Errorf("unexpected imported prompt %+v", p)
	}

	// Seeded data must survive a merge import.
	folders, err := s.ListFolders()
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	if len(folders) != 5 {
		t.Errorf("expected 5 folders after merge, got %d", len(folders))
	}
}

func TestImport_MergeSkipsExistingIDs(t *testing.T) {
	s := newTestStore(t)

	existing, err := s.CreatePrompt(promptParams("Local title", "local content"))
	if err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	doc := model.Document{
		Version: model.ExportVersion,
		Prompts: []model.Prompt{
			{
				ID:        existing.ID,
				Title:     "Incoming title",
				Content:   "incoming content",
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		},
	}

	result, err := s.Import(doc, true)
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}

	if result.PromptsAdded != 0 || result.PromptsSkipped != 1 {
		t.Errorf("expected 1 skipped, 0 added; got %+v", result)
	}

	// Existing wins, untouched.
	got, err := s.GetPrompt(existing.ID)
	if err != nil {
		t.Fatalf("failed to get prompt: %v", err)
	}
	if got.Title != "Local title" || got.Content != "local content" {
		t.Errorf("expected local record untouched, got %+v", got)
	}
}

func TestImport_Replace(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(promptParams("Local", "body")); err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}

	now := time.Now().Truncate(time.Second)
	doc := model.Document{
		Version: model.ExportVersion,
		Prompts: []model.Prompt{
			{ID: "p1", Title: "Replacement", Content: "body", CreatedAt: now, UpdatedAt: now},
		},
	}

	result, err := s.Import(doc, false)
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	if result.PromptsAdded != 1 {
		t.Errorf("expected 1 prompt added, got %+v", result)
	}

	prompts, err := s.ListPrompts()
	if err != nil {
		t.Fatalf("failed to list prompts: %v", err)
	}
	if len(prompts) != 1 || prompts[0].ID != "p1" {
		t.Errorf("expected only the imported prompt, got %d", len(prompts))
	}

	// Replace clears the seeded folders and tags, but the reserved folder
	// is re-asserted inside the transaction.
	folders, err := s.ListFolders()
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != model.AllFolderID {
		t.Errorf("expected only the reserved folder to survive replace, got %d", len(folders))
	}
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("failed to list tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected tags cleared, got %d", len(tags))
	}
}

func TestImport_RoundTrip(t *testing.T) {
	src := newTestStore(t)

	f, err := src.CreateFolder("Work", nil)
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	tag, err := src.CreateTag("go", "#123456")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	p, err := src.CreatePrompt(model.NewPromptParams{
		Title:    "Versioned",
		Content:  "v1",
		FolderID: &f.ID,
		Tags:     []string{tag.ID},
	})
	if err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}
	if _, err := src.UpdatePrompt(p.ID, model.PromptPatch{Content: model.Set("v2")}); err != nil {
		t.Fatalf("failed to update prompt: %v", err)
	}

	doc, err := src.Snapshot()
	if err != nil {
		t.Fatalf("failed to snapshot: %v", err)
	}

	dst := newTestStore(t)
	if _, err := dst.Import(doc, false); err != nil {
		t.Fatalf("failed to import: %v", err)
	}

	got, err := dst.GetPrompt(p.ID)
	if err != nil {
		t.Fatalf("failed to get prompt in destination: %v", err)
	}
	if got.Content != "v2" {
		t.Errorf("expected content 'v2', got %q", got.Content)
	}
	if len(got.Versions) != 1 || got.Versions[0].Content != "v1" {
		t.Error("expected version history to survive the round trip")
	}
	if got.FolderID == nil || *got.FolderID != f.ID {
		t.Error("expected folder reference to survive the round trip")
	}
	if len(got.Tags) != 1 || got.Tags[0] != tag.ID {
		t.Error("expected tag reference to survive the round trip")
	}
}
