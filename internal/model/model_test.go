package model

import (
	"testing"
)

func TestNewPrompt_Defaults(t *testing.T) {
	p := NewPrompt(NewPromptParams{})

	if p.ID == "" {
		t.Error("expected generated ID")
	}
	if p.Title != DefaultPromptTitle {
		t.Errorf("expected default title %q, got %q", DefaultPromptTitle, p.Title)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("expected empty tags slice, got %v", p.Tags)
	}
	if p.Versions == nil || len(p.Versions) != 0 {
		t.Errorf("expected empty versions slice, got %v", p.Versions)
	}
	if p.FolderID != nil {
		t.Errorf("expected nil folder ID, got %v", *p.FolderID)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestNewPrompt_ExplicitValues(t *testing.T) {
	folderID := "f1"
	p := NewPrompt(NewPromptParams{
		Title:    "Greeting",
		Content:  "Hello",
		FolderID: &folderID,
		Tags:     []string{"t1", "t2"},
	})

	if p.Title != "Greeting" {
		t.Errorf("expected title 'Greeting', got %q", p.Title)
	}
	if p.Content != "Hello" {
		t.Errorf("expected content 'Hello', got %q", p.Content)
	}
	if p.FolderID == nil || *p.FolderID != folderID {
		t.Error("expected folder ID to be preserved")
	}
	if len(p.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(p.Tags))
	}
}

func TestNewFolder_DefaultName(t *testing.T) {
	f := NewFolder(NewFolderParams{})

	if f.ID == "" {
		t.Error("expected generated ID")
	}
	if f.Name != "New folder" {
		t.Errorf("expected default name 'New folder', got %q", f.Name)
	}
}

func TestNewTag_PaletteColorWhenEmpty(t *testing.T) {
	tag := NewTag(NewTagParams{Name: "go"})

	found := false
	for _, c := range TagColors {
		if tag.Color == c {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected color from palette, got %q", tag.Color)
	}
}

func TestNewTag_ExplicitColor(t *testing.T) {
	tag := NewTag(NewTagParams{Name: "go", Color: "#123456"})

	if tag.Color != "#123456" {
		t.Errorf("expected explicit color to be kept, got %q", tag.Color)
	}
}

func TestPromptPatch_UnsetFieldsKeepValues(t *testing.T) {
	folderID := "f1"
	p := Prompt{
		Title:    "Original",
		Content:  "body",
		FolderID: &folderID,
		Tags:     []string{"t1"},
	}

	patch := PromptPatch{Title: Set("Renamed")}
	patch.Apply(&p)

	if p.Title != "Renamed" {
		t.Errorf("expected title 'Renamed', got %q", p.Title)
	}
	if p.Content != "body" {
		t.Errorf("expected content untouched, got %q", p.Content)
	}
	if p.FolderID == nil || *p.FolderID != folderID {
		t.Error("expected folder ID untouched")
	}
	if len(p.Tags) != 1 {
		t.Errorf("expected tags untouched, got %v", p.Tags)
	}
}

func TestPromptPatch_ClearFolder(t *testing.T) {
	folderID := "f1"
	p := Prompt{FolderID: &folderID}

	patch := PromptPatch{FolderID: Set[*string](nil)}
	patch.Apply(&p)

	if p.FolderID != nil {
		t.Errorf("expected folder ID cleared, got %v", *p.FolderID)
	}
}

func TestPromptPatch_NilTagsBecomeEmpty(t *testing.T) {
	p := Prompt{Tags: []string{"t1"}}

	patch := PromptPatch{Tags: Set[[]string](nil)}
	patch.Apply(&p)

	if p.Tags == nil {
		t.Fatal("expected non-nil tags slice")
	}
	if len(p.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", p.Tags)
	}
}

func TestFolderPatch_Apply(t *testing.T) {
	parentID := "p1"
	f := Folder{Name: "Old", Order: 3}

	patch := FolderPatch{
		Name:     Set("New"),
		ParentID: Set(&parentID),
	}
	patch.Apply(&f)

	if f.Name != "New" {
		t.Errorf("expected name 'New', got %q", f.Name)
	}
	if f.ParentID == nil || *f.ParentID != parentID {
		t.Error("expected parent ID to be set")
	}
	if f.Order != 3 {
		t.Errorf("expected order untouched, got %d", f.Order)
	}
}

func TestTagPatch_Apply(t *testing.T) {
	tag := Tag{Name: "old", Color: "#111111"}

	patch := TagPatch{Color: Set("#222222")}
	patch.Apply(&tag)

	if tag.Name != "old" {
		t.Errorf("expected name untouched, got %q", tag.Name)
	}
	if tag.Color != "#222222" {
		t.Errorf("expected color '#222222', got %q", tag.Color)
	}
}

func TestField_ZeroValueIsUnset(t *testing.T) {
	var f Field[string]
	if f.IsSet() {
		t.Error("expected zero Field to be unset")
	}
	if f.Value() != "" {
		t.Errorf("expected zero value, got %q", f.Value())
	}
}
