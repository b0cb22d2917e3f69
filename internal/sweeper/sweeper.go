// Package sweeper finds dangling references left behind by cascade-free
// deletes: prompts pointing at folders or tags that no longer exist.
package sweeper

import (
	"github.com/nikbrunner/ph/internal/model"
)

// Kind classifies a dangling reference.
type Kind int

const (
	MissingFolder Kind = iota // prompt's folderId has no folder row
	MissingTag                // an entry in prompt's tags has no tag row
)

// Finding is one dangling reference on one prompt.
type Finding struct {
	Prompt *model.Prompt
	Kind   Kind
	RefID  string // the folder or tag ID that no longer resolves
}

// Scan checks every prompt against the known folders and tags and returns
// all dangling references. A nil folderId is uncategorized, not dangling.
func Scan(prompts []model.Prompt, folders []model.Folder, tags []model.Tag) []Finding {
	folderIDs := make(map[string]bool, len(folders))
	for _, f := range folders {
		folderIDs[f.ID] = true
	}
	tagIDs := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagIDs[t.ID] = true
	}

	var findings []Finding
	for i := range prompts {
		p := &prompts[i]

		if p.FolderID != nil && !folderIDs[*p.FolderID] {
			findings = append(findings, Finding{Prompt: p, Kind: MissingFolder, RefID: *p.FolderID})
		}

		for _, tagID := range p.Tags {
			if !tagIDs[tagID] {
				findings = append(findings, Finding{Prompt: p, Kind: MissingTag, RefID: tagID})
			}
		}
	}

	return findings
}

// Repairer applies fixes for findings.
type Repairer interface {
	UpdatePrompt(id string, patch model.PromptPatch) (model.Prompt, error)
}

// Repair clears the dangling references reported by Scan: prompts in a
// missing folder become uncategorized, missing tag IDs are dropped from the
// tag list. Returns the number of prompts changed.
func Repair(r Repairer, findings []Finding) (int, error) {
	// Group findings per prompt so each prompt gets a single update.
	type fix struct {
		prompt      *model.Prompt
		clearFolder bool
		badTags     map[string]bool
	}

	fixes := make(map[string]*fix)
	order := []string{}
	for _, f := range findings {
		fx, ok := fixes[f.Prompt.ID]
		if !ok {
			fx = &fix{prompt: f.Prompt, badTags: make(map[string]bool)}
			fixes[f.Prompt.ID] = fx
			order = append(order, f.Prompt.ID)
		}
		switch f.Kind {
		case MissingFolder:
			fx.clearFolder = true
		case MissingTag:
			fx.badTags[f.RefID] = true
		}
	}

	repaired := 0
	for _, id := range order {
		fx := fixes[id]
		patch := model.PromptPatch{}

		if fx.clearFolder {
			patch.FolderID = model.Set[*string](nil)
		}
		if len(fx.badTags) > 0 {
			kept := []string{}
			for _, tagID := range fx.prompt.Tags {
				if !fx.badTags[tagID] {
					kept = append(kept, tagID)
				}
			}
			patch.Tags = model.Set(kept)
		}

		if _, err := r.UpdatePrompt(id, patch); err != nil {
			return repaired, err
		}
		repaired++
	}

	return repaired, nil
}
