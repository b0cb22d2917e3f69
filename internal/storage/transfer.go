package storage

import (
	"fmt"
	"time"

	"github.com/nikbrunner/ph/internal/model"
)

// ImportResult reports what an import actually did. Added counts are records
// inserted; Skipped counts are records whose ID already existed locally and
// were left untouched.
type ImportResult struct {
	PromptsAdded   int
	FoldersAdded   int
	TagsAdded      int
	PromptsSkipped int
	FoldersSkipped int
	TagsSkipped    int
}

// Snapshot reads the complete, unfiltered contents of all three tables.
func (s *Store) Snapshot() (model.Document, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return model.Document{}, err
	}
	tags, err := s.ListTags()
	if err != nil {
		return model.Document{}, err
	}
	prompts, err := s.ListPrompts()
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{
		Version:    model.ExportVersion,
		ExportedAt: time.Now(),
		Prompts:    prompts,
		Folders:    folders,
		Tags:       tags,
	}, nil
}

// Import merges the document into the store as one transaction spanning all
// three tables. In merge mode a record whose ID already exists is skipped
// entirely: existing wins, fields are not merged, version lists are not
// unioned. With merge false, all three tables are cleared first and the
// reserved "all" folder is put back. Any insert failure rolls the whole
// import back.
func (s *Store) Import(doc model.Document, merge bool) (ImportResult, error) {
	var result ImportResult

	tx, err := s.db.Begin()
	if err != nil {
		return result, fmt.Errorf("importing: %w", err)
	}
	defer tx.Rollback()

	if !merge {
		for _, table := range []string{"prompts", "folders", "tags"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return ImportResult{}, fmt.Errorf("clearing %s: %w", table, err)
			}
		}
		// The reserved folder must exist at all times, even when the
		// incoming document does not carry it.
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO folders (id, name, parent_id, ord) VALUES (?, 'All', NULL, 0)`,
			model.AllFolderID,
		); err != nil {
			return ImportResult{}, fmt.Errorf("restoring reserved folder: %w", err)
		}
	}

	exists := func(table, id string) (bool, error) {
		var n int
		err := tx.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n)
		return n > 0, err
	}

	for _, f := range doc.Folders {
		ok, err := exists("folders", f.ID)
		if err != nil {
			return ImportResult{}, fmt.Errorf("importing folder %s: %w", f.ID, err)
		}
		if ok {
			result.FoldersSkipped++
			continue
		}
		if err := s.insertFolder(tx, f); err != nil {
			return ImportResult{}, fmt.Errorf("importing folder %s: %w", f.ID, err)
		}
		result.FoldersAdded++
	}

	for _, t := range doc.Tags {
		ok, err := exists("tags", t.ID)
		if err != nil {
			return ImportResult{}, fmt.Errorf("importing tag %s: %w", t.ID, err)
		}
		if ok {
			result.TagsSkipped++
			continue
		}
		if err := s.insertTag(tx, t); err != nil {
			return ImportResult{}, fmt.Errorf("importing tag %s: %w", t.ID, err)
		}
		result.TagsAdded++
	}

	for _, p := range doc.Prompts {
		ok, err := exists("prompts", p.ID)
		if err != nil {
			return ImportResult{}, fmt.Errorf("importing prompt %s: %w", p.ID, err)
		}
		if ok {
			result.PromptsSkipped++
			continue
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Versions == nil {
			p.Versions = []model.Version{}
		}
		if err := s.insertPrompt(tx, p); err != nil {
			return ImportResult{}, fmt.Errorf("importing prompt %s: %w", p.ID, err)
		}
		result.PromptsAdded++
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("importing: %w", err)
	}
	return result, nil
}
