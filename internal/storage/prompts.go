package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/ph/internal/model"
)

// ListPrompts returns all prompts in insertion order.
func (s *Store) ListPrompts() ([]model.Prompt, error) {
	return s.queryPrompts(`SELECT id, title, content, folder_id, tags, versions, created_at, updated_at
		FROM prompts ORDER BY rowid ASC`)
}

// GetPrompt returns the prompt with the given ID.
func (s *Store) GetPrompt(id string) (model.Prompt, error) {
	row := s.db.QueryRow(`SELECT id, title, content, folder_id, tags, versions, created_at, updated_at
		FROM prompts WHERE id = ?`, id)
	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Prompt{}, fmt.Errorf("prompt %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Prompt{}, fmt.Errorf("getting prompt: %w", err)
	}
	return p, nil
}

// ListPromptsByFolder returns prompts in the given folder. The reserved
// "all" folder returns every prompt. No subtree expansion: prompts in child
// folders are not included.
func (s *Store) ListPromptsByFolder(folderID string) ([]model.Prompt, error) {
	if folderID == model.AllFolderID {
		return s.ListPrompts()
	}
	return s.queryPrompts(`SELECT id, title, content, folder_id, tags, versions, created_at, updated_at
		FROM prompts WHERE folder_id = ? ORDER BY rowid ASC`, folderID)
}

// ListPromptsByTag returns prompts whose tag list contains the given tag ID.
func (s *Store) ListPromptsByTag(tagID string) ([]model.Prompt, error) {
	return s.queryPrompts(`SELECT id, title, content, folder_id, tags, versions, created_at, updated_at
		FROM prompts
		WHERE EXISTS (SELECT 1 FROM json_each(prompts.tags) WHERE json_each.value = ?)
		ORDER BY rowid ASC`, tagID)
}

// SearchPrompts returns prompts whose title or content contains the keyword,
// case-insensitively. An empty or whitespace-only keyword returns all
// prompts. The scan is deliberately a full pass over the set; there is no
// content index.
func (s *Store) SearchPrompts(keyword string) ([]model.Prompt, error) {
	all, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return all, nil
	}

	lower := strings.ToLower(keyword)
	matches := []model.Prompt{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(strings.ToLower(p.Content), lower) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// CreatePrompt creates a prompt with defaults applied and an empty version
// history.
func (s *Store) CreatePrompt(params model.NewPromptParams) (model.Prompt, error) {
	p := model.NewPrompt(params)
	if err := s.insertPrompt(s.db, p); err != nil {
		return model.Prompt{}, fmt.Errorf("creating prompt: %w", err)
	}
	return p, nil
}

// UpdatePrompt merges the patch into the prompt and persists the full
// record. When the patch changes the content, the superseded content is
// prepended to the version history, which is then truncated to
// model.MaxVersions entries. The updated timestamp always advances, content
// change or not.
func (s *Store) UpdatePrompt(id string, patch model.PromptPatch) (model.Prompt, error) {
	p, err := s.GetPrompt(id)
	if err != nil {
		return model.Prompt{}, err
	}

	if patch.Content.IsSet() && patch.Content.Value() != p.Content {
		version := model.Version{
			ID:        model.NewID(),
			Content:   p.Content,
			CreatedAt: p.UpdatedAt,
		}
		p.Versions = append([]model.Version{version}, p.Versions...)
		if len(p.Versions) > model.MaxVersions {
			p.Versions = p.Versions[:model.MaxVersions]
		}
	}

	patch.Apply(&p)
	p.UpdatedAt = time.Now()

	_, err = s.db.Exec(
		`UPDATE prompts SET title = ?, content = ?, folder_id = ?, tags = ?, versions = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Content, p.FolderID, marshalJSON(p.Tags), marshalJSON(p.Versions),
		formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("updating prompt: %w", err)
	}
	return p, nil
}

// RestoreVersion sets the prompt's content back to the given version's
// content via a normal update, so the current content is itself pushed onto
// the version history first. A restore is therefore always reversible one
// step back.
func (s *Store) RestoreVersion(promptID, versionID string) (model.Prompt, error) {
	p, err := s.GetPrompt(promptID)
	if err != nil {
		return model.Prompt{}, err
	}

	for _, v := range p.Versions {
		if v.ID == versionID {
			return s.UpdatePrompt(promptID, model.PromptPatch{Content: model.Set(v.Content)})
		}
	}
	return model.Prompt{}, fmt.Errorf("version %s of prompt %s: %w", versionID, promptID, model.ErrNotFound)
}

// DeletePrompt removes the prompt. There is no tombstone and no undo.
func (s *Store) DeletePrompt(id string) error {
	if _, err := s.db.Exec(`DELETE FROM prompts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}
	return nil
}

// CountPromptsByFolder counts prompts in the given folder. The reserved
// "all" folder counts everything.
func (s *Store) CountPromptsByFolder(folderID string) (int, error) {
	var count int
	var err error
	if folderID == model.AllFolderID {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM prompts`).Scan(&count)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM prompts WHERE folder_id = ?`, folderID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting prompts: %w", err)
	}
	return count, nil
}

func (s *Store) queryPrompts(query string, args ...any) ([]model.Prompt, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

func (s *Store) insertPrompt(e execer, p model.Prompt) error {
	_, err := e.Exec(
		`INSERT INTO prompts (id, title, content, folder_id, tags, versions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.FolderID, marshalJSON(p.Tags), marshalJSON(p.Versions),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return err
}

func scanPrompt(row rowScanner) (model.Prompt, error) {
	var p model.Prompt
	var folderID sql.NullString
	var tagsJSON, versionsJSON string
	var createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.Title, &p.Content, &folderID,
		&tagsJSON, &versionsJSON, &createdAt, &updatedAt); err != nil {
		return model.Prompt{}, err
	}

	if folderID.Valid {
		p.FolderID = &folderID.String
	}

	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		p.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(versionsJSON), &p.Versions); err != nil {
		p.Versions = []model.Version{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Versions == nil {
		p.Versions = []model.Version{}
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Prompt{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Prompt{}, err
	}

	return p, nil
}
