package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikbrunner/ph/internal/model"
)

// ListTags returns all tags in insertion order.
func (s *Store) ListTags() ([]model.Tag, error) {
	rows, err := s.db.Query(`SELECT id, name, color FROM tags ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetTag returns the tag with the given ID.
func (s *Store) GetTag(id string) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRow(`SELECT id, name, color FROM tags WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, fmt.Errorf("tag %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Tag{}, fmt.Errorf("getting tag: %w", err)
	}
	return t, nil
}

// GetTagByName returns the first tag with exactly the given name. The match
// is case-sensitive; "Go" and "go" are distinct tags.
func (s *Store) GetTagByName(name string) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRow(`SELECT id, name, color FROM tags WHERE name = ? ORDER BY rowid ASC LIMIT 1`, name).
		Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, fmt.Errorf("tag %q: %w", name, model.ErrNotFound)
	}
	if err != nil {
		return model.Tag{}, fmt.Errorf("getting tag by name: %w", err)
	}
	return t, nil
}

// CreateTag creates a tag, or returns the existing one unchanged when a tag
// with exactly the same name already exists. An empty color picks a random
// palette color.
func (s *Store) CreateTag(name, color string) (model.Tag, error) {
	existing, err := s.GetTagByName(name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Tag{}, err
	}

	t := model.NewTag(model.NewTagParams{Name: name, Color: color})
	if err := s.insertTag(s.db, t); err != nil {
		return model.Tag{}, fmt.Errorf("creating tag: %w", err)
	}
	return t, nil
}

// UpdateTag merges the patch into the tag and persists the full record.
func (s *Store) UpdateTag(id string, patch model.TagPatch) (model.Tag, error) {
	t, err := s.GetTag(id)
	if err != nil {
		return model.Tag{}, err
	}

	patch.Apply(&t)

	_, err = s.db.Exec(`UPDATE tags SET name = ?, color = ? WHERE id = ?`, t.Name, t.Color, t.ID)
	if err != nil {
		return model.Tag{}, fmt.Errorf("updating tag: %w", err)
	}
	return t, nil
}

// DeleteTag removes the tag. Prompts still listing it keep the dangling
// reference; the sweeper finds them later.
func (s *Store) DeleteTag(id string) error {
	if _, err := s.db.Exec(`DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

// GetOrCreateTags resolves each name to an existing or newly created tag,
// preserving input order.
func (s *Store) GetOrCreateTags(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		t, err := s.CreateTag(name, "")
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (s *Store) insertTag(e execer, t model.Tag) error {
	_, err := e.Exec(`INSERT INTO tags (id, name, color) VALUES (?, ?, ?)`, t.ID, t.Name, t.Color)
	return err
}
