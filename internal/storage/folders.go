package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/nikbrunner/ph/internal/model"
)

// ListFolders returns all folders ordered by their display order, insertion
// order breaking ties.
func (s *Store) ListFolders() ([]model.Folder, error) {
	rows, err := s.db.Query(`SELECT id, name, parent_id, ord FROM folders ORDER BY ord ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// GetFolder returns the folder with the given ID.
func (s *Store) GetFolder(id string) (model.Folder, error) {
	row := s.db.QueryRow(`SELECT id, name, parent_id, ord FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Folder{}, fmt.Errorf("folder %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Folder{}, fmt.Errorf("getting folder: %w", err)
	}
	return f, nil
}

// CreateFolder creates a folder sorting after all existing ones. A nil
// parentID places it at root level.
func (s *Store) CreateFolder(name string, parentID *string) (model.Folder, error) {
	var maxOrder int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(ord), 0) FROM folders`).Scan(&maxOrder); err != nil {
		return model.Folder{}, fmt.Errorf("reading folder order: %w", err)
	}

	f := model.NewFolder(model.NewFolderParams{
		Name:     name,
		ParentID: parentID,
		Order:    maxOrder + 1,
	})

	if err := s.insertFolder(s.db, f); err != nil {
		return model.Folder{}, fmt.Errorf("creating folder: %w", err)
	}
	return f, nil
}

// UpdateFolder merges the patch into the folder and persists the full
// record. The reserved "all" folder cannot be updated.
func (s *Store) UpdateFolder(id string, patch model.FolderPatch) (model.Folder, error) {
	if id == model.AllFolderID {
		return model.Folder{}, fmt.Errorf("update of reserved folder %q: %w", id, model.ErrInvalidOperation)
	}

	f, err := s.GetFolder(id)
	if err != nil {
		return model.Folder{}, err
	}

	patch.Apply(&f)

	_, err = s.db.Exec(
		`UPDATE folders SET name = ?, parent_id = ?, ord = ? WHERE id = ?`,
		f.Name, f.ParentID, f.Order, f.ID,
	)
	if err != nil {
		return model.Folder{}, fmt.Errorf("updating folder: %w", err)
	}
	return f, nil
}

// DeleteFolder removes the folder unconditionally. Child folders and prompts
// referencing it are left in place; the sweeper finds them later. The
// reserved "all" folder cannot be deleted.
func (s *Store) DeleteFolder(id string) error {
	if id == model.AllFolderID {
		return fmt.Errorf("delete of reserved folder %q: %w", id, model.ErrInvalidOperation)
	}

	if _, err := s.db.Exec(`DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}
	return nil
}

// ReorderFolders assigns each listed folder its index as display order, as
// one batched write. Folders not listed keep their previous order, so a
// partial list can produce duplicate order values.
func (s *Store) ReorderFolders(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reordering folders: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE folders SET ord = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("reordering folders: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.Exec(i, id); err != nil {
			return fmt.Errorf("reordering folder %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// FolderTree builds the folder hierarchy starting from the root level.
// A folder whose parent was deleted is promoted to root level rather than
// hidden; a parent cycle in the stored data is reported as an error rather
// than followed.
func (s *Store) FolderTree() ([]model.FolderNode, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Folder, len(folders))
	byParent := make(map[string][]model.Folder)
	for _, f := range folders {
		byID[f.ID] = f
		key := ""
		if f.ParentID != nil {
			key = *f.ParentID
		}
		byParent[key] = append(byParent[key], f)
	}

	visited := make(map[string]bool)

	var build func(parentKey string) []model.FolderNode
	build = func(parentKey string) []model.FolderNode {
		siblings := byParent[parentKey]
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Order < siblings[j].Order
		})

		nodes := []model.FolderNode{}
		for _, f := range siblings {
			visited[f.ID] = true
			nodes = append(nodes, model.FolderNode{Folder: f, Children: build(f.ID)})
		}
		return nodes
	}

	roots := build("")

	// Folders the root walk never reached either hang off a deleted parent
	// or sit inside a parent cycle. Promote the former, refuse the latter.
	for _, f := range folders {
		if visited[f.ID] {
			continue
		}

		seen := map[string]bool{}
		top := f
		for {
			if seen[top.ID] {
				return nil, fmt.Errorf("folder tree cycle at %s", top.ID)
			}
			seen[top.ID] = true

			if top.ParentID == nil {
				break
			}
			parent, ok := byID[*top.ParentID]
			if !ok {
				break
			}
			top = parent
		}

		visited[top.ID] = true
		roots = append(roots, model.FolderNode{Folder: top, Children: build(top.ID)})
	}

	return roots, nil
}

func (s *Store) insertFolder(e execer, f model.Folder) error {
	_, err := e.Exec(
		`INSERT INTO folders (id, name, parent_id, ord) VALUES (?, ?, ?, ?)`,
		f.ID, f.Name, f.ParentID, f.Order,
	)
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (model.Folder, error) {
	var f model.Folder
	var parentID sql.NullString

	if err := row.Scan(&f.ID, &f.Name, &parentID, &f.Order); err != nil {
		return model.Folder{}, err
	}
	if parentID.Valid {
		f.ParentID = &parentID.String
	}
	return f, nil
}
