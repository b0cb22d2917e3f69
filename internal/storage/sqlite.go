package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/ph/internal/model"
)

const currentSchemaVersion = 1

// Store is the SQLite-backed data layer. It owns the folder, tag and prompt
// repositories and the import/export transaction.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the database at path, runs migrations
// and seeds default data into an empty database.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *Store) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			ord INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);
		CREATE INDEX IF NOT EXISTS idx_folders_ord ON folders(ord);

		CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);

		CREATE TABLE IF NOT EXISTS prompts (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			folder_id TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			versions TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_prompts_folder_id ON prompts(folder_id);
		CREATE INDEX IF NOT EXISTS idx_prompts_updated_at ON prompts(updated_at);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// seed re-asserts the reserved "all" folder and, on a fresh database, adds a
// small set of starter folders and tags.
func (s *Store) seed() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM folders").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		starters := []model.Folder{
			{ID: model.AllFolderID, Name: "All", ParentID: nil, Order: 0},
			{ID: model.NewID(), Name: "Writing", ParentID: nil, Order: 1},
			{ID: model.NewID(), Name: "Coding", ParentID: nil, Order: 2},
			{ID: model.NewID(), Name: "Translation", ParentID: nil, Order: 3},
		}
		for _, f := range starters {
			if err := s.insertFolder(s.db, f); err != nil {
				return err
			}
		}

		starterTags := []model.Tag{
			{ID: model.NewID(), Name: "writing", Color: model.TagColors[0]},
			{ID: model.NewID(), Name: "coding", Color: model.TagColors[1]},
			{ID: model.NewID(), Name: "translation", Color: model.TagColors[2]},
			{ID: model.NewID(), Name: "analysis", Color: model.TagColors[3]},
		}
		for _, t := range starterTags {
			if err := s.insertTag(s.db, t); err != nil {
				return err
			}
		}
		return nil
	}

	// The sentinel must exist even if earlier data predates it.
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO folders (id, name, parent_id, ord) VALUES (?, 'All', NULL, 0)`,
		model.AllFolderID,
	)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
