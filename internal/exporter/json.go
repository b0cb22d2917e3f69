// Package exporter renders the store's snapshot into its two interchange
// formats: the JSON export document and the read-only Markdown projection.
package exporter

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nikbrunner/ph/internal/model"
)

// ExportJSON renders the document as indented JSON.
func ExportJSON(doc model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export document: %w", err)
	}
	return data, nil
}

// DefaultJSONPath returns the default backup file path inside dir.
// Format: ph-backup-YYYY-MM-DD.json
func DefaultJSONPath(dir string) string {
	filename := fmt.Sprintf("ph-backup-%s.json", time.Now().Format("2006-01-02"))
	return filepath.Join(dir, filename)
}

// DefaultMarkdownPath returns the default markdown export path inside dir.
// Format: ph-export-YYYY-MM-DD.md
func DefaultMarkdownPath(dir string) string {
	filename := fmt.Sprintf("ph-export-%s.md", time.Now().Format("2006-01-02"))
	return filepath.Join(dir, filename)
}
