// Package importer parses and validates export documents before they are
// handed to the store's import transaction.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nikbrunner/ph/internal/model"
)

// ParseDocument reads a JSON export document and validates its structure:
// it must be an object, carry some version marker, and carry prompts as an
// array (possibly empty). Anything else fails with model.ErrInvalidFormat.
// The version value itself is not interpreted.
func ParseDocument(r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return model.Document{}, fmt.Errorf("document is not a JSON object: %w", model.ErrInvalidFormat)
	}

	version, ok := probe["version"]
	if !ok || !truthy(version) {
		return model.Document{}, fmt.Errorf("missing version field: %w", model.ErrInvalidFormat)
	}

	promptsRaw, ok := probe["prompts"]
	if !ok {
		return model.Document{}, fmt.Errorf("missing prompts field: %w", model.ErrInvalidFormat)
	}

	// Unmarshalling JSON null into a slice succeeds, so an explicit null
	// would slip through as an empty list. An array is required.
	var doc model.Document
	if isNull(promptsRaw) || json.Unmarshal(promptsRaw, &doc.Prompts) != nil {
		return model.Document{}, fmt.Errorf("prompts field is not an array: %w", model.ErrInvalidFormat)
	}

	// Folders and tags are optional; absent means empty, but a present
	// value must be an array too.
	if raw, ok := probe["folders"]; ok {
		if isNull(raw) || json.Unmarshal(raw, &doc.Folders) != nil {
			return model.Document{}, fmt.Errorf("folders field is not an array: %w", model.ErrInvalidFormat)
		}
	}
	if raw, ok := probe["tags"]; ok {
		if isNull(raw) || json.Unmarshal(raw, &doc.Tags) != nil {
			return model.Document{}, fmt.Errorf("tags field is not an array: %w", model.ErrInvalidFormat)
		}
	}

	// Keep whatever version marker the document carried, stringly.
	if err := json.Unmarshal(version, &doc.Version); err != nil {
		doc.Version = string(version)
	}

	return doc, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// truthy mirrors the loose presence check of the original document format:
// null, false, 0 and "" do not count as a version marker.
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
