package search

import (
	"testing"

	"github.com/nikbrunner/ph/internal/model"
)

func testPrompts() []model.Prompt {
	return []model.Prompt{
		{ID: "p1", Title: "Code review checklist"},
		{ID: "p2", Title: "Commit message"},
		{ID: "p3", Title: "Translate to German"},
	}
}

func TestFuzzyPrompts_EmptyQuery(t *testing.T) {
	results := FuzzyPrompts(testPrompts(), "")
	if results != nil {
		t.Errorf("expected nil for empty query, got %d results", len(results))
	}
}

func TestFuzzyPrompts_ExactSubstring(t *testing.T) {
	results := FuzzyPrompts(testPrompts(), "review")
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}
	if results[0].Prompt.ID != "p1" {
		t.Errorf("expected best match 'Code review checklist', got %q", results[0].Prompt.Title)
	}
}

func TestFuzzyPrompts_NonContiguous(t *testing.T) {
	results := FuzzyPrompts(testPrompts(), "crc")
	if len(results) == 0 {
		t.Fatal("expected fuzzy match for 'crc'")
	}
	if results[0].Prompt.ID != "p1" {
		t.Errorf("expected 'Code review checklist' to match 'crc', got %q", results[0].Prompt.Title)
	}
	if len(results[0].MatchedIndexes) != 3 {
		t.Errorf("expected 3 matched indexes, got %d", len(results[0].MatchedIndexes))
	}
}

func TestFuzzyPrompts_NoMatch(t *testing.T) {
	results := FuzzyPrompts(testPrompts(), "xyzzy")
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestFuzzyPrompts_EmptyPrompts(t *testing.T) {
	results := FuzzyPrompts(nil, "query")
	if len(results) != 0 {
		t.Errorf("expected no matches on empty set, got %d", len(results))
	}
}
