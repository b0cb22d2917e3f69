package search

import (
	"github.com/nikbrunner/ph/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Prompt         *model.Prompt
	MatchedIndexes []int
	Score          int
}

// promptTitles implements fuzzy.Source for a prompt slice.
type promptTitles []*model.Prompt

func (pt promptTitles) String(i int) string {
	return pt[i].Title
}

func (pt promptTitles) Len() int {
	return len(pt)
}

// FuzzyPrompts searches prompts by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzyPrompts(prompts []model.Prompt, query string) []Result {
	if query == "" {
		return nil
	}

	src := make(promptTitles, len(prompts))
	for i := range prompts {
		src[i] = &prompts[i]
	}

	matches := fuzzy.FindFrom(query, src)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Prompt:         src[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
