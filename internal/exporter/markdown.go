package exporter

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/ph/internal/model"
)

// ExportMarkdown renders the document as a single Markdown file: a header
// with export time and prompt count, one section per folder (prompts with a
// missing or deleted folder land in an Uncategorized bucket), and per prompt
// its metadata, content and version history. Purely a projection; it is not
// meant to round-trip.
func ExportMarkdown(doc model.Document) string {
	var b strings.Builder

	b.WriteString("# Prompt export\n\n")
	fmt.Fprintf(&b, "> Exported: %s\n", doc.ExportedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "> %d prompts\n\n", len(doc.Prompts))
	b.WriteString("---\n\n")

	tagsByID := make(map[string]model.Tag, len(doc.Tags))
	for _, t := range doc.Tags {
		tagsByID[t.ID] = t
	}

	type group struct {
		name    string
		prompts []model.Prompt
	}

	groups := make(map[string]*group, len(doc.Folders)+1)
	order := []string{}
	for _, f := range doc.Folders {
		groups[f.ID] = &group{name: f.Name}
		order = append(order, f.ID)
	}
	const uncategorized = "uncategorized"
	groups[uncategorized] = &group{name: "Uncategorized"}
	order = append(order, uncategorized)

	for _, p := range doc.Prompts {
		key := uncategorized
		if p.FolderID != nil {
			if _, ok := groups[*p.FolderID]; ok {
				key = *p.FolderID
			}
		}
		groups[key].prompts = append(groups[key].prompts, p)
	}

	for _, id := range order {
		g := groups[id]
		if len(g.prompts) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## 📁 %s\n\n", g.name)

		for _, p := range g.prompts {
			writePrompt(&b, p, g.name, tagsByID)
			b.WriteString("\n---\n\n")
		}
	}

	return b.String()
}

// writePrompt renders one prompt as a titled block with metadata, body and
// version history, newest version numbered highest.
func writePrompt(b *strings.Builder, p model.Prompt, folderName string, tagsByID map[string]model.Tag) {
	var tagNames []string
	for _, tagID := range p.Tags {
		if t, ok := tagsByID[tagID]; ok {
			tagNames = append(tagNames, "#"+t.Name)
		}
	}
	tagLabel := strings.Join(tagNames, " ")
	if tagLabel == "" {
		tagLabel = "no tags"
	}

	fmt.Fprintf(b, "# %s\n\n", p.Title)
	fmt.Fprintf(b, "> 📁 %s | 🏷️ %s | 📅 %s\n\n", folderName, tagLabel, p.UpdatedAt.Format("2006-01-02"))
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "%s\n\n", p.Content)

	if len(p.Versions) > 0 {
		b.WriteString("---\n\n")
		b.WriteString("## Version history\n\n")
		for i, v := range p.Versions {
			fmt.Fprintf(b, "### v%d (%s)\n\n", len(p.Versions)-i, v.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(b, "```\n%s\n```\n\n", v.Content)
		}
	}
}
