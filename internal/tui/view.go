package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/ph/internal/tui/layout"
)

// renderView dispatches to the renderer for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeSearch:
		return a.renderSearch()
	case ModePromptForm:
		return a.renderPromptForm()
	case ModeFolderForm:
		return a.renderFolderForm()
	case ModeConfirmDelete:
		return a.renderConfirmDelete()
	case ModeVersions:
		return a.renderVersions()
	case ModeHelp:
		return a.renderHelp()
	default:
		return a.renderNormal()
	}
}

func (a App) renderNormal() string {
	paneHeight := layout.PaneHeight(a.height, a.cfg.Pane)
	listWidth := layout.PaneWidth(a.width, a.cfg.Pane)
	previewWidth := a.width - listWidth - a.cfg.Pane.WidthOffset
	if previewWidth < a.cfg.Pane.MinWidth {
		previewWidth = a.cfg.Pane.MinWidth
	}

	list := a.renderItemList(listWidth, paneHeight)
	preview := a.renderPreview(previewWidth, paneHeight)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.PaneActive.Width(listWidth).Height(paneHeight).Render(list),
		a.styles.Pane.Width(previewWidth).Height(paneHeight).Render(preview),
	)

	var b strings.Builder
	b.WriteString(a.styles.Breadcrumb.Render(a.breadcrumb()))
	b.WriteString("\n")
	b.WriteString(panes)
	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.styles.App.Render(b.String())
}

// breadcrumb renders the folder path of the current view.
func (a App) breadcrumb() string {
	parts := []string{"~"}
	for _, id := range a.folderStack {
		parts = append(parts, a.folderNames[id])
	}
	if a.currentFolderID != nil {
		parts = append(parts, a.folderNames[*a.currentFolderID])
	}
	return strings.Join(parts, " / ")
}

func (a App) renderItemList(width, height int) string {
	itemWidth := layout.ItemWidth(width, a.cfg.Pane)

	if len(a.items) == 0 {
		return a.styles.Empty.Render("No prompts here. Press a to add one.")
	}

	visible := height - 1
	start, end := layout.VisibleWindow(visible, a.cursor, len(a.items))

	var b strings.Builder
	for i := start; i < end; i++ {
		item := a.items[i]

		label := item.Title()
		if item.IsFolder() {
			count, err := a.repo.CountPromptsByFolder(item.Folder.ID)
			if err == nil {
				label = fmt.Sprintf("%s/ (%d)", item.Folder.Name, count)
			} else {
				label = item.Folder.Name + "/"
			}
		}

		label, _ = layout.TruncateText(label, itemWidth, a.cfg.Text)
		if i == a.cursor {
			b.WriteString(a.styles.ItemSelected.Render(label))
		} else {
			b.WriteString(a.styles.Item.Render(label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderPreview(width, height int) string {
	item := a.selectedItem()
	if item == nil {
		return a.styles.Empty.Render("Nothing selected")
	}

	itemWidth := layout.ItemWidth(width, a.cfg.Pane)

	if item.IsFolder() {
		var b strings.Builder
		b.WriteString(a.styles.Title.Render(item.Folder.Name))
		b.WriteString("\n\n")
		count, err := a.repo.CountPromptsByFolder(item.Folder.ID)
		if err == nil {
			b.WriteString(a.styles.Meta.Render(fmt.Sprintf("%d prompts", count)))
		}
		return b.String()
	}

	p := item.Prompt

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(p.Title))
	b.WriteString("\n")

	meta := []string{p.UpdatedAt.Format("2006-01-02 15:04")}
	if len(p.Versions) > 0 {
		meta = append(meta, fmt.Sprintf("%d versions", len(p.Versions)))
	}
	if names := a.tagNames(p.Tags); names != "" {
		meta = append(meta, names)
	}
	b.WriteString(a.styles.Meta.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	lines := strings.Split(p.Content, "\n")
	maxLines := height - 4
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i], _ = layout.TruncateText(line, itemWidth, a.cfg.Text)
	}
	b.WriteString(a.styles.Content.Render(strings.Join(lines, "\n")))

	return b.String()
}

func (a App) renderSearch() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Search prompts"))
	b.WriteString("\n\n")
	b.WriteString(a.search.Input.View())
	b.WriteString("\n\n")

	if len(a.search.Results) == 0 {
		b.WriteString(a.styles.Empty.Render("No matches"))
	} else {
		maxVisible := a.height - 10
		if maxVisible < 3 {
			maxVisible = 3
		}
		start, end := layout.VisibleWindow(maxVisible, a.search.Cursor, len(a.search.Results))
		for i := start; i < end; i++ {
			p := a.search.Results[i]
			label, _ := layout.TruncateText(p.Title, modalWidth-4, a.cfg.Text)
			if i == a.search.Cursor {
				b.WriteString(a.styles.ItemSelected.Render(label))
			} else {
				b.WriteString(a.styles.Item.Render(label))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.centerModal(b.String(), modalWidth)
}

func (a App) renderPromptForm() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	title := "Add prompt"
	if a.promptForm.EditID != "" {
		title = "Edit prompt"
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Meta.Render("Title"))
	b.WriteString("\n")
	b.WriteString(a.promptForm.Title.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Meta.Render("Content"))
	b.WriteString("\n")
	b.WriteString(a.promptForm.Content.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Meta.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(a.promptForm.Tags.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.centerModal(b.String(), modalWidth)
}

func (a App) renderFolderForm() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	title := "Add folder"
	if a.folderForm.EditID != "" {
		title = "Rename folder"
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.folderForm.Name.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.centerModal(b.String(), modalWidth)
}

func (a App) renderConfirmDelete() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	name := ""
	kind := "prompt"
	if a.deleteTarget != nil {
		name = a.deleteTarget.Title()
		if a.deleteTarget.IsFolder() {
			kind = "folder"
		}
	}

	var b strings.Builder
	b.WriteString(a.styles.Error.Render(fmt.Sprintf("Delete %s %q?", kind, name)))
	b.WriteString("\n")
	if kind == "folder" {
		b.WriteString(a.styles.Meta.Render("Prompts inside keep their folder reference."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.centerModal(b.String(), modalWidth)
}

func (a App) renderVersions() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Version history"))
	b.WriteString("\n\n")

	if len(a.versions.Versions) == 0 {
		b.WriteString(a.styles.Empty.Render("No previous versions"))
		b.WriteString("\n")
	} else {
		for i, v := range a.versions.Versions {
			label := fmt.Sprintf("v%d  %s", len(a.versions.Versions)-i, v.CreatedAt.Format("2006-01-02 15:04"))
			if i == a.versions.Cursor {
				b.WriteString(a.styles.ItemSelected.Render(label))
			} else {
				b.WriteString(a.styles.Item.Render(label))
			}
			b.WriteString("\n")
		}

		b.WriteString("\n")
		v := a.versions.Versions[a.versions.Cursor]
		preview, _ := layout.TruncateText(firstLine(v.Content), modalWidth-4, a.cfg.Text)
		b.WriteString(a.styles.Meta.Render(preview))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.centerModal(b.String(), modalWidth)
}

func (a App) renderHelp() string {
	modalWidth := layout.ModalWidth(a.width, a.cfg.Modal)

	rows := []Hint{
		{"j/k", "move down/up"},
		{"h/l", "go back / enter folder"},
		{"gg/G", "jump to top/bottom"},
		{"a", "add prompt"},
		{"A", "add folder"},
		{"e", "edit selected item"},
		{"d", "delete selected item"},
		{"y", "copy prompt content to clipboard"},
		{"v", "version history / restore"},
		{"/", "search title and content"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("ph - prompt manager"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			a.styles.HintKey.Render(fmt.Sprintf("%-5s", r.Key)),
			a.styles.HintDesc.Render(r.Desc)))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Meta.Render("Press any key to close"))

	return a.centerModal(b.String(), modalWidth)
}

// centerModal places modal content in the middle of the screen.
func (a App) centerModal(content string, width int) string {
	box := a.styles.Pane.Width(width).Render(content)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

// firstLine returns the first non-empty line of content.
func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "(empty)"
}
