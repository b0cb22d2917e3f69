package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "copy")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() []Hint {
	switch a.mode {
	case ModeNormal:
		return []Hint{
			{"j/k", "move"},
			{"h/l", "back/enter"},
			{"a/A", "add prompt/folder"},
			{"e", "edit"},
			{"d", "delete"},
			{"y", "copy"},
			{"v", "versions"},
			{"/", "search"},
			{"?", "help"},
			{"q", "quit"},
		}
	case ModeSearch:
		return []Hint{
			{"↑/↓", "move"},
			{"Enter", "copy"},
			{"Esc", "cancel"},
		}
	case ModePromptForm:
		return []Hint{
			{"Tab", "next field"},
			{"Ctrl+S", "save"},
			{"Esc", "cancel"},
		}
	case ModeFolderForm:
		return []Hint{
			{"Enter", "save"},
			{"Esc", "cancel"},
		}
	case ModeConfirmDelete:
		return []Hint{
			{"y", "delete"},
			{"n", "keep"},
		}
	case ModeVersions:
		return []Hint{
			{"j/k", "move"},
			{"Enter", "restore"},
			{"Esc", "close"},
		}
	}
	return nil
}
