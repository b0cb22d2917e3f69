// Package layout holds pure layout math for the TUI: pane sizing, modal
// sizing and scroll windows. Everything here is deterministic and testable
// without a terminal.
package layout

// Config holds all layout-related configuration values.
type Config struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + breadcrumb (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted from the terminal width before computing
	// the list pane width, accounting for borders and spacing. The preview
	// pane takes the remainder.
	WidthOffset int

	// MinWidth is the minimum width for each pane.
	MinWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	TagsCharLimit   int
	FilterCharLimit int

	StandardWidth int
	ContentHeight int // textarea height for prompt content
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		Pane: PaneConfig{
			HeightReduction: 7,
			MinHeight:       5,
			WidthOffset:     8,
			MinWidth:        20,
			ContentPadding:  4,
		},
		Modal: ModalConfig{
			WidthPercent: 50,
			MinWidth:     50,
			MaxWidth:     80,
		},
		Input: InputConfig{
			TitleCharLimit:  120,
			TagsCharLimit:   200,
			FilterCharLimit: 80,
			StandardWidth:   40,
			ContentHeight:   10,
		},
		Text: TextConfig{
			Ellipsis: "…",
		},
	}
}

// PaneHeight computes the content height for panes.
// Returns at least MinHeight.
func PaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// PaneWidth computes the width of the list pane.
func PaneWidth(terminalWidth int, cfg PaneConfig) int {
	width := (terminalWidth - cfg.WidthOffset) / 3
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	return width
}

// ItemWidth computes the width available for item content within a pane.
func ItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// ModalWidth computes responsive modal width from the terminal width,
// clamped between MinWidth and MaxWidth.
func ModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// VisibleWindow computes the start and end indices for a scrollable list so
// that the selected item stays visible. Returns (start, end) where
// items[start:end] should be displayed.
func VisibleWindow(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
