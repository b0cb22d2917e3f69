package layout

import "testing"

func TestPaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"standard terminal", 24, 17},
		{"large terminal", 50, 43},
		{"tiny terminal clamps to minimum", 8, cfg.MinHeight},
		{"zero height clamps to minimum", 0, cfg.MinHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaneHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("PaneHeight(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestPaneWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal", 80, 24},
		{"wide terminal", 200, 64},
		{"narrow terminal clamps to minimum", 40, cfg.MinWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaneWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("PaneWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	got := ItemWidth(30, cfg)
	if got != 30-cfg.ContentPadding {
		t.Errorf("ItemWidth(30) = %d, want %d", got, 30-cfg.ContentPadding)
	}
}

func TestModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal uses percentage", 120, 60},
		{"wide terminal clamps to max", 200, cfg.MaxWidth},
		{"narrow terminal clamps to min then fits", 40, 36},
		{"very narrow terminal stays positive", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModalWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("ModalWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name        string
		maxVisible  int
		selectedIdx int
		totalItems  int
		wantStart   int
		wantEnd     int
	}{
		{"all items fit", 10, 0, 5, 0, 5},
		{"exactly fits", 5, 4, 5, 0, 5},
		{"selection at top", 5, 0, 20, 0, 5},
		{"selection within first window", 5, 4, 20, 0, 5},
		{"selection scrolls window", 5, 10, 20, 6, 11},
		{"selection at bottom", 5, 19, 20, 15, 20},
		{"empty list", 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleWindow(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.selectedIdx, tt.totalItems, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
