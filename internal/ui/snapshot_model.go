package ui

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
)

// SnapshotConfig configures a non-interactive render of the preview.
type SnapshotConfig struct {
	Options
	// Width and Height stand in for the terminal; zero leaves the window
	// unknown.
	Width     int
	Height    int
	StartKeys []string
}

// RenderSnapshot renders the preview once, after replaying StartKeys.
func RenderSnapshot(ctx context.Context, tb *toolbar.Toolbar, box *toolbar.Box, cfg SnapshotConfig) string {
	m := NewModel(ctx, tb, box, cfg.Options)
	if cfg.Width > 0 || cfg.Height > 0 {
		m.Update(tea.WindowSizeMsg{Width: cfg.Width, Height: cfg.Height})
	}
	ApplyStartupKeys(m, cfg.StartKeys)
	return padSnapshotHeight(m.Render(), cfg.Height)
}

func padSnapshotHeight(view string, height int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
