// Package tui embeds the clipbar toolbar preview in host applications.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/clipbar/internal/ui"
	"github.com/oakwood-commons/clipbar/pkg/core"
	"github.com/oakwood-commons/clipbar/pkg/loader"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
//
// Hosts that want the preview to start at the terminal width can do:
//
//	width, height := tui.DetectTerminalSize()
//	cfg.Width, cfg.Height = width, height
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Run starts the interactive preview of def. Host applications can pass
// optional tea.ProgramOption values to control IO.
func Run(ctx context.Context, def *loader.Definition, cfg Config, opts ...tea.ProgramOption) error {
	m, err := newModel(ctx, def, cfg)
	if err != nil {
		return err
	}
	return ui.RunModel(ctx, m, cfg.StartKeys, opts...)
}

// RenderSnapshot renders one frame of the preview of def after replaying
// cfg.StartKeys.
func RenderSnapshot(ctx context.Context, def *loader.Definition, cfg Config) (string, error) {
	m, err := newModel(ctx, def, cfg)
	if err != nil {
		return "", err
	}
	if cfg.Width > 0 || cfg.Height > 0 {
		m.Update(tea.WindowSizeMsg{Width: cfg.Width, Height: cfg.Height})
	}
	ui.ApplyStartupKeys(m, cfg.StartKeys)
	return m.Render(), nil
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}

func newModel(ctx context.Context, def *loader.Definition, cfg Config) (*ui.Model, error) {
	file, err := ui.LoadConfig(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	theme, err := ui.LookupTheme(file, cfg.ThemeName)
	if err != nil {
		return nil, err
	}
	engine, err := core.New()
	if err != nil {
		return nil, err
	}
	layout, err := engine.Prepare(def, cfg.Values)
	if err != nil {
		return nil, err
	}
	if cfg.Orientation != nil {
		layout.Box.Orientation = *cfg.Orientation
	}

	vertical := layout.Box.Orientation == resize.Vertical
	extent := cfg.Extent
	if extent <= 0 {
		extent = def.Extent
	}
	if extent <= 0 && vertical {
		extent = cfg.Height
	}
	if extent <= 0 && !vertical {
		extent = cfg.Width
	}
	if extent <= 0 {
		extent = file.Fallback(vertical)
	}

	return ui.NewModel(ctx, layout.Toolbar, layout.Box, ui.Options{
		Theme:    theme,
		NoColor:  cfg.NoColor,
		Extent:   extent,
		Step:     file.Step(),
		ShowMenu: cfg.ShowMenu,
	}), nil
}
