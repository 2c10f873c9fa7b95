package tui

import (
	"github.com/oakwood-commons/clipbar/internal/ui"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// Config holds host-provided settings for the toolbar preview.
type Config struct {
	// ConfigFile is merged over the embedded defaults; empty uses the
	// defaults alone.
	ConfigFile string
	// ThemeName selects a theme from the config (dark, light, mono, or one
	// the config file adds). Empty uses the configured default.
	ThemeName string
	NoColor   bool

	// Extent is the starting extent along the layout axis. Zero falls back to
	// the definition, then to Width or Height, then to the configured fallback.
	Extent int
	Width  int
	Height int
	// Orientation overrides the definition's orientation when non-nil.
	Orientation *resize.Orientation

	// Values are merged over the definition's context for conditions.
	Values    map[string]any
	StartKeys []string
	ShowMenu  bool
}

// DefaultConfig returns a baseline preview config with the same defaults as
// the CLI.
func DefaultConfig() Config {
	cfg := Config{}
	if embedded, err := ui.EmbeddedDefaultConfig(); err == nil {
		cfg.ThemeName = embedded.UI.Theme.Default
		if p := embedded.UI.Preview.ShowMenu; p != nil {
			cfg.ShowMenu = *p
		}
	}
	return cfg
}
