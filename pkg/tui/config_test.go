package tui

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ThemeName != "dark" {
		t.Errorf("ThemeName = %q, want dark", cfg.ThemeName)
	}
	if cfg.ShowMenu {
		t.Error("ShowMenu should default to false")
	}
	if cfg.Extent != 0 || cfg.Orientation != nil {
		t.Errorf("extent and orientation should be unset, got %d / %v", cfg.Extent, cfg.Orientation)
	}
}
