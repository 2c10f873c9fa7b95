package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
)

// Theme defines the colors used to draw a toolbar, its overflow menu and the
// preview chrome. Nil colors are left to the terminal.
type Theme struct {
	Name        string
	EntryFG     color.Color // Entry labels
	KeyFG       color.Color // Entry key hints
	SeparatorFG color.Color // Separator glyphs
	OverflowFG  color.Color // Overflow button glyph
	OverflowBG  color.Color // Overflow button background
	FillBG      color.Color // Cells not covered by any entry
	MenuBorder  color.Color // Overflow menu border
	MenuTitle   color.Color // Overflow menu title
	StatusFG    color.Color // Preview status line
	HelpKey     color.Color // Help key labels
	HelpValue   color.Color // Help descriptions
	BorderStyle string      // normal|rounded
}

// ThemeFromConfig converts a YAML theme into colors.
func ThemeFromConfig(name string, tc ThemeConfig) Theme {
	return Theme{
		Name:        name,
		EntryFG:     parseColor(tc.EntryFG),
		KeyFG:       parseColor(tc.KeyFG),
		SeparatorFG: parseColor(tc.SeparatorFG),
		OverflowFG:  parseColor(tc.OverflowFG),
		OverflowBG:  parseColor(tc.OverflowBG),
		FillBG:      parseColor(tc.FillBG),
		MenuBorder:  parseColor(tc.MenuBorder),
		MenuTitle:   parseColor(tc.MenuTitle),
		StatusFG:    parseColor(tc.StatusFG),
		HelpKey:     parseColor(tc.HelpKey),
		HelpValue:   parseColor(tc.HelpValue),
		BorderStyle: normalizeBorderStyle(tc.BorderStyle),
	}
}

// LookupTheme returns the theme called name from cfg, or the configured
// default when name is empty.
func LookupTheme(cfg ConfigFile, name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = cfg.UI.Theme.Default
	}
	if name == "" {
		name = "dark"
	}
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(cfg.ThemeNames(), ", "))
	}
	return ThemeFromConfig(name, tc), nil
}

// Styles builds the toolbar styles of t. With noColor every color is dropped
// and only the menu border survives.
func (t Theme) Styles(noColor bool) toolbar.Styles {
	if noColor {
		st := toolbar.PlainStyles()
		st.Menu = lipgloss.NewStyle().Border(t.border())
		return st
	}
	return toolbar.Styles{
		Entry:     fg(lipgloss.NewStyle(), t.EntryFG),
		Key:       fg(lipgloss.NewStyle().Bold(true), t.KeyFG),
		Separator: fg(lipgloss.NewStyle(), t.SeparatorFG),
		Overflow:  bg(fg(lipgloss.NewStyle().Bold(true), t.OverflowFG), t.OverflowBG),
		Menu:      borderFG(lipgloss.NewStyle().Border(t.border()).Padding(0, 1), t.MenuBorder),
		MenuKey:   fg(lipgloss.NewStyle(), t.KeyFG),
		MenuTitle: fg(lipgloss.NewStyle().Bold(true), t.MenuTitle),
		Fill:      bg(lipgloss.NewStyle(), t.FillBG),
	}
}

// StatusStyle is the style of the preview status line.
func (t Theme) StatusStyle(noColor bool) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return fg(lipgloss.NewStyle(), t.StatusFG)
}

// HelpStyles are the bubbles help styles matching t.
func (t Theme) HelpStyles(noColor bool) help.Styles {
	plain := lipgloss.NewStyle()
	key, desc := plain, plain
	if !noColor {
		key = fg(plain, t.HelpKey)
		desc = fg(plain, t.HelpValue)
	}
	return help.Styles{
		Ellipsis:       desc,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: desc,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  desc,
	}
}

func (t Theme) border() lipgloss.Border {
	if t.BorderStyle == "rounded" {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

func normalizeBorderStyle(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "rounded") {
		return "rounded"
	}
	return "normal"
}

func parseColor(v ColorValue) color.Color {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return nil
	}
	return lipgloss.Color(s)
}

func fg(s lipgloss.Style, c color.Color) lipgloss.Style {
	if c == nil {
		return s
	}
	return s.Foreground(c)
}

func bg(s lipgloss.Style, c color.Color) lipgloss.Style {
	if c == nil {
		return s
	}
	return s.Background(c)
}

func borderFG(s lipgloss.Style, c color.Color) lipgloss.Style {
	if c == nil {
		return s
	}
	return s.BorderForeground(c)
}
