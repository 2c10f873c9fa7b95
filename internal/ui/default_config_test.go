package ui

import (
	"os"
	"path/filepath"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultConfig(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "clipbar", cfg.App.About.Name)
	assert.Equal(t, "dark", cfg.UI.Theme.Default)
	assert.Equal(t, []string{"dark", "light", "mono"}, cfg.ThemeNames())
	assert.Equal(t, 1, cfg.Step())
	assert.Equal(t, 80, cfg.Fallback(false))
	assert.Equal(t, 24, cfg.Fallback(true))
	assert.Equal(t, ColorValue("81"), cfg.UI.Themes["dark"].KeyFG)
}

func TestLoadConfigMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	user := `ui:
  theme:
    default: light
  preview:
    step: 4
  themes:
    light:
      key_fg: "#ff0000"
    neon:
      overflow_fg: 201
`
	require.NoError(t, os.WriteFile(path, []byte(user), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme.Default)
	assert.Equal(t, 4, cfg.Step())
	assert.Equal(t, ColorValue("#ff0000"), cfg.UI.Themes["light"].KeyFG)
	assert.Equal(t, ColorValue("235"), cfg.UI.Themes["light"].EntryFG)
	assert.Equal(t, ColorValue("201"), cfg.UI.Themes["neon"].OverflowFG)
	assert.Equal(t, ColorValue("252"), cfg.UI.Themes["neon"].EntryFG, "new themes start from dark")

	defaults, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, ColorValue("25"), defaults.UI.Themes["light"].KeyFG, "defaults must not be mutated")
	assert.NotContains(t, defaults.UI.Themes, "neon")
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui:\n  bogus: 1\n"), 0o600))
	_, err = LoadConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme.Default)
}

func TestColorValueMarshalsNumbersAsInts(t *testing.T) {
	out, err := yaml.Marshal(map[string]ColorValue{"a": "81", "b": "#fff", "c": ""})
	require.NoError(t, err)
	assert.Equal(t, "a: 81\nb: '#fff'\nc: \"\"\n", string(out))
}

func TestLookupTheme(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	th, err := LookupTheme(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)
	assert.NotNil(t, th.KeyFG)
	assert.Nil(t, th.FillBG)
	assert.Equal(t, "rounded", th.BorderStyle)

	mono, err := LookupTheme(cfg, " mono ")
	require.NoError(t, err)
	assert.Nil(t, mono.KeyFG)
	assert.Equal(t, "normal", mono.BorderStyle)

	_, err = LookupTheme(cfg, "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: dark, light, mono")
}

func TestThemeStyles(t *testing.T) {
	th := ThemeFromConfig("x", ThemeConfig{KeyFG: "81", BorderStyle: "Rounded"})
	assert.Equal(t, "rounded", th.BorderStyle)

	plain := th.Styles(true)
	assert.Equal(t, "F1", plain.Key.Render("F1"))
	assert.Equal(t, lipgloss.RoundedBorder(), plain.Menu.GetBorderStyle())

	colored := th.Styles(false)
	assert.True(t, colored.Key.GetBold())
	assert.Equal(t, lipgloss.Color("81"), colored.Key.GetForeground())

	hs := th.HelpStyles(true)
	assert.Equal(t, "q", hs.ShortKey.Render("q"))
	assert.Equal(t, "ok", th.StatusStyle(true).Render("ok"))
}
