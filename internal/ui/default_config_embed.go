package ui

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     ConfigFile
	embeddedConfigErr  error
)

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	s := string(c)
	if s == "" {
		return "", nil
	}
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is the YAML form of a Theme. Empty colors are left unset.
type ThemeConfig struct {
	EntryFG     ColorValue `yaml:"entry_fg,omitempty"`
	KeyFG       ColorValue `yaml:"key_fg,omitempty"`
	SeparatorFG ColorValue `yaml:"separator_fg,omitempty"`
	OverflowFG  ColorValue `yaml:"overflow_fg,omitempty"`
	OverflowBG  ColorValue `yaml:"overflow_bg,omitempty"`
	FillBG      ColorValue `yaml:"fill_bg,omitempty"`
	MenuBorder  ColorValue `yaml:"menu_border,omitempty"`
	MenuTitle   ColorValue `yaml:"menu_title,omitempty"`
	StatusFG    ColorValue `yaml:"status_fg,omitempty"`
	HelpKey     ColorValue `yaml:"help_key,omitempty"`
	HelpValue   ColorValue `yaml:"help_value,omitempty"`
	BorderStyle string     `yaml:"border_style,omitempty"`
}

// AboutConfig contains application metadata.
type AboutConfig struct {
	Name          string `yaml:"name,omitempty"`
	Description   string `yaml:"description,omitempty"`
	RepositoryURL string `yaml:"repository_url,omitempty"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	About AboutConfig `yaml:"about"`
}

// ThemeSelectionConfig holds theme selection configuration.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty"`
}

// PreviewConfig holds settings of the interactive preview.
type PreviewConfig struct {
	Step           *int  `yaml:"step,omitempty"`
	ShowMenu       *bool `yaml:"show_menu,omitempty"`
	FallbackWidth  *int  `yaml:"fallback_width,omitempty"`
	FallbackHeight *int  `yaml:"fallback_height,omitempty"`
}

// Config holds UI-specific configuration.
type Config struct {
	Theme   ThemeSelectionConfig   `yaml:"theme"`
	Preview PreviewConfig          `yaml:"preview"`
	Themes  map[string]ThemeConfig `yaml:"themes,omitempty"`
}

// ConfigFile is the layout of default_config.yaml and of user config files.
type ConfigFile struct {
	App AppConfig `yaml:"app"`
	UI  Config    `yaml:"ui"`
}

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses and returns the embedded default configuration.
func EmbeddedDefaultConfig() (ConfigFile, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		embeddedConfig, embeddedConfigErr = ParseConfig(embeddedDefaultConfig)
		if embeddedConfigErr != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", embeddedConfigErr)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// ParseConfig decodes a config file. Unknown keys are rejected.
func ParseConfig(data []byte) (ConfigFile, error) {
	var cfg ConfigFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	if cfg.UI.Themes == nil {
		cfg.UI.Themes = map[string]ThemeConfig{}
	}
	return cfg, nil
}

// LoadConfig returns the embedded defaults merged with the file at path. An
// empty path yields the defaults alone.
func LoadConfig(path string) (ConfigFile, error) {
	base, err := EmbeddedDefaultConfig()
	if err != nil {
		return base, err
	}
	base = cloneConfig(base)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	user, err := ParseConfig(data)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return MergeConfig(base, user), nil
}

// MergeConfig lays over on top of base. Themes are merged field by field; a
// theme unknown to base starts from the dark preset.
func MergeConfig(base, over ConfigFile) ConfigFile {
	out := cloneConfig(base)
	if over.App.About.Name != "" {
		out.App.About.Name = over.App.About.Name
	}
	if over.App.About.Description != "" {
		out.App.About.Description = over.App.About.Description
	}
	if over.App.About.RepositoryURL != "" {
		out.App.About.RepositoryURL = over.App.About.RepositoryURL
	}
	if over.UI.Theme.Default != "" {
		out.UI.Theme.Default = over.UI.Theme.Default
	}
	p := over.UI.Preview
	if p.Step != nil {
		out.UI.Preview.Step = p.Step
	}
	if p.ShowMenu != nil {
		out.UI.Preview.ShowMenu = p.ShowMenu
	}
	if p.FallbackWidth != nil {
		out.UI.Preview.FallbackWidth = p.FallbackWidth
	}
	if p.FallbackHeight != nil {
		out.UI.Preview.FallbackHeight = p.FallbackHeight
	}
	for name, tc := range over.UI.Themes {
		b, ok := out.UI.Themes[name]
		if !ok {
			b = out.UI.Themes["dark"]
		}
		out.UI.Themes[name] = mergeThemeConfig(b, tc)
	}
	return out
}

// ThemeNames lists the themes of cfg in sorted order.
func (c ConfigFile) ThemeNames() []string {
	names := make([]string, 0, len(c.UI.Themes))
	for name := range c.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Step is the preview resize step, at least 1.
func (c ConfigFile) Step() int {
	if c.UI.Preview.Step == nil || *c.UI.Preview.Step < 1 {
		return 1
	}
	return *c.UI.Preview.Step
}

// Fallback is the extent used when nothing else provides one.
func (c ConfigFile) Fallback(vertical bool) int {
	if vertical {
		if v := c.UI.Preview.FallbackHeight; v != nil && *v > 0 {
			return *v
		}
		return 24
	}
	if v := c.UI.Preview.FallbackWidth; v != nil && *v > 0 {
		return *v
	}
	return 80
}

func mergeThemeConfig(base, over ThemeConfig) ThemeConfig {
	pick := func(b, o ColorValue) ColorValue {
		if o != "" {
			return o
		}
		return b
	}
	base.EntryFG = pick(base.EntryFG, over.EntryFG)
	base.KeyFG = pick(base.KeyFG, over.KeyFG)
	base.SeparatorFG = pick(base.SeparatorFG, over.SeparatorFG)
	base.OverflowFG = pick(base.OverflowFG, over.OverflowFG)
	base.OverflowBG = pick(base.OverflowBG, over.OverflowBG)
	base.FillBG = pick(base.FillBG, over.FillBG)
	base.MenuBorder = pick(base.MenuBorder, over.MenuBorder)
	base.MenuTitle = pick(base.MenuTitle, over.MenuTitle)
	base.StatusFG = pick(base.StatusFG, over.StatusFG)
	base.HelpKey = pick(base.HelpKey, over.HelpKey)
	base.HelpValue = pick(base.HelpValue, over.HelpValue)
	if over.BorderStyle != "" {
		base.BorderStyle = over.BorderStyle
	}
	return base
}

func cloneConfig(c ConfigFile) ConfigFile {
	themes := make(map[string]ThemeConfig, len(c.UI.Themes))
	for k, v := range c.UI.Themes {
		themes[k] = v
	}
	c.UI.Themes = themes
	return c
}
