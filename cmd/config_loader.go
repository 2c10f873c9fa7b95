package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/clipbar/internal/ui"
	"github.com/oakwood-commons/clipbar/pkg/settings"
)

// configLoader centralizes config loading so commands agree on the merge.
type configLoader struct {
	load func(path string) (ui.ConfigFile, error)
}

var cfgLoader = configLoader{load: ui.LoadConfig}

func loadMergedConfig(explicit string) (ui.ConfigFile, string, error) {
	path := resolveConfigPath(explicit)
	cfg, err := cfgLoader.load(path)
	return cfg, path, err
}

// resolveConfigPath returns the explicit path if set, otherwise
// $XDG_CONFIG_HOME/clipbar/config.yaml or ~/.config/clipbar/config.yaml if
// present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// renderConfig encodes cfg as yaml or json. YAML output starts with a comment
// naming the file merged over the defaults.
func renderConfig(cfg ui.ConfigFile, source, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return "", fmt.Errorf("encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode config: %w", err)
		}
		return addConfigComments(buf.String(), source), nil
	case "json":
		// ColorValue only knows how to marshal itself to YAML, so go through a
		// generic document.
		var doc any
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encode config: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("encode config: %w", err)
		}
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode config: %w", err)
		}
		return string(b) + "\n", nil
	}
	return "", fmt.Errorf("unknown config output %q (expected yaml or json)", format)
}

func addConfigComments(yml, source string) string {
	header := "# " + settings.CliBinaryName + " configuration (embedded defaults)\n"
	if source != "" {
		header = fmt.Sprintf("# %s configuration (defaults merged with %s)\n", settings.CliBinaryName, source)
	}
	return header + yml
}
