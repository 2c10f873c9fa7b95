// Package loader reads toolbar definitions written in YAML, JSON or TOML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownFormat is returned when a format name is not recognized.
	ErrUnknownFormat = errors.New("unknown format")
)

// Format is a serialization format of a definition.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat accepts yaml/yml, json, toml and an empty string for auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return FormatAuto
}

// Detect sniffs the format of input.
func Detect(input string) Format {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(trimmed) {
		return FormatTOML
	}
	if strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads every definition in path.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := LoadAll(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// LoadReader reads every definition from r.
func LoadReader(r io.Reader, format Format) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadAll(data, format)
}

// LoadBytes decodes a single definition. Multi-document input yields the
// first document.
func LoadBytes(data []byte) (*Definition, error) {
	defs, err := LoadAll(data, FormatAuto)
	if err != nil {
		return nil, err
	}
	return &defs[0], nil
}

// LoadAll decodes every definition in data. YAML input may hold several
// documents separated by ---; a JSON array holds several definitions.
// Unknown fields are rejected.
func LoadAll(data []byte, format Format) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	if format == FormatAuto {
		format = Detect(string(data))
	}
	var (
		defs []Definition
		err  error
	)
	switch format {
	case FormatJSON:
		defs, err = loadJSON(data)
	case FormatTOML:
		defs, err = loadTOML(data)
	case FormatYAML:
		defs, err = loadYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ErrEmptyInput
	}
	return defs, nil
}

// Select returns the definition called name, or the first one when name is
// empty.
func Select(defs []Definition, name string) (*Definition, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyInput
	}
	if name == "" {
		return &defs[0], nil
	}
	names := make([]string, 0, len(defs))
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], nil
		}
		names = append(names, defs[i].Name)
	}
	return nil, fmt.Errorf("toolbar %q not found; available: %s", name, strings.Join(names, ", "))
}

func loadJSON(data []byte) ([]Definition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		var defs []Definition
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return defs, nil
	}
	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []Definition{def}, nil
}

func loadYAML(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var defs []Definition
	for {
		var def Definition
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML (document %d): %w", len(defs)+1, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func loadTOML(data []byte) ([]Definition, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []Definition{def}, nil
}

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML looks for [table] headers or a majority of key = value lines,
// neither of which YAML produces.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}
