// Package formatter renders layout passes as tables or structured documents.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
)

// Output is an output format.
type Output string

const (
	OutputTable Output = "table"
	OutputJSON  Output = "json"
	OutputYAML  Output = "yaml"
	OutputTOML  Output = "toml"
)

// Outputs lists the formats Format accepts.
var Outputs = []Output{OutputTable, OutputJSON, OutputYAML, OutputTOML}

// ParseOutput validates an output name; yml is accepted for yaml.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case OutputTable, OutputJSON, OutputYAML, OutputTOML:
		return o, nil
	case "yml":
		return OutputYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected table, json, yaml or toml)", s)
}

// Options tune Format.
type Options struct {
	NoColor bool
	// Indent is the YAML and JSON indent; 0 means 2.
	Indent int
	// MaxColumnWidth truncates table cells wider than it; 0 disables.
	MaxColumnWidth int
}

// TableColors controls the rendered colors of the table. Nil fields fall back
// to defaults.
type TableColors struct {
	HeaderFG    color.Color
	SeparatorFG color.Color
	ShownFG     color.Color
	OverflowFG  color.Color
	ClippedFG   color.Color
	SkippedFG   color.Color
}

var (
	headerStyle    lipgloss.Style
	separatorStyle lipgloss.Style
	stateStyles    map[State]lipgloss.Style
)

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	SetTableTheme(TableColors{})
}

// SetTableTheme overrides the table styles.
func SetTableTheme(tc TableColors) {
	or := func(c color.Color, def string) color.Color {
		if c == nil {
			return lipgloss.Color(def)
		}
		return c
	}
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(or(tc.HeaderFG, "12"))
	separatorStyle = lipgloss.NewStyle().Foreground(or(tc.SeparatorFG, "240"))
	stateStyles = map[State]lipgloss.Style{
		StateShown:    lipgloss.NewStyle().Foreground(or(tc.ShownFG, "114")),
		StateOverflow: lipgloss.NewStyle().Foreground(or(tc.OverflowFG, "214")),
		StateClipped:  lipgloss.NewStyle().Foreground(or(tc.ClippedFG, "203")),
		StateSkipped:  lipgloss.NewStyle().Foreground(or(tc.SkippedFG, "244")),
	}
}

// Format renders arr in the given output format.
func Format(arr toolbar.Arrangement, out Output, opts Options) (string, error) {
	r := NewReport(arr)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	switch out {
	case OutputTable, "":
		return RenderTable(r, opts), nil
	case OutputJSON:
		b, err := json.MarshalIndent(r, "", strings.Repeat(" ", indent))
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b) + "\n", nil
	case OutputYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(r); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return buf.String(), nil
	case OutputTOML:
		b, err := toml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unknown output format %q", out)
}

var (
	tableHeader = []string{"NAME", "KIND", "POS", "SIZE", "STATE"}
	rightAlign  = []bool{false, false, true, true, false}
)

const sepWidth = 2

// RenderTable renders one row per entry plus one for the overflow button.
// Columns are sized to their widest cell in terminal cells.
func RenderTable(r Report, opts Options) string {
	rows := make([][]string, 0, len(r.Entries)+1)
	states := make([]State, 0, len(r.Entries)+1)
	for _, e := range r.Entries {
		rows = append(rows, []string{displayName(e), e.Kind, intOrDash(e.Pos), intOrDash(e.Size), string(e.State)})
		states = append(states, e.State)
	}
	if ob := r.Overflow; ob != nil {
		rows = append(rows, []string{ob.Glyph, "overflow", strconv.Itoa(ob.Pos), strconv.Itoa(ob.Size), string(StateShown)})
		states = append(states, StateShown)
	}
	for _, row := range rows {
		for i := range row {
			row[i] = truncate(row[i], opts.MaxColumnWidth)
		}
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	total := sepWidth * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	var b strings.Builder
	b.WriteString(renderRow(tableHeader, widths, func(_ int, s string) string {
		if opts.NoColor {
			return s
		}
		return headerStyle.Render(s)
	}))
	b.WriteByte('\n')
	sep := strings.Repeat("─", total)
	if !opts.NoColor {
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(sep)
	b.WriteByte('\n')
	for n, row := range rows {
		state := states[n]
		b.WriteString(renderRow(row, widths, func(i int, s string) string {
			if opts.NoColor || i != len(row)-1 {
				return s
			}
			return stateStyles[state].Render(s)
		}))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRow pads every cell but the last, which is left ragged.
func renderRow(cells []string, widths []int, style func(i int, s string) string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch {
		case i == len(cells)-1:
		case rightAlign[i]:
			c = padLeft(c, widths[i])
		default:
			c = padRight(c, widths[i])
		}
		parts[i] = style(i, c)
	}
	return strings.Join(parts, strings.Repeat(" ", sepWidth))
}

func displayName(e EntryReport) string {
	if e.Name != "" {
		return e.Name
	}
	return "-"
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// truncate cuts s to maxLen cells with an ellipsis; maxLen <= 0 disables it.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
