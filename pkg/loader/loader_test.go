package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

const sampleYAML = `name: main
orientation: horizontal
extent: 40
spacing: 1
overflow:
  glyph: ">>"
  index: -1
  padding_before: 1
context:
  mode: edit
sections:
  - name: file
    entries:
      - name: open
        key: ^O
        label: Open
      - name: save
        key: ^S
        label: Save
        priority: 2
  - name: view
    entries:
      - name: gap
        kind: spacer
      - name: quit
        label: Quit
        allow_clip: false
        when: ctx.mode == "edit"
`

const sampleJSON = `{
  "name": "side",
  "orientation": "vertical",
  "sections": [
    {"entries": [{"name": "one"}, {"kind": "separator"}, {"name": "two", "show_in_overflow": false}]}
  ]
}`

const sampleTOML = `name = "tools"
orientation = "vertical"
extent = 6

[overflow]
glyph = "+"
index = 0

[[sections]]
name = "a"

[[sections.entries]]
name = "first"
stretch = true

[[sections.entries]]
name = "second"
priority = 3
`

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"json object", sampleJSON, FormatJSON},
		{"json array", `[{"name": "a"}]`, FormatJSON},
		{"toml", sampleTOML, FormatTOML},
		{"yaml", sampleYAML, FormatYAML},
		{"yaml list", "- name: a\n- name: b\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "YML": FormatYAML, "json": FormatJSON, "toml": FormatTOML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("b.JSON"))
	assert.Equal(t, FormatTOML, FormatFromPath("c.toml"))
	assert.Equal(t, FormatAuto, FormatFromPath("stdin"))
}

func TestLoadYAML(t *testing.T) {
	def, err := LoadBytes([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "main", def.Name)
	assert.Equal(t, resize.Horizontal, def.Orientation)
	assert.Equal(t, 40, def.Extent)
	require.NotNil(t, def.Overflow.Index)
	assert.Equal(t, -1, *def.Overflow.Index)
	assert.Equal(t, "edit", def.Context["mode"])
	require.Len(t, def.Sections, 2)
	require.Len(t, def.Sections[1].Entries, 2)
	quit := def.Sections[1].Entries[1]
	require.NotNil(t, quit.AllowClip)
	assert.False(t, *quit.AllowClip)
	assert.Equal(t, `ctx.mode == "edit"`, quit.When)
}

func TestLoadJSON(t *testing.T) {
	def, err := LoadBytes([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, resize.Vertical, def.Orientation)
	require.Len(t, def.Sections[0].Entries, 3)

	defs, err := LoadAll([]byte(`[{"name": "a"}, {"name": "b"}]`), FormatAuto)
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

func TestLoadTOML(t *testing.T) {
	def, err := LoadBytes([]byte(sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, "tools", def.Name)
	assert.Equal(t, resize.Vertical, def.Orientation)
	assert.Equal(t, "+", def.Overflow.Glyph)
	require.Len(t, def.Sections, 1)
	require.Len(t, def.Sections[0].Entries, 2)
	assert.True(t, def.Sections[0].Entries[0].Stretch)
	assert.Equal(t, 3, def.Sections[0].Entries[1].Priority)
}

func TestLoadMultiDocYAML(t *testing.T) {
	defs, err := LoadAll([]byte("name: a\nsections: []\n---\nname: b\nsections: []\n"), FormatAuto)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	got, err := Select(defs, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	got, err = Select(defs, "")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = Select(defs, "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: a, b")
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadBytes([]byte("   \n"))
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = LoadBytes([]byte("name: a\nbogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")

	_, err = LoadBytes([]byte(`{"name": "a", "bogus": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	_, err = LoadBytes([]byte("name: a\norientation: diagonal\n"))
	require.Error(t, err)

	_, err = LoadAll([]byte("name: a"), Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Select(nil, "")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bar.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o600))

	defs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "tools", defs[0].Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestLoadReader(t *testing.T) {
	defs, err := LoadReader(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

type stubValidator struct{}

func (stubValidator) Validate(expr string) error {
	if strings.Contains(expr, "(") {
		return errors.New("syntax error")
	}
	return nil
}

func TestValidate(t *testing.T) {
	def, err := LoadBytes([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, def.Validate(stubValidator{}))

	neg := -1
	bad := Definition{
		Extent:   -3,
		Spacing:  &neg,
		Overflow: OverflowConfig{PaddingAfter: &neg},
		Sections: []Section{
			{Name: "s1", Entries: []EntryConfig{{Name: "a"}, {Name: ""}, {Name: "b", Kind: "dropdown"}}},
			{Name: "s2", Entries: []EntryConfig{{Name: "a", When: "f("}, {Kind: "separator"}}},
		},
	}
	err = bad.Validate(stubValidator{})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "extent: must not be negative")
	assert.Contains(t, msg, "spacing: must not be negative")
	assert.Contains(t, msg, "overflow.padding_after")
	assert.Contains(t, msg, `entry "#1": name: must not be empty`)
	assert.Contains(t, msg, `unknown entry kind "dropdown"`)
	assert.Contains(t, msg, `duplicate, first defined in section "s1"`)
	assert.Contains(t, msg, `when: syntax error`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateOrderIsStable(t *testing.T) {
	neg := -2
	def := Definition{
		Name:     "main",
		Overflow: OverflowConfig{PaddingBefore: &neg, PaddingAfter: &neg},
	}
	want := "overflow.padding_before: must not be negative\noverflow.padding_after: must not be negative"
	for range 20 {
		err := def.Validate(nil)
		require.Error(t, err)
		assert.Equal(t, want, err.Error())
	}
}

func TestDefinitionToolbarAndBox(t *testing.T) {
	def, err := LoadBytes([]byte(sampleYAML))
	require.NoError(t, err)

	tb := def.Toolbar()
	assert.Equal(t, "main", tb.Name)
	names := make([]string, 0, len(tb.Entries))
	for _, e := range tb.Entries {
		names = append(names, string(e.Kind)+":"+e.Name)
	}
	assert.Equal(t, []string{"button:open", "button:save", "separator:", "spacer:gap", "button:quit"}, names)

	box := def.Box(nil)
	assert.Equal(t, ">>", box.OverflowGlyph)
	assert.Equal(t, -1, box.OverflowIndex)
	assert.Equal(t, 1.0, box.OverflowPadding.Before)
	assert.Equal(t, 1, box.Spacing)
	assert.Equal(t, "edit", box.Context["mode"])

	tdef, err := LoadBytes([]byte(sampleTOML))
	require.NoError(t, err)
	tbox := tdef.Box(nil)
	assert.Equal(t, resize.Vertical, tbox.Orientation)
	assert.Equal(t, 0, tbox.OverflowIndex)
	assert.Equal(t, "+", tbox.OverflowGlyph)
	assert.Equal(t, toolbar.KindButton, tdef.Toolbar().Entries[0].Kind)
}
