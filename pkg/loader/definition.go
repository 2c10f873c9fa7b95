package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// Definition describes one toolbar and the clipping box it is laid out in.
type Definition struct {
	Name        string             `yaml:"name" json:"name" toml:"name"`
	Orientation resize.Orientation `yaml:"orientation,omitempty" json:"orientation,omitempty" toml:"orientation,omitempty"`
	// Extent is the default extent when none is given on the command line.
	Extent   int            `yaml:"extent,omitempty" json:"extent,omitempty" toml:"extent,omitempty"`
	Spacing  *int           `yaml:"spacing,omitempty" json:"spacing,omitempty" toml:"spacing,omitempty"`
	Overflow OverflowConfig `yaml:"overflow,omitempty" json:"overflow,omitempty" toml:"overflow,omitempty"`
	// Context is bound to ctx in entry conditions.
	Context  map[string]any `yaml:"context,omitempty" json:"context,omitempty" toml:"context,omitempty"`
	Sections []Section      `yaml:"sections" json:"sections" toml:"sections"`
}

// OverflowConfig configures the overflow button.
type OverflowConfig struct {
	Glyph         string `yaml:"glyph,omitempty" json:"glyph,omitempty" toml:"glyph,omitempty"`
	Index         *int   `yaml:"index,omitempty" json:"index,omitempty" toml:"index,omitempty"`
	PaddingBefore *int   `yaml:"padding_before,omitempty" json:"padding_before,omitempty" toml:"padding_before,omitempty"`
	PaddingAfter  *int   `yaml:"padding_after,omitempty" json:"padding_after,omitempty" toml:"padding_after,omitempty"`
}

// Section groups entries; consecutive sections are separated.
type Section struct {
	Name    string        `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty"`
	Entries []EntryConfig `yaml:"entries" json:"entries" toml:"entries"`
}

// EntryConfig is the serialized form of a toolbar entry.
type EntryConfig struct {
	Name           string `yaml:"name" json:"name" toml:"name"`
	Label          string `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
	Key            string `yaml:"key,omitempty" json:"key,omitempty" toml:"key,omitempty"`
	Tooltip        string `yaml:"tooltip,omitempty" json:"tooltip,omitempty" toml:"tooltip,omitempty"`
	Kind           string `yaml:"kind,omitempty" json:"kind,omitempty" toml:"kind,omitempty"`
	Stretch        bool   `yaml:"stretch,omitempty" json:"stretch,omitempty" toml:"stretch,omitempty"`
	Priority       int    `yaml:"priority,omitempty" json:"priority,omitempty" toml:"priority,omitempty"`
	AllowClip      *bool  `yaml:"allow_clip,omitempty" json:"allow_clip,omitempty" toml:"allow_clip,omitempty"`
	ShowInOverflow *bool  `yaml:"show_in_overflow,omitempty" json:"show_in_overflow,omitempty" toml:"show_in_overflow,omitempty"`
	When           string `yaml:"when,omitempty" json:"when,omitempty" toml:"when,omitempty"`
}

// ValidationError pinpoints an invalid field of a definition.
type ValidationError struct {
	Section string
	Entry   string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Section != "" {
		fmt.Fprintf(&b, "section %q: ", e.Section)
	}
	if e.Entry != "" {
		fmt.Fprintf(&b, "entry %q: ", e.Entry)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Reason)
	return b.String()
}

// ConditionValidator checks entry conditions. *cel.Evaluator implements it.
type ConditionValidator interface {
	Validate(expr string) error
}

// Validate reports every problem found in d, joined. Conditions are only
// checked when cv is non-nil.
func (d *Definition) Validate(cv ConditionValidator) error {
	var errs []error
	if d.Extent < 0 {
		errs = append(errs, &ValidationError{Field: "extent", Reason: "must not be negative"})
	}
	if d.Spacing != nil && *d.Spacing < 0 {
		errs = append(errs, &ValidationError{Field: "spacing", Reason: "must not be negative"})
	}
	for _, p := range []struct {
		field string
		v     *int
	}{
		{"overflow.padding_before", d.Overflow.PaddingBefore},
		{"overflow.padding_after", d.Overflow.PaddingAfter},
	} {
		if p.v != nil && *p.v < 0 {
			errs = append(errs, &ValidationError{Field: p.field, Reason: "must not be negative"})
		}
	}

	seen := make(map[string]string)
	for _, s := range d.Sections {
		for i, e := range s.Entries {
			kind, err := toolbar.ParseKind(e.Kind)
			if err != nil {
				errs = append(errs, &ValidationError{Section: s.Name, Entry: e.Name, Field: "kind", Reason: err.Error()})
				continue
			}
			if kind == toolbar.KindSeparator {
				continue
			}
			if strings.TrimSpace(e.Name) == "" {
				errs = append(errs, &ValidationError{Section: s.Name, Entry: fmt.Sprintf("#%d", i), Field: "name", Reason: "must not be empty"})
				continue
			}
			if prev, dup := seen[e.Name]; dup {
				errs = append(errs, &ValidationError{Section: s.Name, Entry: e.Name, Field: "name", Reason: fmt.Sprintf("duplicate, first defined in section %q", prev)})
			}
			seen[e.Name] = s.Name
			if cv != nil && e.When != "" {
				if err := cv.Validate(e.When); err != nil {
					errs = append(errs, &ValidationError{Section: s.Name, Entry: e.Name, Field: "when", Reason: err.Error()})
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Toolbar builds the toolbar described by d.
func (d *Definition) Toolbar() *toolbar.Toolbar {
	b := toolbar.NewBuilder(d.Name)
	for _, s := range d.Sections {
		b.BeginSection(s.Name)
		for _, e := range s.Entries {
			kind, err := toolbar.ParseKind(e.Kind)
			if err != nil {
				continue
			}
			if kind == toolbar.KindSeparator {
				b.AddSeparator()
				continue
			}
			b.AddEntry(toolbar.Entry{
				Name:           e.Name,
				Label:          e.Label,
				Key:            e.Key,
				Tooltip:        e.Tooltip,
				Kind:           kind,
				Stretch:        e.Stretch,
				Priority:       e.Priority,
				AllowClip:      e.AllowClip,
				ShowInOverflow: e.ShowInOverflow,
				When:           e.When,
			})
		}
	}
	return b.Build()
}

// Box returns a clipping box configured from d.
func (d *Definition) Box(conditions toolbar.Conditions) *toolbar.Box {
	box := toolbar.NewBox(d.Orientation)
	if d.Spacing != nil {
		box.Spacing = *d.Spacing
	}
	if d.Overflow.Glyph != "" {
		box.OverflowGlyph = d.Overflow.Glyph
	}
	if d.Overflow.Index != nil {
		box.OverflowIndex = *d.Overflow.Index
	}
	if d.Overflow.PaddingBefore != nil {
		box.OverflowPadding.Before = float64(*d.Overflow.PaddingBefore)
	}
	if d.Overflow.PaddingAfter != nil {
		box.OverflowPadding.After = float64(*d.Overflow.PaddingAfter)
	}
	box.Conditions = conditions
	box.Context = d.Context
	return box
}
