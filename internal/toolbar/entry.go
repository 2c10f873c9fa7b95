// Package toolbar arranges toolbar entries inside horizontal and vertical
// clipping boxes and renders the result for a terminal.
package toolbar

import (
	"fmt"
	"strings"
)

// Kind distinguishes the entry types a toolbar can hold.
type Kind string

const (
	KindButton    Kind = "button"
	KindSeparator Kind = "separator"
	KindSpacer    Kind = "spacer"
)

// ParseKind validates a kind name; an empty name is a button.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindButton, nil
	case KindButton, KindSeparator, KindSpacer:
		return k, nil
	}
	return "", fmt.Errorf("unknown entry kind %q", s)
}

// Entry is one toolbar entry together with its resize policy.
type Entry struct {
	Name    string
	Label   string
	Key     string
	Tooltip string
	Section string
	Kind    Kind

	Stretch  bool
	Priority int
	// AllowClip and ShowInOverflow default to true when nil.
	AllowClip      *bool
	ShowInOverflow *bool
	// When is a CEL condition; the entry is skipped when it evaluates false.
	When string
}

// Clippable reports whether the entry may be evicted.
func (e Entry) Clippable() bool {
	return e.AllowClip == nil || *e.AllowClip
}

// InOverflow reports whether a clipped entry is listed behind the overflow
// button. Separators and spacers never are.
func (e Entry) InOverflow() bool {
	if e.Kind == KindSeparator || e.Kind == KindSpacer {
		return false
	}
	return e.ShowInOverflow == nil || *e.ShowInOverflow
}

// Stretchable reports whether the entry absorbs freed space. Spacers always
// stretch.
func (e Entry) Stretchable() bool {
	return e.Stretch || e.Kind == KindSpacer
}

// Text is the plain text shown for a button: its key hint and label.
func (e Entry) Text() string {
	label := e.Label
	if label == "" {
		label = e.Name
	}
	if e.Key == "" {
		return label
	}
	if label == "" {
		return e.Key
	}
	return e.Key + " " + label
}

// conditionVars exposes the entry to CEL conditions.
func (e Entry) conditionVars() map[string]any {
	return map[string]any{
		"name":     e.Name,
		"label":    e.Label,
		"key":      e.Key,
		"section":  e.Section,
		"kind":     string(e.Kind),
		"priority": e.Priority,
	}
}

// Toolbar is an ordered set of entries, as produced by a Builder.
type Toolbar struct {
	Name    string
	Entries []Entry
}

// Bool returns a pointer to v, for the optional entry flags.
func Bool(v bool) *bool {
	return &v
}
