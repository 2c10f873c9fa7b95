package formatter

import (
	"math"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
)

// State is the fate of an entry in a layout pass.
type State string

const (
	StateShown    State = "shown"
	StateOverflow State = "overflow" // clipped, listed in the overflow menu
	StateClipped  State = "clipped"  // clipped and not listed anywhere
	StateSkipped  State = "skipped"  // condition was false
)

// EntryReport is one entry of a Report. Pos and Size are set for shown
// entries only.
type EntryReport struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Section string `json:"section,omitempty" yaml:"section,omitempty" toml:"section,omitempty"`
	State   State  `json:"state" yaml:"state" toml:"state"`
	Pos     *int   `json:"pos,omitempty" yaml:"pos,omitempty" toml:"pos,omitempty"`
	Size    *int   `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
}

// OverflowReport describes the overflow button and what it hides.
type OverflowReport struct {
	Glyph   string   `json:"glyph" yaml:"glyph" toml:"glyph"`
	Pos     int      `json:"pos" yaml:"pos" toml:"pos"`
	Size    int      `json:"size" yaml:"size" toml:"size"`
	Entries []string `json:"entries,omitempty" yaml:"entries,omitempty" toml:"entries,omitempty"`
}

// Report is the serializable form of an Arrangement.
type Report struct {
	Toolbar     string          `json:"toolbar" yaml:"toolbar" toml:"toolbar"`
	Orientation string          `json:"orientation" yaml:"orientation" toml:"orientation"`
	Extent      int             `json:"extent" yaml:"extent" toml:"extent"`
	// Used is the extent taken by shown entries, stretch included.
	Used        int             `json:"used" yaml:"used" toml:"used"`
	Overflow    *OverflowReport `json:"overflow,omitempty" yaml:"overflow,omitempty" toml:"overflow,omitempty"`
	Entries     []EntryReport   `json:"entries" yaml:"entries" toml:"entries"`
}

// NewReport flattens arr. Shown entries come first in layout order, followed
// by clipped and then skipped entries, each group in toolbar order.
func NewReport(arr toolbar.Arrangement) Report {
	r := Report{
		Toolbar:     arr.Toolbar,
		Orientation: arr.Orientation.String(),
		Extent:      arr.Extent,
		Used:        int(math.Round(arr.Result.Used)),
		Entries:     make([]EntryReport, 0, len(arr.Slots)+len(arr.Clipped)+len(arr.Skipped)),
	}
	for _, s := range arr.Slots {
		pos, size := s.Pos, s.Size
		er := entryReport(s.Entry, StateShown)
		er.Pos, er.Size = &pos, &size
		r.Entries = append(r.Entries, er)
	}
	for _, e := range arr.Clipped {
		state := StateClipped
		if e.InOverflow() {
			state = StateOverflow
		}
		r.Entries = append(r.Entries, entryReport(e, state))
	}
	for _, e := range arr.Skipped {
		r.Entries = append(r.Entries, entryReport(e, StateSkipped))
	}
	if ob := arr.Overflow; ob != nil {
		r.Overflow = &OverflowReport{Glyph: ob.Glyph, Pos: ob.Pos, Size: ob.Size}
		for _, e := range arr.Hidden {
			r.Overflow.Entries = append(r.Overflow.Entries, e.Name)
		}
	}
	return r
}

func entryReport(e toolbar.Entry, state State) EntryReport {
	return EntryReport{Name: e.Name, Kind: string(e.Kind), Section: e.Section, State: state}
}
