package toolbar

import (
	"context"
	"fmt"
	"math"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/clipbar/pkg/logger"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// DefaultOverflowGlyph is shown on the overflow button.
const DefaultOverflowGlyph = "»"

// Conditions evaluates entry conditions. *cel.Evaluator implements it.
type Conditions interface {
	Visible(expr string, ctx, entry map[string]any) (bool, error)
}

// Box is a clipping box: it lays a toolbar out along one axis and hides the
// entries that do not fit behind an overflow button.
type Box struct {
	Orientation resize.Orientation
	// Spacing is the gap left after every entry but the last.
	Spacing int

	OverflowGlyph   string
	OverflowPadding resize.Padding
	// OverflowIndex is the survivor slot the button is inserted at; negative
	// values count from the end and -1 pins it to the trailing edge.
	OverflowIndex int

	// Measure overrides the size of buttons along the layout axis.
	Measure func(Entry) int

	Conditions Conditions
	// Context is bound to ctx in entry conditions.
	Context map[string]any
}

// NewBox returns a box with the default glyph, one cell of padding before the
// overflow button and the button pinned to the trailing edge.
func NewBox(o resize.Orientation) *Box {
	return &Box{
		Orientation:     o,
		Spacing:         1,
		OverflowGlyph:   DefaultOverflowGlyph,
		OverflowPadding: resize.Padding{Before: 1},
		OverflowIndex:   -1,
	}
}

// Slot is a surviving entry and the cells it occupies along the layout axis.
type Slot struct {
	Entry Entry
	Pos   int
	Size  int
}

// OverflowButton is the position of the button giving access to hidden
// entries.
type OverflowButton struct {
	Glyph string
	Pos   int
	Size  int
}

// Arrangement is the outcome of one layout pass.
type Arrangement struct {
	Toolbar     string
	Orientation resize.Orientation
	Extent      int
	// Cross is the extent across the layout axis: the widest entry of a
	// vertical box, or 1 for a horizontal one.
	Cross int

	Slots    []Slot
	Overflow *OverflowButton
	// Hidden lists the clipped entries reachable through the overflow button.
	Hidden []Entry
	// Clipped lists every clipped entry.
	Clipped []Entry
	// Skipped lists entries whose condition was false.
	Skipped []Entry

	Result resize.Result
}

// Arrange runs one layout pass of tb inside extent cells.
func (b *Box) Arrange(ctx context.Context, tb *Toolbar, extent int) (Arrangement, error) {
	if extent < 0 {
		extent = 0
	}
	arr := Arrangement{
		Orientation: b.Orientation,
		Extent:      extent,
		Cross:       1,
	}
	if tb == nil {
		return arr, nil
	}
	arr.Toolbar = tb.Name

	entries := make([]Entry, 0, len(tb.Entries))
	for _, e := range tb.Entries {
		ok, err := b.visible(e)
		if err != nil {
			return arr, fmt.Errorf("toolbar %q: entry %q: %w", tb.Name, e.Name, err)
		}
		if !ok {
			arr.Skipped = append(arr.Skipped, e)
			continue
		}
		entries = append(entries, e)
	}
	entries = trimSeparators(entries)

	items := make([]resize.Item, len(entries))
	var pos float64
	for i, e := range entries {
		size := b.measure(e)
		if b.Orientation == resize.Vertical {
			arr.Cross = max(arr.Cross, lipgloss.Width(e.Text()))
		}
		if i < len(entries)-1 {
			size += b.Spacing
		}
		items[i] = resize.Item{
			Width:             float64(size),
			Position:          pos,
			Stretchable:       e.Stretchable(),
			AllowClipping:     e.Clippable(),
			VisibleInOverflow: e.InOverflow(),
			ClippingPriority:  e.Priority,
		}
		pos += float64(size)
	}

	glyph := b.glyph()
	buttonExtent := b.buttonExtent(glyph)
	if b.Orientation == resize.Vertical {
		arr.Cross = max(arr.Cross, lipgloss.Width(glyph))
	}
	buttonPos, hasButton := resize.PrioritizedResize(float64(extent), float64(buttonExtent), b.OverflowPadding, b.OverflowIndex, items)
	if !hasButton && !anyClipped(items) {
		fillSlack(items, float64(extent))
	}

	for i, it := range items {
		if it.WasClipped {
			arr.Clipped = append(arr.Clipped, entries[i])
			if it.VisibleInOverflow {
				arr.Hidden = append(arr.Hidden, entries[i])
			}
			continue
		}
		start := cell(it.Position)
		arr.Slots = append(arr.Slots, Slot{
			Entry: entries[i],
			Pos:   start,
			Size:  cell(it.Position+it.Width) - start,
		})
	}
	if hasButton {
		arr.Overflow = &OverflowButton{Glyph: glyph, Pos: cell(buttonPos), Size: buttonExtent}
	}
	arr.Result = resize.Summarize(items)

	logger.FromContext(ctx).V(1).Info("layout pass",
		logger.ToolbarKey, tb.Name,
		logger.OrientationKey, b.Orientation.String(),
		logger.ExtentKey, extent,
		logger.EntriesKey, len(entries),
		logger.ClippedKey, arr.Result.Clipped,
		logger.OverflowKey, hasButton,
	)
	return arr, nil
}

func (b *Box) visible(e Entry) (bool, error) {
	if e.When == "" {
		return true, nil
	}
	if b.Conditions == nil {
		return false, fmt.Errorf("condition %q set but no evaluator configured", e.When)
	}
	return b.Conditions.Visible(e.When, b.Context, e.conditionVars())
}

// measure is the natural size of e along the layout axis, without spacing.
func (b *Box) measure(e Entry) int {
	switch e.Kind {
	case KindSpacer:
		return 0
	case KindSeparator:
		return 1
	}
	if b.Measure != nil {
		return max(b.Measure(e), 0)
	}
	if b.Orientation == resize.Vertical {
		return 1
	}
	return lipgloss.Width(e.Text())
}

func (b *Box) glyph() string {
	if b.OverflowGlyph == "" {
		return DefaultOverflowGlyph
	}
	return b.OverflowGlyph
}

func (b *Box) buttonExtent(glyph string) int {
	if b.Orientation == resize.Vertical {
		return 1
	}
	return lipgloss.Width(glyph)
}

// trimSeparators drops separators left leading, trailing or doubled once
// conditions have removed their neighbours.
func trimSeparators(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		if e.Kind == KindSeparator && (len(out) == 0 || out[len(out)-1].Kind == KindSeparator) {
			continue
		}
		out = append(out, e)
	}
	for len(out) > 0 && out[len(out)-1].Kind == KindSeparator {
		out = out[:len(out)-1]
	}
	return out
}

func anyClipped(items []resize.Item) bool {
	for _, it := range items {
		if it.WasClipped {
			return true
		}
	}
	return false
}

// fillSlack spreads the free space of a row that fits evenly over its
// stretchable items and shifts the items after each of them.
func fillSlack(items []resize.Item, extent float64) {
	var used float64
	stretchable := 0
	for _, it := range items {
		used += it.Width
		if it.Stretchable {
			stretchable++
		}
	}
	slack := extent - used
	if slack <= 0 || stretchable == 0 {
		return
	}
	share := slack / float64(stretchable)
	var grown float64
	for i := range items {
		items[i].Position += grown
		if items[i].Stretchable {
			items[i].Width += share
			grown += share
		}
	}
}

// cell converts a layout offset to a terminal cell. Rounding both edges of a
// slot the same way keeps neighbouring slots from overlapping.
func cell(v float64) int {
	return int(math.Round(v))
}
