package toolbar

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// Styles are the lipgloss styles used to draw an arrangement.
type Styles struct {
	Entry     lipgloss.Style
	Key       lipgloss.Style
	Separator lipgloss.Style
	Overflow  lipgloss.Style
	Menu      lipgloss.Style
	MenuKey   lipgloss.Style
	MenuTitle lipgloss.Style
	// Fill paints cells not covered by any slot.
	Fill lipgloss.Style
}

// PlainStyles draws without colors or attributes.
func PlainStyles() Styles {
	return Styles{
		Entry:     lipgloss.NewStyle(),
		Key:       lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		Overflow:  lipgloss.NewStyle(),
		Menu:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		MenuKey:   lipgloss.NewStyle(),
		MenuTitle: lipgloss.NewStyle(),
		Fill:      lipgloss.NewStyle(),
	}
}

type piece struct {
	pos, size int
	render    func(size int) string
}

// RenderHorizontal draws a horizontal arrangement as one line of exactly
// Extent cells. Entries pinned past the extent are cut off.
func RenderHorizontal(arr Arrangement, st Styles) string {
	pieces := make([]piece, 0, len(arr.Slots)+1)
	for _, s := range arr.Slots {
		e := s.Entry
		pieces = append(pieces, piece{pos: s.Pos, size: s.Size, render: func(size int) string {
			return renderEntryCell(e, size, st)
		}})
	}
	if ob := arr.Overflow; ob != nil {
		pieces = append(pieces, piece{pos: ob.Pos, size: ob.Size, render: func(size int) string {
			return st.Overflow.Render(pad(ob.Glyph, size))
		}})
	}
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].pos < pieces[j].pos })

	var b strings.Builder
	cursor := 0
	for _, p := range pieces {
		if p.pos < cursor || p.pos >= arr.Extent || p.size <= 0 {
			continue
		}
		if p.pos > cursor {
			b.WriteString(st.Fill.Render(strings.Repeat(" ", p.pos-cursor)))
		}
		size := min(p.size, arr.Extent-p.pos)
		b.WriteString(p.render(size))
		cursor = p.pos + size
	}
	if cursor < arr.Extent {
		b.WriteString(st.Fill.Render(strings.Repeat(" ", arr.Extent-cursor)))
	}
	return b.String()
}

// RenderVertical draws a vertical arrangement as Extent lines, each Cross
// cells wide.
func RenderVertical(arr Arrangement, st Styles) string {
	width := max(arr.Cross, 1)
	lines := make([]string, arr.Extent)
	blank := st.Fill.Render(strings.Repeat(" ", width))
	for i := range lines {
		lines[i] = blank
	}
	for _, s := range arr.Slots {
		if s.Pos < 0 || s.Pos >= arr.Extent || s.Size <= 0 {
			continue
		}
		if s.Entry.Kind == KindSeparator {
			lines[s.Pos] = st.Separator.Render(strings.Repeat("─", width))
			continue
		}
		lines[s.Pos] = renderEntryCell(s.Entry, width, st)
	}
	if ob := arr.Overflow; ob != nil && ob.Pos >= 0 && ob.Pos < arr.Extent {
		lines[ob.Pos] = st.Overflow.Render(pad(ob.Glyph, width))
	}
	return strings.Join(lines, "\n")
}

// Render draws arr along its own orientation.
func Render(arr Arrangement, st Styles) string {
	if arr.Orientation == resize.Vertical {
		return RenderVertical(arr, st)
	}
	return RenderHorizontal(arr, st)
}

// RenderOverflowMenu lists the hidden entries in a bordered box. It returns
// an empty string when nothing is hidden.
func RenderOverflowMenu(arr Arrangement, st Styles) string {
	if len(arr.Hidden) == 0 {
		return ""
	}
	keyWidth := 0
	for _, e := range arr.Hidden {
		keyWidth = max(keyWidth, runewidth.StringWidth(e.Key))
	}
	lines := make([]string, 0, len(arr.Hidden)+1)
	lines = append(lines, st.MenuTitle.Render("More"))
	for _, e := range arr.Hidden {
		label := e.Label
		if label == "" {
			label = e.Name
		}
		line := label
		if keyWidth > 0 {
			line = st.MenuKey.Render(pad(e.Key, keyWidth)) + " " + label
		}
		if e.Tooltip != "" {
			line += "  " + e.Tooltip
		}
		lines = append(lines, line)
	}
	return st.Menu.Render(strings.Join(lines, "\n"))
}

func renderEntryCell(e Entry, size int, st Styles) string {
	switch e.Kind {
	case KindSpacer:
		return st.Fill.Render(strings.Repeat(" ", size))
	case KindSeparator:
		return st.Separator.Render(pad("│", size))
	}
	text := e.Text()
	if runewidth.StringWidth(text) > size || e.Key == "" || e.Key == text {
		return st.Entry.Render(pad(text, size))
	}
	label := strings.TrimPrefix(text, e.Key)
	return st.Key.Render(e.Key) + st.Entry.Render(pad(label, size-runewidth.StringWidth(e.Key)))
}

// pad fits s into exactly width cells, truncating or space filling.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w > width {
		s = runewidth.Truncate(s, width, "")
		w = runewidth.StringWidth(s)
	}
	return s + strings.Repeat(" ", width-w)
}
