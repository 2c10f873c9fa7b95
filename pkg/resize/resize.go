// Package resize decides which entries of a toolbar row or column survive when
// the available extent is too small, then lays out the survivors and an
// optional overflow button.
//
// The routine is pure: callers supply a slice of items describing the natural
// layout and PrioritizedResize writes the result back into the same records.
package resize

import (
	"math"
	"sort"
)

// epsilon absorbs sub-pixel overshoot so that a row which is a rounding error
// too wide does not grow an overflow button.
const epsilon = 1e-4

// Item is one entry laid out along the layout axis.
type Item struct {
	// Width is the natural extent along the layout axis. Stretchable survivors
	// have their width grown in place.
	Width float64
	// Position is the natural offset on input and the final offset on output.
	Position float64

	Stretchable       bool
	AllowClipping     bool
	VisibleInOverflow bool
	// ClippingPriority orders eviction: higher values are clipped first.
	ClippingPriority int

	// WasClipped is set when the item was evicted from the visible row.
	WasClipped bool
}

// NewItem returns a clippable item that stays reachable through the overflow
// button once clipped.
func NewItem(width float64) Item {
	return Item{
		Width:             width,
		AllowClipping:     true,
		VisibleInOverflow: true,
	}
}

// Padding flanks the overflow button along the layout axis.
type Padding struct {
	Before float64
	After  float64
}

// Total is the combined padding.
func (p Padding) Total() float64 {
	return p.Before + p.After
}

// PrioritizedResize fits items into allotted, evicting whole items by
// priority, compacting and stretching the survivors, and positioning an
// overflow button among them when a clipped item should remain reachable.
//
// buttonIndex selects the survivor slot next to which the button is inserted.
// Negative values count from the end, so -1 pins the button to the trailing
// edge of the allotted extent. Out of range indices are clamped.
//
// It returns the button position and true when a button must be shown.
func PrioritizedResize(allotted, buttonExtent float64, padding Padding, buttonIndex int, items []Item) (float64, bool) {
	allotted = sanitize(allotted)
	buttonExtent = sanitize(buttonExtent)
	padding = Padding{Before: sanitize(padding.Before), After: sanitize(padding.After)}
	paddedButton := buttonExtent + padding.Total()

	var totalWidth, nonClippableWidth float64
	for i := range items {
		items[i].WasClipped = false
		items[i].Width = sanitizeWidth(items[i].Width)
		totalWidth += items[i].Width
		if !items[i].AllowClipping {
			nonClippableWidth += items[i].Width
		}
	}

	if math.Ceil(totalWidth-epsilon) <= math.Ceil(allotted-epsilon) {
		return 0, false
	}

	order := keepOrder(items)
	reserved := clip(items, order, allotted, nonClippableWidth, false)
	if reserved {
		clip(items, order, allotted, nonClippableWidth+paddedButton, true)
	}

	var removedWidth float64
	survivors := make([]int, 0, len(items))
	stretchable := 0
	for i := range items {
		if items[i].WasClipped {
			removedWidth += items[i].Width
			continue
		}
		items[i].Position -= removedWidth
		survivors = append(survivors, i)
		if items[i].Stretchable {
			stretchable++
		}
	}

	extraSpace := allotted - totalWidth + removedWidth
	if reserved {
		extraSpace -= paddedButton
	}
	if extraSpace > 0 && stretchable > 0 {
		share := extraSpace / float64(stretchable)
		var grown float64
		for _, i := range survivors {
			items[i].Position += grown
			if items[i].Stretchable {
				items[i].Width += share
				grown += share
			}
		}
	}

	if !reserved || buttonExtent > allotted {
		return 0, false
	}
	return placeButton(items, survivors, allotted, buttonExtent, padding, buttonIndex), true
}

// keepOrder returns item indices in the order they are admitted to the row:
// lowest priority first and, among equal priorities, earliest first. Walking
// this view and clipping once space runs out evicts the highest priority and
// then the latest items first.
func keepOrder(items []Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].ClippingPriority < items[order[b]].ClippingPriority
	})
	return order
}

// clip marks the items that no longer fit once base has been set aside. When
// the pass is not yet reserving room for the overflow button it stops at the
// first clipped item that wants to stay reachable and reports true, in which
// case the caller reruns the pass with the button reserved.
func clip(items []Item, order []int, allotted, base float64, reserving bool) bool {
	for i := range items {
		items[i].WasClipped = false
	}
	used := base
	for _, i := range order {
		if !items[i].AllowClipping {
			continue
		}
		used += items[i].Width
		if used <= allotted {
			continue
		}
		items[i].WasClipped = true
		if items[i].VisibleInOverflow && !reserving {
			return true
		}
	}
	return false
}

func placeButton(items []Item, survivors []int, allotted, extent float64, padding Padding, index int) float64 {
	padded := extent + padding.Total()
	if index == -1 {
		return allotted - extent - padding.After
	}
	if len(survivors) == 0 {
		return padding.Before
	}

	var shiftFrom int
	if index >= 0 {
		shiftFrom = clampIndex(index, len(survivors))
	} else {
		shiftFrom = clampIndex(len(survivors)+index, len(survivors)) + 1
	}

	var leading float64
	for _, i := range survivors[:shiftFrom] {
		leading += items[i].Width
	}
	for _, i := range survivors[shiftFrom:] {
		items[i].Position += padded
	}
	return leading + padding.Before
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// sanitizeWidth is sanitize with infinite widths treated as empty.
func sanitizeWidth(v float64) float64 {
	if math.IsInf(v, 0) {
		return 0
	}
	return sanitize(v)
}
