package resize

// Result summarizes one PrioritizedResize pass.
type Result struct {
	Survivors int
	Clipped   int
	// Hidden counts clipped items reachable through the overflow button.
	Hidden    int
	// Used is the extent taken by the survivors, stretch included.
	Used      float64
}

// Summarize tallies items after a PrioritizedResize pass.
func Summarize(items []Item) Result {
	var res Result
	for _, it := range items {
		if it.WasClipped {
			res.Clipped++
			if it.VisibleInOverflow {
				res.Hidden++
			}
			continue
		}
		res.Survivors++
		res.Used += it.Width
	}
	return res
}
