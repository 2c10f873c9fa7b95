package resize

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	items := row(10, 20, 30, 40)
	items[1].WasClipped = true
	items[3].WasClipped = true
	items[3].VisibleInOverflow = false

	got := Summarize(items)
	want := Result{Survivors: 2, Clipped: 2, Hidden: 1, Used: 40}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if got := Summarize(nil); got != (Result{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestSummarizeAfterStretch(t *testing.T) {
	items := row(10, 10, 10)
	items[1].Stretchable = true
	items[2].ClippingPriority = 1
	items[2].VisibleInOverflow = false

	_, ok := PrioritizedResize(25, 0, Padding{}, -1, items)
	if ok {
		t.Fatal("no button expected when the clipped item is not listed")
	}
	res := Summarize(items)
	if res.Survivors != 2 || res.Clipped != 1 {
		t.Fatalf("Summarize() = %+v, want 2 survivors and 1 clipped", res)
	}
	if res.Hidden != 0 {
		t.Errorf("hidden = %d, want 0", res.Hidden)
	}
	if !approx(res.Used, 25) {
		t.Errorf("used = %v, want 25", res.Used)
	}
}

func TestPrioritizedResizeIgnoresInfiniteWidths(t *testing.T) {
	items := []Item{NewItem(10), NewItem(math.Inf(1)), NewItem(10)}
	items[1].Position = 10
	items[2].Position = 10

	pos, ok := PrioritizedResize(15, 1, Padding{}, -1, items)
	if !ok || pos != 14 {
		t.Fatalf("button = (%v, %v), want (14, true)", pos, ok)
	}
	if items[1].Width != 0 {
		t.Errorf("infinite width = %v, want 0", items[1].Width)
	}
	if items[0].WasClipped || items[1].WasClipped || !items[2].WasClipped {
		t.Errorf("clipped = %v %v %v, want only the last item", items[0].WasClipped, items[1].WasClipped, items[2].WasClipped)
	}
	for i, it := range items {
		if math.IsInf(it.Position, 0) || math.IsNaN(it.Position) {
			t.Errorf("item %d position = %v, want finite", i, it.Position)
		}
	}
}

func TestPrioritizedResizeSanitizesPadding(t *testing.T) {
	items := row(10, 10)
	pos, ok := PrioritizedResize(15, 1, Padding{Before: math.NaN(), After: -3}, -1, items)
	if !ok || pos != 14 {
		t.Fatalf("button = (%v, %v), want (14, true)", pos, ok)
	}
}
