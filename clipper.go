package vlist

// ResolveRange finds the index range that covers vp, widened by overscan on
// both ends. The result is clamped to [0, t.Len()-1]; an empty table yields an
// empty range. ResolveRange is a pure read and safe to call every frame.
func ResolveRange(vp Viewport, t *PositionTable, overscan int) Range {
	n := t.Len()
	if n == 0 {
		return emptyRange
	}
	if overscan < 0 {
		overscan = 0
	}

	start := findIndex(t, vp.ScrollOffset)
	end := findIndex(t, vp.End())
	if end < start {
		end = start
	}

	start -= overscan
	if start < 0 {
		start = 0
	}
	end += overscan
	if end > n-1 {
		end = n - 1
	}
	return Range{Start: start, End: end}
}

// findIndex binary-searches for the item whose [start, end) interval holds
// offset. Items entirely before the offset send the search right, items
// entirely after send it left. Offsets outside the content clamp to the
// first or last item.
func findIndex(t *PositionTable, offset float64) int {
	lo, hi := 0, t.Len()-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		start := t.Starts[mid]
		end := start + t.Sizes[mid]
		switch {
		case end <= offset:
			lo = mid + 1
		case start > offset:
			hi = mid - 1
		default:
			return mid
		}
	}
	if lo > t.Len()-1 {
		return t.Len() - 1
	}
	return lo
}

// VirtualItems projects r onto t. The slice is always newly allocated.
func VirtualItems(t *PositionTable, r Range) []VirtualItem {
	if r.Empty() || t.Len() == 0 {
		return []VirtualItem{}
	}
	items := make([]VirtualItem, 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		start, size := t.Starts[i], t.Sizes[i]
		items = append(items, VirtualItem{Index: i, Start: start, Size: size, End: start + size})
	}
	return items
}

// ListClipper pairs a resolved range with the table it was resolved against.
//
// Usage:
//
//	clipper := vlist.NewListClipper(table, viewport, 3)
//	for i := clipper.Start; i <= clipper.End; i++ {
//	    y := clipper.ItemY(i, baseY, viewport.ScrollOffset)
//	    // Draw item at y position
//	}
type ListClipper struct {
	Range
	Table *PositionTable
}

// NewListClipper resolves the visible range of t for vp.
func NewListClipper(t *PositionTable, vp Viewport, overscan int) *ListClipper {
	return &ListClipper{
		Range: ResolveRange(vp, t, overscan),
		Table: t,
	}
}

// ShouldRender returns true if the item at idx is inside the clipped range.
func (c *ListClipper) ShouldRender(idx int) bool {
	return c.Contains(idx)
}

// ItemY returns the on-screen Y of idx for a list whose top edge is baseY.
func (c *ListClipper) ItemY(idx int, baseY, scrollY float64) float64 {
	return baseY + c.Table.Start(idx) - scrollY
}

// VisibleCount returns the number of items that should be rendered.
func (c *ListClipper) VisibleCount() int {
	return c.Len()
}

// ContentHeight returns the total content height (for scrollbar calculations).
func (c *ListClipper) ContentHeight() float64 {
	if c.Table == nil {
		return 0
	}
	return c.Table.Total
}

// MaxScroll returns the maximum valid scroll offset.
func (c *ListClipper) MaxScroll(visibleHeight float64) float64 {
	return maxf(0, c.ContentHeight()-visibleHeight)
}

// IndexAt returns the index of the item covering offset, or -1 for an empty
// list. Offsets outside the content clamp to the first or last item.
func (c *ListClipper) IndexAt(offset float64) int {
	if c.Table.Len() == 0 {
		return -1
	}
	return findIndex(c.Table, offset)
}

// ScrollToItem returns the scroll offset needed to make idx visible.
// If the item is already fully visible, returns the current scroll unchanged.
func (c *ListClipper) ScrollToItem(idx int, currentScroll, visibleHeight float64) float64 {
	if idx < 0 || idx >= c.Table.Len() {
		return currentScroll
	}

	itemTop := c.Table.Start(idx)
	itemBottom := c.Table.End(idx)

	// Above the viewport: align the item's top edge.
	if itemTop < currentScroll {
		return itemTop
	}

	// Below the viewport: align the item's bottom edge.
	if itemBottom > currentScroll+visibleHeight {
		return clampf(itemBottom-visibleHeight, 0, c.MaxScroll(visibleHeight))
	}

	return currentScroll
}
