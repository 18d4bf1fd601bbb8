package vlist

import "fmt"

// Virtualizer is one virtualized list instance. It owns the height record,
// the position table and the viewport state, and recomputes the visible
// window whenever any of them changes.
//
// A Virtualizer is not safe for concurrent use: drive it from the host's UI
// goroutine, the same one that calls the host's frame pump.
//
// Usage:
//
//	v, err := vlist.New(len(posts),
//	    vlist.WithFixedHeight(120),
//	    vlist.WithContainerHeight(600),
//	    vlist.MeasureItemHeight(),
//	    vlist.WithHost(host),
//	)
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//
//	for _, item := range v.Items() {
//	    el := renderPost(posts[item.Index], item.Start)
//	    v.MeasureRef(item.Index)(el)
//	}
type Virtualizer struct {
	count    int
	overscan int
	target   ScrollTarget
	host     Host

	oracle  *heightOracle
	feed    *measureFeed
	tracker *viewportTracker

	table *PositionTable
	rng   Range
	items []VirtualItem

	listeners map[int]func()
	nextSub   int
	closed    bool
}

// New creates a virtualizer for itemCount items.
//
// Container mode needs either WithContainerRef or WithContainerHeight; without
// either New returns ErrNoContainerHeight rather than rendering an empty list.
func New(itemCount int, opts ...Option) (*Virtualizer, error) {
	o := applyOptions(options{}, opts)

	if itemCount < 0 {
		logger.Debug("virtualizer config rejected", "itemCount", itemCount)
		return nil, fmt.Errorf("new virtualizer with %d items: %w", itemCount, ErrNegativeItemCount)
	}
	source := GetOpt(o, OptItemHeight)
	if source.IsZero() {
		logger.Debug("virtualizer config rejected", "reason", "no item height")
		return nil, fmt.Errorf("new virtualizer: %w", ErrNoItemHeight)
	}
	target := GetOpt(o, OptScrollTarget)
	containerRef := GetOpt(o, OptContainerRef)
	containerHeight := GetOpt(o, OptContainerHeight)
	if target == ScrollContainer && containerRef == nil && !HasOpt(o, OptContainerHeight) {
		logger.Debug("virtualizer config rejected", "reason", "no container height")
		return nil, fmt.Errorf("new virtualizer: %w", ErrNoContainerHeight)
	}

	v := &Virtualizer{
		count:     itemCount,
		overscan:  maxInt(0, GetOpt(o, OptOverscan)),
		target:    target,
		host:      GetOpt(o, OptHost),
		listeners: make(map[int]func()),
	}
	v.oracle = newHeightOracle(source, GetOpt(o, OptItemSpacing), GetOpt(o, OptMeasureItemHeight))
	v.feed = newMeasureFeed(v.oracle, v.host, v.onMeasured)

	initial := Viewport{
		ScrollOffset:    GetOpt(o, OptScrollOffset),
		ContainerHeight: containerHeight,
	}
	v.tracker = newViewportTracker(target, v.host, initial, containerRef, v.onViewport)

	v.rebuild()
	v.tracker.mount()
	v.resolve()
	return v, nil
}

// Items returns the virtual items of the current range. The slice is replaced,
// never modified, when the range or positions change.
func (v *Virtualizer) Items() []VirtualItem {
	return v.items
}

// TotalHeight returns the extent of the whole list.
func (v *Virtualizer) TotalHeight() float64 {
	return v.table.Total
}

// Range returns the current range including overscan.
func (v *Virtualizer) Range() Range {
	return v.rng
}

// Viewport returns the tracked viewport.
func (v *Virtualizer) Viewport() Viewport {
	return v.tracker.viewport()
}

// Positions returns the current position table.
func (v *Virtualizer) Positions() *PositionTable {
	return v.table
}

// ItemCount returns the number of items.
func (v *Virtualizer) ItemCount() int {
	return v.count
}

// Clipper returns a list clipper over the current table and viewport.
func (v *Virtualizer) Clipper() *ListClipper {
	return &ListClipper{Range: v.rng, Table: v.table}
}

// ContainerStyle returns the scroll container box. In window mode the page
// scrolls, so the style is zero and ok is false.
func (v *Virtualizer) ContainerStyle() (style ContainerStyle, ok bool) {
	if v.target == ScrollWindow {
		return ContainerStyle{}, false
	}
	return ContainerStyle{
		Height:   v.tracker.viewport().ContainerHeight,
		Overflow: "auto",
		Position: "relative",
	}, true
}

// ScrollHandler returns the container scroll handler, or nil in window mode.
func (v *Virtualizer) ScrollHandler() func(scrollTop float64) {
	if v.target == ScrollWindow {
		return nil
	}
	return func(scrollTop float64) {
		if v.closed {
			return
		}
		v.tracker.handleScroll(scrollTop)
	}
}

// SetScrollElement attaches the caller's scrollable node. In window mode the
// node's document top anchors the scroll offset.
func (v *Virtualizer) SetScrollElement(el Element) {
	if v.closed {
		return
	}
	v.tracker.setScrollElement(el)
}

// MeasureRef returns the attachment callback for index. Pass the rendered
// element to attach it, nil (or a nil pointer) to detach. Without
// MeasureItemHeight the callback does nothing.
func (v *Virtualizer) MeasureRef(index int) func(Element) {
	if !v.oracle.measure {
		return func(Element) {}
	}
	attach := v.feed.ref(index)
	return func(el Element) {
		if v.closed {
			return
		}
		attach(el)
	}
}

// MeasuredHeight returns the recorded height of index, if any.
func (v *Virtualizer) MeasuredHeight(index int) (float64, bool) {
	return v.oracle.Measured(index)
}

// SetItemCount changes the number of items and rebuilds positions. Shrinking
// keeps measured heights of removed indices in case they return.
func (v *Virtualizer) SetItemCount(n int) {
	if v.closed || n == v.count {
		return
	}
	if n < 0 {
		n = 0
	}
	v.count = n
	v.invalidate()
}

// SetItemHeight replaces the fallback height source. Functions are not
// comparable, so every call rebuilds.
func (v *Virtualizer) SetItemHeight(src HeightSource) {
	if v.closed || src.IsZero() {
		return
	}
	v.oracle.source = src
	v.invalidate()
}

// SetItemSpacing changes the gap added to measured heights.
func (v *Virtualizer) SetItemSpacing(px float64) {
	if v.closed || px == v.oracle.spacing {
		return
	}
	v.oracle.spacing = px
	v.invalidate()
}

// SetScrollOffset overrides the scroll offset immediately.
func (v *Virtualizer) SetScrollOffset(px float64) {
	if v.closed {
		return
	}
	v.tracker.setOffset(px)
}

// ScrollOffsetFor returns the offset that brings index into view.
func (v *Virtualizer) ScrollOffsetFor(index int) float64 {
	vp := v.tracker.viewport()
	return v.Clipper().ScrollToItem(index, vp.ScrollOffset, vp.ContainerHeight)
}

// Subscribe registers fn to run after every recomputation.
func (v *Virtualizer) Subscribe(fn func()) (cancel func()) {
	id := v.nextSub
	v.nextSub++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

// Close cancels pending frames, disconnects observers and releases window
// listeners. Further calls are no-ops.
func (v *Virtualizer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.tracker.unmount()
	v.feed.close()
	v.listeners = make(map[int]func())
}

func (v *Virtualizer) onMeasured() {
	if v.closed {
		return
	}
	v.invalidate()
}

func (v *Virtualizer) onViewport(Viewport) {
	if v.closed || v.table == nil {
		return
	}
	v.resolve()
	v.notify()
}

// invalidate rebuilds positions and the visible window.
func (v *Virtualizer) invalidate() {
	v.rebuild()
	v.resolve()
	v.notify()
}

func (v *Virtualizer) rebuild() {
	v.table = BuildPositions(v.count, v.oracle.ItemHeight)
	logger.Debug("positions rebuilt", "count", v.count, "total", v.table.Total)
}

func (v *Virtualizer) resolve() {
	v.rng = ResolveRange(v.tracker.viewport(), v.table, v.overscan)
	v.items = VirtualItems(v.table, v.rng)
}

func (v *Virtualizer) notify() {
	for _, fn := range v.listeners {
		fn()
	}
}

// maxInt returns the maximum of two ints.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
