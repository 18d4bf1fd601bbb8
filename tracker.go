package vlist

// viewportTracker owns the Viewport State. Offset updates are coalesced to
// one per frame; height updates apply immediately.
type viewportTracker struct {
	target   ScrollTarget
	host     Host
	state    Viewport
	onChange func(Viewport)

	offsets *frameSlot[float64]

	// Container mode
	containerRef Element
	scrollEl     Element
	resizeObs    ResizeObserver
	observed     Element

	// Window mode
	containerTop float64
	cancels      []func()
}

func newViewportTracker(target ScrollTarget, host Host, initial Viewport, containerRef Element, onChange func(Viewport)) *viewportTracker {
	t := &viewportTracker{
		target:       target,
		host:         host,
		state:        initial,
		onChange:     onChange,
		containerRef: containerRef,
	}
	t.offsets = newFrameSlot(host.frames(), t.applyOffset)
	return t
}

// mount subscribes to the host. For window mode it measures the container's
// document top and the window height; for container mode it starts observing
// the container ref, if any.
func (t *viewportTracker) mount() {
	switch t.target {
	case ScrollWindow:
		w := t.host.Window
		if w == nil {
			return
		}
		t.measureWindow()
		t.cancels = append(t.cancels,
			w.OnScroll(t.onWindowScroll),
			w.OnResize(t.onWindowResize),
		)
		t.offsets.push(t.windowOffset())
	default:
		if t.containerRef != nil {
			t.observeContainer(t.containerRef)
		}
	}
}

// handleScroll is the container-mode scroll handler.
func (t *viewportTracker) handleScroll(scrollTop float64) {
	t.offsets.push(scrollTop)
}

// setScrollElement records the caller's scroll node. Without a container ref,
// the scroll node itself is measured.
func (t *viewportTracker) setScrollElement(el Element) {
	t.scrollEl = el
	if t.target == ScrollWindow {
		t.measureWindow()
		t.offsets.push(t.windowOffset())
		return
	}
	if t.containerRef == nil && el != nil {
		t.observeContainer(el)
	}
	if se, ok := el.(ScrollElement); ok {
		t.offsets.push(se.ScrollTop())
	}
}

func (t *viewportTracker) observeContainer(el Element) {
	if t.observed == el {
		return
	}
	if h := el.OffsetHeight(); h > 0 {
		t.setHeight(h)
	}
	if t.host.NewResizeObserver == nil {
		return
	}
	if t.resizeObs == nil {
		t.resizeObs = t.host.NewResizeObserver(t.onContainerResize)
	}
	if t.observed != nil {
		t.resizeObs.Unobserve(t.observed)
	}
	t.observed = el
	t.resizeObs.Observe(el)
}

func (t *viewportTracker) onContainerResize(entries []ResizeEntry) {
	for _, e := range entries {
		if e.Target == t.observed && e.Height > 0 {
			t.setHeight(e.Height)
		}
	}
}

func (t *viewportTracker) onWindowScroll() {
	t.offsets.push(t.windowOffset())
}

// onWindowResize re-measures the container top and window height. The
// container top is not re-read on plain scrolls.
func (t *viewportTracker) onWindowResize() {
	t.measureWindow()
	t.offsets.push(t.windowOffset())
}

func (t *viewportTracker) measureWindow() {
	w := t.host.Window
	if w == nil {
		return
	}
	t.containerTop = 0
	if p, ok := t.scrollEl.(Positioned); ok {
		t.containerTop = p.DocumentTop()
	} else if p, ok := t.containerRef.(Positioned); ok {
		t.containerTop = p.DocumentTop()
	}
	t.setHeight(w.InnerHeight())
}

// windowOffset is the window scroll relative to the container top, never
// negative.
func (t *viewportTracker) windowOffset() float64 {
	return maxf(0, t.host.Window.ScrollY()-t.containerTop)
}

func (t *viewportTracker) applyOffset(offset float64) {
	if offset == t.state.ScrollOffset {
		return
	}
	t.state.ScrollOffset = offset
	t.onChange(t.state)
}

// setOffset overrides the offset immediately, dropping any pending update.
func (t *viewportTracker) setOffset(offset float64) {
	t.offsets.cancel()
	t.applyOffset(offset)
}

func (t *viewportTracker) setHeight(h float64) {
	if h == t.state.ContainerHeight {
		return
	}
	t.state.ContainerHeight = h
	t.onChange(t.state)
}

func (t *viewportTracker) viewport() Viewport {
	return t.state
}

// unmount cancels the pending frame and releases every subscription.
func (t *viewportTracker) unmount() {
	t.offsets.cancel()
	for _, cancel := range t.cancels {
		if cancel != nil {
			cancel()
		}
	}
	t.cancels = nil
	if t.resizeObs != nil {
		t.resizeObs.Disconnect()
		t.resizeObs = nil
	}
	t.observed = nil
}
