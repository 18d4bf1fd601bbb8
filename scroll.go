package vlist

// pageFraction is the share of the viewport moved by PageUp and PageDown.
const pageFraction = 0.8

// ScrollSurface is the scroll state of a host that owns its scrollbar: a
// native window, a terminal, a test harness. It implements Window, so a
// Virtualizer in window mode can follow it.
//
// The offset stays within [0, MaxScroll]. Listeners fire only when a value
// actually changes.
//
// Usage:
//
//	surface := vlist.NewScrollSurface(600)
//	v, _ := vlist.New(n, vlist.WithFixedHeight(24),
//	    vlist.WithScrollTarget(vlist.ScrollWindow),
//	    vlist.WithHost(vlist.Host{Frames: frames, Window: surface}))
//	// each frame:
//	surface.SetContentHeight(v.TotalHeight())
//	surface.Wheel(wheelY, 30)
type ScrollSurface struct {
	scrollY       float64
	targetY       float64
	smoothing     bool
	innerHeight   float64
	contentHeight float64

	scrollFns map[int]func()
	resizeFns map[int]func()
	nextFn    int
}

// NewScrollSurface creates a surface with a viewport innerHeight tall and no
// content.
func NewScrollSurface(innerHeight float64) *ScrollSurface {
	return &ScrollSurface{
		innerHeight: maxf(0, innerHeight),
		scrollFns:   make(map[int]func()),
		resizeFns:   make(map[int]func()),
	}
}

// ScrollY returns the scroll offset.
func (s *ScrollSurface) ScrollY() float64 { return s.scrollY }

// InnerHeight returns the viewport height.
func (s *ScrollSurface) InnerHeight() float64 { return s.innerHeight }

// ContentHeight returns the scrollable height.
func (s *ScrollSurface) ContentHeight() float64 { return s.contentHeight }

// OnScroll registers a scroll listener.
func (s *ScrollSurface) OnScroll(fn func()) func() { return s.listen(s.scrollFns, fn) }

// OnResize registers a resize listener.
func (s *ScrollSurface) OnResize(fn func()) func() { return s.listen(s.resizeFns, fn) }

func (s *ScrollSurface) listen(set map[int]func(), fn func()) func() {
	id := s.nextFn
	s.nextFn++
	set[id] = fn
	return func() { delete(set, id) }
}

// MaxScroll returns the largest valid offset.
func (s *ScrollSurface) MaxScroll() float64 {
	return maxf(0, s.contentHeight-s.innerHeight)
}

// SetContentHeight sets the scrollable height, usually the virtualizer's
// TotalHeight, and re-clamps the offset.
func (s *ScrollSurface) SetContentHeight(h float64) {
	s.contentHeight = maxf(0, h)
	s.ScrollTo(s.scrollY)
}

// SetInnerHeight changes the viewport height. Resize listeners fire before
// the offset is re-clamped.
func (s *ScrollSurface) SetInnerHeight(h float64) {
	h = maxf(0, h)
	if h == s.innerHeight {
		return
	}
	s.innerHeight = h
	for _, fn := range s.resizeFns {
		fn()
	}
	s.ScrollTo(s.scrollY)
}

// ScrollTo moves to y, clamped, and cancels smooth scrolling.
func (s *ScrollSurface) ScrollTo(y float64) {
	s.smoothing = false
	s.set(y)
}

// ScrollBy moves the offset by dy.
func (s *ScrollSurface) ScrollBy(dy float64) {
	s.ScrollTo(s.scrollY + dy)
}

// Wheel applies a wheel delta in notches, positive meaning up, at step
// pixels per notch.
func (s *ScrollSurface) Wheel(notches, step float64) {
	if notches != 0 {
		s.ScrollBy(-notches * step)
	}
}

// PageDown scrolls forward by most of a viewport.
func (s *ScrollSurface) PageDown() { s.ScrollBy(s.innerHeight * pageFraction) }

// PageUp scrolls back by most of a viewport.
func (s *ScrollSurface) PageUp() { s.ScrollBy(-s.innerHeight * pageFraction) }

// Home scrolls to the top.
func (s *ScrollSurface) Home() { s.ScrollTo(0) }

// End scrolls to the bottom.
func (s *ScrollSurface) End() { s.ScrollTo(s.MaxScroll()) }

// EnsureVisible scrolls the least distance that keeps targetY at least
// padding away from both viewport edges. Typical use is keeping a selected
// row on screen: EnsureVisible(table.Start(i), table.Size(i)).
func (s *ScrollSurface) EnsureVisible(targetY, padding float64) {
	top := s.scrollY + padding
	bottom := s.scrollY + s.innerHeight - padding
	switch {
	case targetY < top:
		s.ScrollTo(targetY - padding)
	case targetY > bottom:
		s.ScrollTo(targetY - s.innerHeight + padding)
	}
}

// SmoothScrollTo starts an animated scroll towards y. Drive it with Update.
func (s *ScrollSurface) SmoothScrollTo(y float64) {
	s.targetY = clampf(y, 0, s.MaxScroll())
	s.smoothing = s.targetY != s.scrollY
}

// Update advances smooth scrolling by dt seconds and reports whether it is
// still animating.
func (s *ScrollSurface) Update(dt float64) bool {
	const smoothSpeed = 15.0
	const threshold = 0.5

	if !s.smoothing {
		return false
	}
	diff := s.targetY - s.scrollY
	if absf(diff) < threshold {
		s.set(s.targetY)
		s.smoothing = false
		return false
	}
	step := diff * dt * smoothSpeed
	if absf(step) > absf(diff) {
		step = diff
	}
	s.set(s.scrollY + step)
	return true
}

func (s *ScrollSurface) set(y float64) {
	y = clampf(y, 0, s.MaxScroll())
	if y == s.scrollY {
		return
	}
	s.scrollY = y
	for _, fn := range s.scrollFns {
		fn()
	}
}
