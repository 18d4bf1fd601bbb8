// Package memory provides an in-memory host for the vlist engine.
//
// A Document plays the part of a browser page: it has a scrollable window,
// elements with settable heights and document offsets, resize and
// intersection observers, and a frame queue. Nothing happens on its own;
// tests and simulators drive it explicitly:
//
//	doc := memory.NewDocument(600)
//	v, _ := vlist.New(100, vlist.WithFixedHeight(50),
//	    vlist.WithScrollTarget(vlist.ScrollWindow), vlist.WithHost(doc.Host()))
//	doc.ScrollTo(1200)
//	doc.Tick()
//	_ = v.Items()
package memory

import "github.com/go-theft-auto/vlist"

// Document is an in-memory page. It is not safe for concurrent use.
type Document struct {
	frames      *vlist.FrameQueue
	scrollY     float64
	innerHeight float64

	scrollFns map[int]func()
	resizeFns map[int]func()
	nextFn    int

	resizeObs map[*resizeObserver]struct{}
	interObs  map[*intersectionObserver]struct{}

	lastIntersection  vlist.IntersectionOptions
	intersectionsMade int
}

// NewDocument creates a document whose window is innerHeight pixels tall.
func NewDocument(innerHeight float64) *Document {
	return &Document{
		frames:      vlist.NewFrameQueue(),
		innerHeight: innerHeight,
		scrollFns:   make(map[int]func()),
		resizeFns:   make(map[int]func()),
		resizeObs:   make(map[*resizeObserver]struct{}),
		interObs:    make(map[*intersectionObserver]struct{}),
	}
}

// Host returns the document's primitives with the document as the window.
func (d *Document) Host() vlist.Host {
	return d.HostWithWindow(d)
}

// HostWithWindow returns the document's frames and observers paired with a
// different window, for hosts that own their scroll surface.
func (d *Document) HostWithWindow(w vlist.Window) vlist.Host {
	return vlist.Host{
		Frames:                  d.frames,
		Window:                  w,
		NewResizeObserver:       d.newResizeObserver,
		NewIntersectionObserver: d.newIntersectionObserver,
	}
}

// Frames returns the document's frame queue.
func (d *Document) Frames() *vlist.FrameQueue {
	return d.frames
}

// Tick runs one frame.
func (d *Document) Tick() int {
	return d.frames.Tick()
}

// Flush runs frames until none are pending, up to limit frames.
func (d *Document) Flush(limit int) int {
	ran := 0
	for i := 0; i < limit && d.frames.Pending() > 0; i++ {
		ran += d.frames.Tick()
	}
	return ran
}

// --- vlist.Window ---

// ScrollY returns the window's scroll offset.
func (d *Document) ScrollY() float64 { return d.scrollY }

// InnerHeight returns the window's visible height.
func (d *Document) InnerHeight() float64 { return d.innerHeight }

// OnScroll registers a scroll listener.
func (d *Document) OnScroll(fn func()) func() {
	return d.listen(d.scrollFns, fn)
}

// OnResize registers a resize listener.
func (d *Document) OnResize(fn func()) func() {
	return d.listen(d.resizeFns, fn)
}

func (d *Document) listen(set map[int]func(), fn func()) func() {
	id := d.nextFn
	d.nextFn++
	set[id] = fn
	return func() { delete(set, id) }
}

// ScrollTo moves the window and fires scroll listeners.
func (d *Document) ScrollTo(y float64) {
	d.scrollY = y
	for _, fn := range d.scrollFns {
		fn()
	}
}

// ResizeWindow changes the window height and fires resize listeners.
func (d *Document) ResizeWindow(innerHeight float64) {
	d.innerHeight = innerHeight
	for _, fn := range d.resizeFns {
		fn()
	}
}

// Listeners returns the number of registered scroll and resize listeners.
func (d *Document) Listeners() int {
	return len(d.scrollFns) + len(d.resizeFns)
}

// --- Elements ---

// Element is an in-memory node.
type Element struct {
	doc       *Document
	height    float64
	top       float64
	scrollTop float64
}

// NewElement creates an element of the given height at document top 0.
func (d *Document) NewElement(height float64) *Element {
	return &Element{doc: d, height: height}
}

// OffsetHeight returns the element's height.
func (e *Element) OffsetHeight() float64 { return e.height }

// DocumentTop returns the element's offset from the top of the document.
func (e *Element) DocumentTop() float64 { return e.top }

// ScrollTop returns the element's own scroll offset.
func (e *Element) ScrollTop() float64 { return e.scrollTop }

// SetDocumentTop moves the element within the page.
func (e *Element) SetDocumentTop(top float64) { e.top = top }

// SetScrollTop sets the element's own scroll offset.
func (e *Element) SetScrollTop(top float64) { e.scrollTop = top }

// SetHeight changes the element's height and notifies resize observers
// watching it.
func (e *Element) SetHeight(h float64) {
	e.height = h
	for obs := range e.doc.resizeObs {
		if _, ok := obs.targets[e]; ok {
			obs.callback([]vlist.ResizeEntry{{Target: e, Height: h}})
		}
	}
}

// SetHeightSilently changes the height without notifying observers, as a
// layout change that has not been observed yet.
func (e *Element) SetHeightSilently(h float64) {
	e.height = h
}

// --- Resize observers ---

type resizeObserver struct {
	doc      *Document
	callback func([]vlist.ResizeEntry)
	targets  map[vlist.Element]struct{}
}

func (d *Document) newResizeObserver(cb func([]vlist.ResizeEntry)) vlist.ResizeObserver {
	obs := &resizeObserver{doc: d, callback: cb, targets: make(map[vlist.Element]struct{})}
	d.resizeObs[obs] = struct{}{}
	return obs
}

func (o *resizeObserver) Observe(el vlist.Element) { o.targets[el] = struct{}{} }
func (o *resizeObserver) Unobserve(el vlist.Element) { delete(o.targets, el) }

func (o *resizeObserver) Disconnect() {
	o.targets = make(map[vlist.Element]struct{})
	delete(o.doc.resizeObs, o)
}

// Resize delivers one batch of resize entries to every observer, filtered to
// the elements each one watches. Heights are applied to the elements first.
func (d *Document) Resize(entries map[*Element]float64) {
	for el, h := range entries {
		el.height = h
	}
	for obs := range d.resizeObs {
		var batch []vlist.ResizeEntry
		for el, h := range entries {
			if _, ok := obs.targets[el]; ok {
				batch = append(batch, vlist.ResizeEntry{Target: el, Height: h})
			}
		}
		if len(batch) > 0 {
			obs.callback(batch)
		}
	}
}

// Observed reports whether any resize observer watches el.
func (d *Document) Observed(el *Element) bool {
	for obs := range d.resizeObs {
		if _, ok := obs.targets[el]; ok {
			return true
		}
	}
	return false
}

// ResizeObservers returns the number of connected resize observers.
func (d *Document) ResizeObservers() int {
	return len(d.resizeObs)
}

// --- Intersection observers ---

type intersectionObserver struct {
	doc      *Document
	callback func([]vlist.IntersectionEntry)
	opts     vlist.IntersectionOptions
	targets  map[vlist.Element]struct{}
}

func (d *Document) newIntersectionObserver(cb func([]vlist.IntersectionEntry), opts vlist.IntersectionOptions) vlist.IntersectionObserver {
	obs := &intersectionObserver{doc: d, callback: cb, opts: opts, targets: make(map[vlist.Element]struct{})}
	d.interObs[obs] = struct{}{}
	d.lastIntersection = opts
	d.intersectionsMade++
	return obs
}

func (o *intersectionObserver) Observe(el vlist.Element) { o.targets[el] = struct{}{} }

func (o *intersectionObserver) Disconnect() {
	o.targets = make(map[vlist.Element]struct{})
	delete(o.doc.interObs, o)
}

// Intersect reports el entering (or leaving) the root of every observer
// watching it.
//
// Observers created or disconnected by a callback do not change who is
// notified by this call.
func (d *Document) Intersect(el *Element, intersecting bool) {
	var watching []*intersectionObserver
	for obs := range d.interObs {
		if _, ok := obs.targets[el]; ok {
			watching = append(watching, obs)
		}
	}
	for _, obs := range watching {
		obs.callback([]vlist.IntersectionEntry{{Target: el, IsIntersecting: intersecting}})
	}
}

// IntersectionObservers returns the number of connected intersection
// observers.
func (d *Document) IntersectionObservers() int {
	return len(d.interObs)
}

// IntersectionObserversMade returns how many intersection observers were ever
// created.
func (d *Document) IntersectionObserversMade() int {
	return d.intersectionsMade
}

// LastIntersectionOptions returns the options of the newest observer.
func (d *Document) LastIntersectionOptions() vlist.IntersectionOptions {
	return d.lastIntersection
}
