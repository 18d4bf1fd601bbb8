package vlist

import "reflect"

// measureFeed keeps the height record in step with rendered elements.
// It is a registry of index -> element with attach (measure + observe) and
// detach (stop observing) operations. Heights survive detach so an item that
// scrolls out and back in keeps its measured size.
type measureFeed struct {
	oracle   *heightOracle
	frames   FrameRequester
	observer ResizeObserver
	newObs   func(func([]ResizeEntry)) ResizeObserver

	attached  map[int]Element
	byElement map[Element]int
	deferred  map[FrameID]struct{}

	// onChange runs once per batch of accepted measurements.
	onChange func()
}

func newMeasureFeed(oracle *heightOracle, host Host, onChange func()) *measureFeed {
	return &measureFeed{
		oracle:    oracle,
		frames:    host.frames(),
		newObs:    host.NewResizeObserver,
		attached:  make(map[int]Element),
		byElement: make(map[Element]int),
		deferred:  make(map[FrameID]struct{}),
		onChange:  onChange,
	}
}

// ref returns the attachment callback for index. A non-nil element attaches,
// nil detaches. A nil pointer wrapped in the interface also detaches.
func (f *measureFeed) ref(index int) func(Element) {
	return func(el Element) {
		if isNil(el) {
			f.detach(index)
			return
		}
		f.attach(index, el)
	}
}

func (f *measureFeed) attach(index int, el Element) {
	if cur, ok := f.attached[index]; ok && cur == el {
		// Re-attaching on every render must not re-measure.
		return
	}
	if prev, ok := f.byElement[el]; ok && prev != index {
		f.detach(prev)
	}
	if _, ok := f.attached[index]; ok {
		f.detach(index)
	}

	f.attached[index] = el
	f.byElement[el] = index

	changed := f.store(index, el.OffsetHeight())

	// Re-measure after two frames so late style and content have settled.
	var outer FrameID
	outer = f.frames.RequestFrame(func() {
		delete(f.deferred, outer)
		var inner FrameID
		inner = f.frames.RequestFrame(func() {
			delete(f.deferred, inner)
			if f.attached[index] != el {
				return
			}
			if f.store(index, el.OffsetHeight()) {
				f.onChange()
			}
		})
		f.trackDeferred(inner)
	})
	f.trackDeferred(outer)

	if obs := f.resizeObserver(); obs != nil {
		obs.Observe(el)
	}

	if changed {
		f.onChange()
	}
}

// trackDeferred remembers a pending frame for cancellation. Immediate frame
// requesters have already run the callback, which is harmless to track.
func (f *measureFeed) trackDeferred(id FrameID) {
	if id != 0 {
		f.deferred[id] = struct{}{}
	}
}

func (f *measureFeed) detach(index int) {
	el, ok := f.attached[index]
	if !ok {
		return
	}
	delete(f.attached, index)
	delete(f.byElement, el)
	if f.observer != nil {
		f.observer.Unobserve(el)
	}
}

// resizeObserver lazily creates the shared observer.
func (f *measureFeed) resizeObserver() ResizeObserver {
	if f.observer == nil && f.newObs != nil {
		f.observer = f.newObs(f.onResize)
	}
	return f.observer
}

func (f *measureFeed) onResize(entries []ResizeEntry) {
	changed := false
	for _, e := range entries {
		index, ok := f.byElement[e.Target]
		if !ok {
			continue
		}
		if f.store(index, e.Height) {
			changed = true
		}
	}
	if changed {
		f.onChange()
	}
}

// store records h for index, logging discarded readings.
func (f *measureFeed) store(index int, h float64) bool {
	if f.oracle.record(index, h) {
		return true
	}
	if Verbose() {
		old, _ := f.oracle.Measured(index)
		logger.Debug("measurement discarded", "index", index, "height", h, "stored", old)
	}
	return false
}

// attachedCount returns the number of live elements.
func (f *measureFeed) attachedCount() int {
	return len(f.attached)
}

// close cancels deferred measurements and disconnects the observer.
func (f *measureFeed) close() {
	for id := range f.deferred {
		f.frames.CancelFrame(id)
	}
	f.deferred = make(map[FrameID]struct{})
	if f.observer != nil {
		f.observer.Disconnect()
		f.observer = nil
	}
	f.attached = make(map[int]Element)
	f.byElement = make(map[Element]int)
}

// isNil reports whether el is nil or holds a nil pointer.
func isNil(el Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
