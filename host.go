package vlist

// Element is a materialized node whose rendered height can be read.
// Implementations must be comparable (pointer types) because the engine keys
// its registries by element identity.
type Element interface {
	OffsetHeight() float64
}

// ScrollElement is an Element that scrolls its own content.
type ScrollElement interface {
	Element
	ScrollTop() float64
}

// Positioned is implemented by elements that know their offset from the top
// of the document. Window-mode tracking uses it to make the list's scroll
// offset relative to its own container.
type Positioned interface {
	DocumentTop() float64
}

// Window is the host's top-level scroll surface.
type Window interface {
	ScrollY() float64
	InnerHeight() float64
	// OnScroll and OnResize register listeners and return a function that
	// removes them.
	OnScroll(fn func()) (cancel func())
	OnResize(fn func()) (cancel func())
}

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameRequester schedules callbacks for the host's next frame, in the manner
// of requestAnimationFrame.
type FrameRequester interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// ResizeEntry reports a new rendered height for an observed element.
type ResizeEntry struct {
	Target Element
	Height float64
}

// ResizeObserver watches elements for size changes.
type ResizeObserver interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// IntersectionEntry reports an observed element crossing the root's edge.
type IntersectionEntry struct {
	Target         Element
	IsIntersecting bool
}

// IntersectionOptions configures an intersection observer.
type IntersectionOptions struct {
	Root       Element // nil means the host viewport
	RootMargin string  // CSS margin shorthand, e.g. "0px 0px 100px 0px"
}

// IntersectionObserver watches elements for viewport proximity.
type IntersectionObserver interface {
	Observe(el Element)
	Disconnect()
}

// Host bundles the platform primitives the engine needs. Any field may be nil
// when the host lacks the primitive; the engine then uses static values.
type Host struct {
	Frames                  FrameRequester
	Window                  Window
	NewResizeObserver       func(callback func([]ResizeEntry)) ResizeObserver
	NewIntersectionObserver func(callback func([]IntersectionEntry), opts IntersectionOptions) IntersectionObserver
}

// frames returns the host's frame requester, or an immediate one when the host
// has no frame pump.
func (h Host) frames() FrameRequester {
	if h.Frames != nil {
		return h.Frames
	}
	return immediateFrames{}
}

// immediateFrames runs callbacks synchronously. It stands in for hosts with
// no frame loop, such as one-shot computations.
type immediateFrames struct{}

func (immediateFrames) RequestFrame(fn func()) FrameID {
	fn()
	return 0
}

func (immediateFrames) CancelFrame(FrameID) {}
