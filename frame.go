package vlist

import "sync"

// FrameQueue is a FrameRequester drained by the host's frame loop.
// Call Tick once per frame; callbacks requested while a tick is running are
// deferred to the next tick, so a callback that requests another frame is
// never run twice in the same frame.
//
// RequestFrame and CancelFrame are safe for concurrent use. Callbacks run on
// the goroutine calling Tick.
//
// Usage:
//
//	frames := vlist.NewFrameQueue()
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    frames.Tick()
//	    // draw
//	}
type FrameQueue struct {
	mu      sync.Mutex
	nextID  FrameID
	pending []frameCallback
	running map[FrameID]struct{} // batch of the tick in progress
	count   uint64
}

type frameCallback struct {
	id FrameID
	fn func()
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame schedules fn for the next Tick.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, frameCallback{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a pending callback. A callback of the running tick
// that has not run yet is skipped. Unknown IDs are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, cb := range q.pending {
		if cb.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	delete(q.running, id)
}

// Tick runs every callback that was pending when Tick was called, minus those
// cancelled meanwhile, and returns how many ran.
func (q *FrameQueue) Tick() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.count++
	q.running = make(map[FrameID]struct{}, len(batch))
	for _, cb := range batch {
		q.running[cb.id] = struct{}{}
	}
	q.mu.Unlock()

	ran := 0
	for _, cb := range batch {
		if !q.claim(cb.id) {
			continue
		}
		cb.fn()
		ran++
	}

	q.mu.Lock()
	q.running = nil
	q.mu.Unlock()
	return ran
}

// claim reports whether id is still live in the running batch and removes it.
func (q *FrameQueue) claim(id FrameID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.running[id]; !ok {
		return false
	}
	delete(q.running, id)
	return true
}

// Pending returns the number of callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// FrameCount returns the number of ticks run so far.
func (q *FrameQueue) FrameCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// frameSlot coalesces updates into at most one application per frame.
// A push while a frame is pending replaces the pending value.
type frameSlot[T any] struct {
	frames    FrameRequester
	apply     func(T)
	pending   T
	scheduled bool
	id        FrameID
	gen       uint64
}

func newFrameSlot[T any](frames FrameRequester, apply func(T)) *frameSlot[T] {
	return &frameSlot[T]{frames: frames, apply: apply}
}

func (s *frameSlot[T]) push(v T) {
	s.pending = v
	if s.scheduled {
		return
	}
	s.scheduled = true
	s.gen++
	gen := s.gen
	id := s.frames.RequestFrame(func() { s.flush(gen) })
	if s.scheduled {
		s.id = id
	}
}

// flush applies the pending value unless the request it belongs to was
// cancelled or superseded.
func (s *frameSlot[T]) flush(gen uint64) {
	if !s.scheduled || gen != s.gen {
		return
	}
	s.scheduled = false
	s.apply(s.pending)
}

// cancel drops any pending value.
func (s *frameSlot[T]) cancel() {
	if !s.scheduled {
		return
	}
	s.frames.CancelFrame(s.id)
	s.scheduled = false
	s.gen++
	var zero T
	s.pending = zero
}
