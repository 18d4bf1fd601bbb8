package scenario

import (
	"fmt"
	"sort"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
)

// settleFrames bounds the frames run after each step. Two are needed for a
// deferred re-measure, one for a coalesced scroll.
const settleFrames = 8

// maxLoadRounds bounds back-to-back loads while the marker stays in range.
const maxLoadRounds = 1000

// Snapshot is the engine state after a step.
type Snapshot struct {
	Step            string
	ScrollOffset    float64
	ContainerHeight float64
	TotalHeight     float64
	Range           vlist.Range
	Rendered        int
	ItemCount       int
	Loads           int
}

// Result is the outcome of a replay.
type Result struct {
	Name      string
	Snapshots []Snapshot
	Loads     int
	Positions *vlist.PositionTable
}

// Last returns the final snapshot.
func (r *Result) Last() Snapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}

type runner struct {
	s    *Scenario
	doc  *memory.Document
	list *vlist.Virtualizer

	container *memory.Element
	elements  map[int]*memory.Element

	sentinel      *vlist.Sentinel
	marker        *memory.Element
	markerVisible bool
	requested     int
	loads         int
}

// Run replays s on a fresh in-memory document. Scroll steps move the
// container in container mode and the window in window mode; resize steps
// change the container or window height likewise.
func Run(s *Scenario) (*Result, error) {
	r := &runner{
		s:        s,
		doc:      memory.NewDocument(s.WindowHeight),
		elements: make(map[int]*memory.Element),
	}
	r.container = r.doc.NewElement(s.ContainerHeight)
	r.container.SetDocumentTop(s.ContainerTop)

	opts := []vlist.Option{
		vlist.WithItemHeight(s.HeightSource()),
		vlist.WithItemSpacing(s.ItemSpacing),
		vlist.WithOverscan(*s.Overscan),
		vlist.WithScrollTarget(s.Target()),
		vlist.WithContainerRef(r.container),
		vlist.WithHost(r.doc.Host()),
	}
	if s.Measure {
		opts = append(opts, vlist.MeasureItemHeight())
	}

	list, err := vlist.New(s.Items, opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	defer list.Close()
	r.list = list

	if s.Sentinel != nil {
		if err := r.setupSentinel(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		defer r.sentinel.Close()
	}

	indices := make([]int, 0, len(s.Measured))
	for i := range s.Measured {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		r.measure(i, s.Measured[i])
	}

	res := &Result{Name: s.Name}
	if err := r.settle(); err != nil {
		return nil, fmt.Errorf("scenario %q: initial state: %w", s.Name, err)
	}
	res.Snapshots = append(res.Snapshots, r.snapshot("initial"))

	for i, st := range s.Steps {
		r.apply(st)
		if err := r.settle(); err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", s.Name, i, err)
		}
		res.Snapshots = append(res.Snapshots, r.snapshot(st.String()))
	}

	res.Loads = r.loads
	res.Positions = list.Positions()
	return res, nil
}

func (r *runner) setupSentinel() error {
	sc := r.s.Sentinel
	dir := vlist.DirectionDown
	if sc.Direction == "up" {
		dir = vlist.DirectionUp
	}
	hasMore := sc.MaxItems == 0 || r.list.ItemCount() < sc.MaxItems

	var opts []vlist.Option
	opts = append(opts,
		vlist.WithThreshold(*sc.Threshold),
		vlist.WithDirection(dir),
		vlist.WithRootMargin(sc.RootMargin),
		vlist.WithHasMore(hasMore),
	)
	if r.s.Target() == vlist.ScrollContainer {
		opts = append(opts, vlist.WithRoot(r.container))
	}

	s, err := vlist.NewSentinel(r.doc.Host(), func() { r.requested++ }, opts...)
	if err != nil {
		return err
	}
	r.sentinel = s
	r.marker = r.doc.NewElement(1)
	s.Ref()(r.marker)
	return nil
}

func (r *runner) apply(st Step) {
	switch {
	case st.Scroll != nil:
		if r.s.Target() == vlist.ScrollWindow {
			r.doc.ScrollTo(*st.Scroll)
		} else {
			r.list.ScrollHandler()(*st.Scroll)
		}
	case st.Resize != nil:
		if r.s.Target() == vlist.ScrollWindow {
			r.doc.ResizeWindow(*st.Resize)
		} else {
			r.container.SetHeight(*st.Resize)
		}
	case st.SetCount != nil:
		r.list.SetItemCount(*st.SetCount)
	case st.Measure != nil:
		r.measure(st.Measure.Index, st.Measure.Height)
	case st.Frames > 0:
		for i := 0; i < st.Frames; i++ {
			r.doc.Tick()
		}
	}
}

func (r *runner) measure(index int, h float64) {
	if el, ok := r.elements[index]; ok {
		el.SetHeight(h)
		return
	}
	el := r.doc.NewElement(h)
	r.elements[index] = el
	r.list.MeasureRef(index)(el)
}

// settle drains frames and lets the sentinel load until the marker leaves
// the extended viewport or there is nothing more to load.
func (r *runner) settle() error {
	r.doc.Flush(settleFrames)
	if r.sentinel == nil {
		return nil
	}
	loaded := false
	for i := 0; i < maxLoadRounds; i++ {
		visible := r.markerInRange()
		if visible == r.markerVisible && !(visible && loaded) {
			return nil
		}
		r.markerVisible = visible
		loaded = false
		r.doc.Intersect(r.marker, visible)
		if r.requested > 0 {
			r.requested = 0
			if err := r.loadPage(); err != nil {
				return err
			}
			r.doc.Flush(settleFrames)
			loaded = true
		}
	}
	return nil
}

// loadPage grows the list by one page and re-arms the sentinel with the
// scenario's margin and the new has-more flag.
func (r *runner) loadPage() error {
	sc := r.s.Sentinel
	n := r.list.ItemCount() + sc.PageSize
	if sc.MaxItems > 0 && n > sc.MaxItems {
		n = sc.MaxItems
	}
	r.list.SetItemCount(n)
	r.loads++
	err := r.sentinel.Update(
		vlist.WithRootMargin(sc.RootMargin),
		vlist.WithHasMore(sc.MaxItems == 0 || n < sc.MaxItems),
	)
	if err != nil {
		return fmt.Errorf("load page %d: %w", r.loads, err)
	}
	return nil
}

// markerInRange reports whether the marker at the loading edge is within
// threshold of the viewport.
func (r *runner) markerInRange() bool {
	vp := r.list.Viewport()
	threshold := *r.s.Sentinel.Threshold
	if r.s.Sentinel.Direction == "up" {
		return vp.ScrollOffset <= threshold
	}
	return r.list.TotalHeight()-vp.End() <= threshold
}

func (r *runner) snapshot(label string) Snapshot {
	vp := r.list.Viewport()
	return Snapshot{
		Step:            label,
		ScrollOffset:    vp.ScrollOffset,
		ContainerHeight: vp.ContainerHeight,
		TotalHeight:     r.list.TotalHeight(),
		Range:           r.list.Range(),
		Rendered:        len(r.list.Items()),
		ItemCount:       r.list.ItemCount(),
		Loads:           r.loads,
	}
}
