package vlist_test

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
)

func mustNew(t *testing.T, count int, opts ...vlist.Option) *vlist.Virtualizer {
	t.Helper()
	v, err := vlist.New(count, opts...)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(v.Close)
	return v
}

func starts(items []vlist.VirtualItem) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Start
	}
	return out
}

func TestVirtualizerAllItemsFit(t *testing.T) {
	v := mustNew(t, 5,
		vlist.WithFixedHeight(100),
		vlist.WithContainerHeight(500),
		vlist.WithOverscan(0),
	)

	if v.TotalHeight() != 500 {
		t.Errorf("TotalHeight() = %v, want 500", v.TotalHeight())
	}
	items := v.Items()
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
	want := []float64{0, 100, 200, 300, 400}
	for i, s := range starts(items) {
		if s != want[i] {
			t.Errorf("items[%d].Start = %v, want %v", i, s, want[i])
		}
	}
}

func TestVirtualizerEmptySequence(t *testing.T) {
	configs := map[string][]vlist.Option{
		"container": {vlist.WithFixedHeight(40), vlist.WithContainerHeight(300)},
		"window": {vlist.WithFixedHeight(40), vlist.WithScrollTarget(vlist.ScrollWindow),
			vlist.WithHost(memory.NewDocument(700).Host())},
		"measured": {vlist.WithHeightFunc(func(i int) float64 { return 10 }), vlist.WithContainerHeight(300),
			vlist.MeasureItemHeight(), vlist.WithItemSpacing(4)},
	}

	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			v := mustNew(t, 0, opts...)
			if v.TotalHeight() != 0 {
				t.Errorf("TotalHeight() = %v, want 0", v.TotalHeight())
			}
			if len(v.Items()) != 0 {
				t.Errorf("Items() = %v, want none", v.Items())
			}
			if !v.Range().Empty() {
				t.Errorf("Range() = %+v, want empty", v.Range())
			}
		})
	}
}

func TestVirtualizerConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		count int
		opts  []vlist.Option
		want  error
	}{
		{"container without height", 10, []vlist.Option{vlist.WithFixedHeight(20)}, vlist.ErrNoContainerHeight},
		{"no item height", 10, []vlist.Option{vlist.WithContainerHeight(200)}, vlist.ErrNoItemHeight},
		{"negative count", -1, []vlist.Option{vlist.WithFixedHeight(20), vlist.WithContainerHeight(200)}, vlist.ErrNegativeItemCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := vlist.New(tt.count, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if v != nil {
				t.Error("New() should not return a virtualizer on error")
			}
		})
	}
}

func TestVirtualizerContainerRefSatisfiesHeight(t *testing.T) {
	doc := memory.NewDocument(800)
	container := doc.NewElement(320)

	v := mustNew(t, 100,
		vlist.WithFixedHeight(20),
		vlist.WithContainerRef(container),
		vlist.WithHost(doc.Host()),
	)

	if got := v.Viewport().ContainerHeight; got != 320 {
		t.Errorf("ContainerHeight = %v, want 320", got)
	}

	container.SetHeight(400)
	if got := v.Viewport().ContainerHeight; got != 400 {
		t.Errorf("ContainerHeight after resize = %v, want 400", got)
	}
	if r := v.Range(); r.End != 20+3 {
		t.Errorf("Range().End = %d, want 23", r.End)
	}
}

func TestVirtualizerWindowModeNeedsNoHeight(t *testing.T) {
	v, err := vlist.New(10, vlist.WithFixedHeight(20), vlist.WithScrollTarget(vlist.ScrollWindow))
	if err != nil {
		t.Fatalf("window mode should not need a container height: %v", err)
	}
	defer v.Close()

	if v.ScrollHandler() != nil {
		t.Error("ScrollHandler() should be nil in window mode")
	}
	if _, ok := v.ContainerStyle(); ok {
		t.Error("ContainerStyle() should not apply in window mode")
	}
}

func TestVirtualizerContainerStyle(t *testing.T) {
	v := mustNew(t, 10, vlist.WithFixedHeight(20), vlist.WithContainerHeight(250))

	style, ok := v.ContainerStyle()
	if !ok {
		t.Fatal("ContainerStyle() should apply in container mode")
	}
	want := vlist.ContainerStyle{Height: 250, Overflow: "auto", Position: "relative"}
	if style != want {
		t.Errorf("ContainerStyle() = %+v, want %+v", style, want)
	}
	if v.ScrollHandler() == nil {
		t.Error("ScrollHandler() should be set in container mode")
	}
}

func TestVirtualizerItemCountChanges(t *testing.T) {
	v := mustNew(t, 100,
		vlist.WithFixedHeight(10),
		vlist.WithContainerHeight(100),
		vlist.WithScrollOffset(900),
	)
	if r := v.Range(); r.Start != 87 || r.End != 99 {
		t.Fatalf("Range() = %+v, want 87..99", r)
	}

	// Append a page.
	v.SetItemCount(150)
	if v.TotalHeight() != 1500 {
		t.Errorf("TotalHeight() = %v, want 1500", v.TotalHeight())
	}
	if r := v.Range(); r.Start != 87 || r.End != 103 {
		t.Errorf("Range() after grow = %+v, want 87..103", r)
	}

	// Shrink below the scroll offset.
	v.SetItemCount(20)
	if v.TotalHeight() != 200 {
		t.Errorf("TotalHeight() = %v, want 200", v.TotalHeight())
	}
	if r := v.Range(); r.Start != 16 || r.End != 19 {
		t.Errorf("Range() after shrink = %+v, want 16..19", r)
	}

	v.SetItemCount(0)
	if len(v.Items()) != 0 || v.TotalHeight() != 0 {
		t.Errorf("empty list should have no items, got %v (total %v)", v.Items(), v.TotalHeight())
	}
}

func TestVirtualizerSetItemHeight(t *testing.T) {
	v := mustNew(t, 10, vlist.WithFixedHeight(10), vlist.WithContainerHeight(100))
	before := v.Positions()

	v.SetItemHeight(vlist.HeightBy(func(i int) float64 { return 30 }))
	if v.Positions() == before {
		t.Error("SetItemHeight should rebuild positions")
	}
	if v.TotalHeight() != 300 {
		t.Errorf("TotalHeight() = %v, want 300", v.TotalHeight())
	}

	v.SetItemHeight(vlist.HeightSource{})
	if v.TotalHeight() != 300 {
		t.Errorf("zero source should be ignored, TotalHeight() = %v", v.TotalHeight())
	}
}

func TestVirtualizerSpacingOnlyAppliesToMeasured(t *testing.T) {
	v := mustNew(t, 4,
		vlist.WithFixedHeight(50),
		vlist.WithContainerHeight(500),
		vlist.MeasureItemHeight(),
	)
	doc := memory.NewDocument(500)

	v.SetItemSpacing(8)
	if v.TotalHeight() != 200 {
		t.Errorf("spacing must not apply to fallback heights, TotalHeight() = %v", v.TotalHeight())
	}

	v.MeasureRef(1)(doc.NewElement(60))
	if v.TotalHeight() != 50+68+50+50 {
		t.Errorf("TotalHeight() = %v, want %v", v.TotalHeight(), 50+68+50+50)
	}
}

func TestVirtualizerItemsAreFreshSlices(t *testing.T) {
	v := mustNew(t, 100, vlist.WithFixedHeight(10), vlist.WithContainerHeight(50), vlist.WithOverscan(0))

	old := v.Items()
	first := old[0]
	v.ScrollHandler()(400)

	if old[0] != first {
		t.Errorf("previous items were modified in place: %+v -> %+v", first, old[0])
	}
	if v.Items()[0].Index != 40 {
		t.Errorf("Items()[0].Index = %d, want 40", v.Items()[0].Index)
	}
}

func TestVirtualizerSubscribe(t *testing.T) {
	v := mustNew(t, 100, vlist.WithFixedHeight(10), vlist.WithContainerHeight(50))

	calls := 0
	cancel := v.Subscribe(func() { calls++ })

	v.ScrollHandler()(100)
	v.SetItemCount(120)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	cancel()
	v.ScrollHandler()(200)
	if calls != 2 {
		t.Errorf("calls after cancel = %d, want 2", calls)
	}
}

func TestVirtualizerScrollOffsetOverride(t *testing.T) {
	doc := memory.NewDocument(600)
	v := mustNew(t, 100,
		vlist.WithFixedHeight(10),
		vlist.WithContainerHeight(100),
		vlist.WithHost(doc.Host()),
	)

	v.ScrollHandler()(300)
	v.SetScrollOffset(550)
	if got := v.Viewport().ScrollOffset; got != 550 {
		t.Errorf("ScrollOffset = %v, want 550", got)
	}

	// The pending scroll was dropped by the override.
	doc.Tick()
	if got := v.Viewport().ScrollOffset; got != 550 {
		t.Errorf("ScrollOffset after tick = %v, want 550", got)
	}

	if got := v.ScrollOffsetFor(2); got != 20 {
		t.Errorf("ScrollOffsetFor(2) = %v, want 20", got)
	}
}

func TestVirtualizerClose(t *testing.T) {
	doc := memory.NewDocument(600)
	v, err := vlist.New(100,
		vlist.WithFixedHeight(10),
		vlist.WithScrollTarget(vlist.ScrollWindow),
		vlist.MeasureItemHeight(),
		vlist.WithHost(doc.Host()),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	v.MeasureRef(0)(doc.NewElement(30))
	if doc.Listeners() != 2 {
		t.Fatalf("Listeners() = %d, want 2", doc.Listeners())
	}

	v.Close()
	v.Close()

	if doc.Listeners() != 0 {
		t.Errorf("Listeners() after Close = %d, want 0", doc.Listeners())
	}
	if doc.ResizeObservers() != 0 {
		t.Errorf("ResizeObservers() after Close = %d, want 0", doc.ResizeObservers())
	}
	if doc.Frames().Pending() != 0 {
		t.Errorf("pending frames after Close = %d, want 0", doc.Frames().Pending())
	}

	before := v.Viewport()
	doc.ScrollTo(900)
	doc.Tick()
	if v.Viewport() != before {
		t.Errorf("closed virtualizer tracked a scroll: %+v", v.Viewport())
	}
}
