package vlist_test

import (
	"testing"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
)

// setupMeasureTest returns a measured container-mode list on an in-memory
// document.
func setupMeasureTest(t *testing.T, count int, opts ...vlist.Option) (*vlist.Virtualizer, *memory.Document) {
	t.Helper()
	doc := memory.NewDocument(800)
	base := []vlist.Option{
		vlist.WithFixedHeight(100),
		vlist.WithContainerHeight(1000),
		vlist.MeasureItemHeight(),
		vlist.WithHost(doc.Host()),
	}
	return mustNew(t, count, append(base, opts...)...), doc
}

func TestMeasuredHeightsWithSpacing(t *testing.T) {
	v, doc := setupMeasureTest(t, 3, vlist.WithItemSpacing(10))

	for i, h := range []float64{150, 200, 180} {
		v.MeasureRef(i)(doc.NewElement(h))
	}

	table := v.Positions()
	want := []float64{0, 160, 370}
	for i, w := range want {
		if table.Start(i) != w {
			t.Errorf("Starts[%d] = %v, want %v", i, table.Start(i), w)
		}
	}
	if v.TotalHeight() != 560 {
		t.Errorf("TotalHeight() = %v, want 560", v.TotalHeight())
	}
}

func TestMeasuredHeightTakesPrecedence(t *testing.T) {
	for _, fallback := range []float64{1, 100, 5000} {
		v, doc := setupMeasureTest(t, 5, vlist.WithFixedHeight(fallback), vlist.WithItemSpacing(3))
		v.MeasureRef(2)(doc.NewElement(42))

		if got := v.Positions().Size(2); got != 45 {
			t.Errorf("fallback %v: Size(2) = %v, want 45", fallback, got)
		}
		if got := v.Positions().Size(1); got != fallback {
			t.Errorf("fallback %v: unmeasured Size(1) = %v, want fallback", fallback, got)
		}
	}
}

func TestMeasurementDisabledIgnoresRefs(t *testing.T) {
	doc := memory.NewDocument(800)
	v := mustNew(t, 3, vlist.WithFixedHeight(100), vlist.WithContainerHeight(300), vlist.WithHost(doc.Host()))

	v.MeasureRef(0)(doc.NewElement(250))
	if _, ok := v.MeasuredHeight(0); ok {
		t.Error("measurement should be disabled")
	}
	if v.TotalHeight() != 300 {
		t.Errorf("TotalHeight() = %v, want 300", v.TotalHeight())
	}
}

func TestMeasurementDedupKeepsPositions(t *testing.T) {
	v, doc := setupMeasureTest(t, 10)
	el := doc.NewElement(120)
	ref := v.MeasureRef(4)

	ref(el)
	table := v.Positions()

	// Sub-pixel change, same element re-attached, deferred re-measure.
	el.SetHeight(120.6)
	ref(el)
	doc.Flush(5)

	if v.Positions() != table {
		t.Error("unchanged height should not rebuild positions")
	}
	if h, _ := v.MeasuredHeight(4); h != 120 {
		t.Errorf("MeasuredHeight(4) = %v, want 120", h)
	}

	el.SetHeight(125)
	if v.Positions() == table {
		t.Error("a 5px change should rebuild positions")
	}
}

func TestMeasurementDiscardsNoise(t *testing.T) {
	v, doc := setupMeasureTest(t, 3)
	el := doc.NewElement(0)
	v.MeasureRef(0)(el)

	if _, ok := v.MeasuredHeight(0); ok {
		t.Error("zero height should not be recorded")
	}

	el.SetHeight(-20)
	if _, ok := v.MeasuredHeight(0); ok {
		t.Error("negative height should not be recorded")
	}
	if v.Positions().Size(0) != 100 {
		t.Errorf("Size(0) = %v, want fallback 100", v.Positions().Size(0))
	}

	el.SetHeight(80)
	if h, ok := v.MeasuredHeight(0); !ok || h != 80 {
		t.Errorf("MeasuredHeight(0) = %v, %v; want 80", h, ok)
	}
}

func TestMeasurementDoubleDeferred(t *testing.T) {
	v, doc := setupMeasureTest(t, 3)
	el := doc.NewElement(100)
	v.MeasureRef(1)(el)

	// Layout settles without a resize notification.
	el.SetHeightSilently(140)

	doc.Tick()
	if h, _ := v.MeasuredHeight(1); h != 100 {
		t.Errorf("after one frame MeasuredHeight(1) = %v, want 100", h)
	}

	doc.Tick()
	if h, _ := v.MeasuredHeight(1); h != 140 {
		t.Errorf("after two frames MeasuredHeight(1) = %v, want 140", h)
	}
	if v.TotalHeight() != 340 {
		t.Errorf("TotalHeight() = %v, want 340", v.TotalHeight())
	}
}

func TestMeasurementDetachKeepsHeight(t *testing.T) {
	v, doc := setupMeasureTest(t, 5)
	el := doc.NewElement(220)
	ref := v.MeasureRef(3)

	ref(el)
	ref(nil)

	if doc.Observed(el) {
		t.Error("detached element should not be observed")
	}
	if got := v.Positions().Size(3); got != 220 {
		t.Errorf("Size(3) after detach = %v, want 220", got)
	}

	// Changes after detach are not seen.
	el.SetHeight(400)
	if got := v.Positions().Size(3); got != 220 {
		t.Errorf("Size(3) after detached resize = %v, want 220", got)
	}
}

func TestMeasurementDetachWithNilPointer(t *testing.T) {
	v, doc := setupMeasureTest(t, 5)
	el := doc.NewElement(220)
	ref := v.MeasureRef(1)

	ref(el)
	ref((*memory.Element)(nil))

	if doc.Observed(el) {
		t.Error("element detached by a nil pointer should not be observed")
	}
	if got := v.Positions().Size(1); got != 220 {
		t.Errorf("Size(1) after detach = %v, want 220", got)
	}
}

func TestMeasurementResizeObserver(t *testing.T) {
	v, doc := setupMeasureTest(t, 5)
	els := make([]*memory.Element, 5)
	for i := range els {
		els[i] = doc.NewElement(100)
		v.MeasureRef(i)(els[i])
	}

	rebuilds := 0
	v.Subscribe(func() { rebuilds++ })

	// One batch of notifications rebuilds once.
	doc.Resize(map[*memory.Element]float64{
		els[0]: 130,
		els[2]: 90,
		els[4]: 100.2,
	})

	if rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", rebuilds)
	}
	if v.TotalHeight() != 130+100+90+100+100 {
		t.Errorf("TotalHeight() = %v, want 520", v.TotalHeight())
	}
}

func TestMeasurementElementReplacedAndMoved(t *testing.T) {
	v, doc := setupMeasureTest(t, 5)
	a := doc.NewElement(150)
	b := doc.NewElement(175)

	v.MeasureRef(0)(a)
	v.MeasureRef(0)(b)
	if doc.Observed(a) {
		t.Error("replaced element should no longer be observed")
	}
	if h, _ := v.MeasuredHeight(0); h != 175 {
		t.Errorf("MeasuredHeight(0) = %v, want 175", h)
	}

	// b is reused for index 2.
	v.MeasureRef(2)(b)
	b.SetHeight(300)
	if h, _ := v.MeasuredHeight(0); h != 175 {
		t.Errorf("index 0 should keep its height, got %v", h)
	}
	if h, _ := v.MeasuredHeight(2); h != 300 {
		t.Errorf("MeasuredHeight(2) = %v, want 300", h)
	}
}
