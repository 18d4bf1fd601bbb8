package vlist_test

import (
	"testing"

	"github.com/go-theft-auto/vlist"
)

func TestFrameQueueTick(t *testing.T) {
	q := vlist.NewFrameQueue()
	var order []int

	q.RequestFrame(func() { order = append(order, 1) })
	id := q.RequestFrame(func() { order = append(order, 2) })
	q.RequestFrame(func() { order = append(order, 3) })
	q.CancelFrame(id)
	q.CancelFrame(999)

	if q.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", q.Pending())
	}
	if ran := q.Tick(); ran != 2 {
		t.Errorf("Tick() ran %d, want 2", ran)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", order)
	}
	if q.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", q.FrameCount())
	}
}

func TestFrameQueueNestedRequestWaits(t *testing.T) {
	q := vlist.NewFrameQueue()
	depth := 0

	q.RequestFrame(func() {
		depth = 1
		q.RequestFrame(func() { depth = 2 })
	})

	q.Tick()
	if depth != 1 {
		t.Errorf("after first tick depth = %d, want 1", depth)
	}
	q.Tick()
	if depth != 2 {
		t.Errorf("after second tick depth = %d, want 2", depth)
	}
	if q.Tick() != 0 {
		t.Error("queue should be drained")
	}
}

func TestFrameQueueCancelDuringTick(t *testing.T) {
	q := vlist.NewFrameQueue()
	ran := map[string]bool{}

	var second vlist.FrameID
	q.RequestFrame(func() {
		ran["first"] = true
		q.CancelFrame(second)
	})
	second = q.RequestFrame(func() { ran["second"] = true })

	if n := q.Tick(); n != 1 {
		t.Errorf("Tick() ran %d, want 1", n)
	}
	if !ran["first"] || ran["second"] {
		t.Errorf("ran = %v, want only first", ran)
	}
	if q.Tick() != 0 {
		t.Error("cancelled callback should not carry over")
	}
}
