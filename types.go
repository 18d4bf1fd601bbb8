package vlist

import "fmt"

// ScrollTarget selects which scroll source drives the viewport.
type ScrollTarget int

const (
	ScrollContainer ScrollTarget = iota // Internal scroll container (default)
	ScrollWindow                        // Host window scroll, offset by the container's document top
)

// String returns the configuration name of the target.
func (t ScrollTarget) String() string {
	switch t {
	case ScrollContainer:
		return "container"
	case ScrollWindow:
		return "window"
	default:
		return fmt.Sprintf("ScrollTarget(%d)", int(t))
	}
}

// ParseScrollTarget maps "container" or "window" to a ScrollTarget.
func ParseScrollTarget(s string) (ScrollTarget, error) {
	switch s {
	case "", "container":
		return ScrollContainer, nil
	case "window":
		return ScrollWindow, nil
	default:
		return ScrollContainer, fmt.Errorf("unknown scroll target %q", s)
	}
}

// Viewport is the visible slice of the scrollable region.
type Viewport struct {
	ScrollOffset    float64 // Pixels from the top of the scrollable region
	ContainerHeight float64 // Visible pixel extent
}

// End returns the bottom edge of the viewport.
func (v Viewport) End() float64 {
	return v.ScrollOffset + v.ContainerHeight
}

// Range is an inclusive index range. A range with End < Start is empty.
type Range struct {
	Start int
	End   int
}

// emptyRange is returned for empty sequences.
var emptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether idx lies inside the range.
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx <= r.End
}

// VirtualItem is the read-only projection of one materialized index.
type VirtualItem struct {
	Index int
	Start float64
	Size  float64
	End   float64
}

// ContainerStyle describes the scroll container box in container mode.
type ContainerStyle struct {
	Height   float64
	Overflow string
	Position string
}

// clampf clamps a float64 value to a range.
func clampf(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float64 values.
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// absf returns the absolute value of v.
func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
