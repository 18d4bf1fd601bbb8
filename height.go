package vlist

// HeightFunc returns the fallback height for an index. It must be pure.
type HeightFunc func(index int) float64

// HeightSource is the fallback height of every item: either one fixed value
// or a function of index.
type HeightSource struct {
	fixed float64
	fn    HeightFunc
}

// FixedHeight returns a source where every item is h pixels tall.
func FixedHeight(h float64) HeightSource {
	return HeightSource{fixed: h}
}

// HeightBy returns a source that asks fn for each item's height.
func HeightBy(fn HeightFunc) HeightSource {
	return HeightSource{fn: fn}
}

// IsZero reports whether the source was never set.
func (s HeightSource) IsZero() bool {
	return s.fn == nil && s.fixed == 0
}

// At returns the fallback height of index.
func (s HeightSource) At(index int) float64 {
	if s.fn != nil {
		return s.fn(index)
	}
	return s.fixed
}

// measureThreshold is the smallest height delta treated as a real change.
const measureThreshold = 1.0

// heightOracle resolves an item's effective height from measured and
// fallback sources. The measured map is written only by the measurement feed.
type heightOracle struct {
	source   HeightSource
	spacing  float64
	measure  bool
	measured map[int]float64
}

func newHeightOracle(source HeightSource, spacing float64, measure bool) *heightOracle {
	return &heightOracle{
		source:   source,
		spacing:  spacing,
		measure:  measure,
		measured: make(map[int]float64),
	}
}

// ItemHeight returns the effective height of index.
// Precondition: 0 <= index < itemCount.
// Spacing is only added to measured heights.
func (o *heightOracle) ItemHeight(index int) float64 {
	if o.measure {
		if h, ok := o.measured[index]; ok && h > 0 {
			return h + o.spacing
		}
	}
	return o.source.At(index)
}

// Measured returns the recorded height of index, if any.
func (o *heightOracle) Measured(index int) (float64, bool) {
	h, ok := o.measured[index]
	return h, ok
}

// record stores a measured height and reports whether it changed.
// Non-positive heights and deltas under one pixel are discarded.
func (o *heightOracle) record(index int, h float64) bool {
	if h <= 0 {
		return false
	}
	if old, ok := o.measured[index]; ok && absf(h-old) < measureThreshold {
		return false
	}
	o.measured[index] = h
	return true
}
