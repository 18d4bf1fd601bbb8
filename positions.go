package vlist

// PositionTable is the prefix-sum table of item offsets.
// A table is never modified after BuildPositions returns it; a rebuild
// produces a new table, so pointer identity doubles as change detection.
type PositionTable struct {
	Starts []float64 // Starts[i] = sum of Sizes[0:i]
	Sizes  []float64 // Effective height of each item at build time
	Total  float64   // Sum of all sizes, 0 for an empty table
}

// BuildPositions computes start offsets and total extent for count items.
// The computation is O(count) and has no incremental path.
func BuildPositions(count int, height func(index int) float64) *PositionTable {
	if count <= 0 {
		return &PositionTable{}
	}

	t := &PositionTable{
		Starts: make([]float64, count),
		Sizes:  make([]float64, count),
	}
	var offset float64
	for i := 0; i < count; i++ {
		h := height(i)
		t.Starts[i] = offset
		t.Sizes[i] = h
		offset += h
	}
	t.Total = offset
	return t
}

// Len returns the number of items in the table.
func (t *PositionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Starts)
}

// Start returns the start offset of index.
func (t *PositionTable) Start(index int) float64 {
	return t.Starts[index]
}

// Size returns the height of index.
func (t *PositionTable) Size(index int) float64 {
	return t.Sizes[index]
}

// End returns the end offset of index.
func (t *PositionTable) End(index int) float64 {
	return t.Starts[index] + t.Sizes[index]
}
