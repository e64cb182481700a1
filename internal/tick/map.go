package tick

// Map indexes ticks by exact index in a hash map and pairs it with a BitMap
// for word-scoped direction queries. Both structures are built from one
// snapshot and stay mutually consistent by construction; point lookups are
// O(1) versus the list's O(log n), in exchange for the upfront build.
type Map struct {
	bitmap      BitMap
	ticks       map[int]Tick
	tickSpacing int
}

// NewMap validates a snapshot and builds both the hash index and the bitmap
// from it.
func NewMap(ticks []Tick, tickSpacing int) (*Map, error) {
	sorted := sortedCopy(ticks)
	if err := ValidateList(sorted, tickSpacing); err != nil {
		return nil, err
	}

	byIndex := make(map[int]Tick, len(sorted))
	for _, t := range sorted {
		byIndex[t.Index] = t
	}

	return &Map{
		bitmap:      NewBitMap(sorted, tickSpacing),
		ticks:       byIndex,
		tickSpacing: tickSpacing,
	}, nil
}

// Len returns the number of initialized ticks.
func (m *Map) Len() int {
	return len(m.ticks)
}

// TickSpacing returns the spacing the map was built with.
func (m *Map) TickSpacing() int {
	return m.tickSpacing
}

// GetTick returns the tick at the exact index, or ErrInvalidTick.
func (m *Map) GetTick(index int) (Tick, error) {
	t, ok := m.ticks[index]
	if !ok {
		return Tick{}, ErrInvalidTick
	}
	return t, nil
}

// NextInitializedTickWithinOneWord delegates to the bitmap.
func (m *Map) NextInitializedTickWithinOneWord(tick int, lte bool, tickSpacing int) (int, bool, error) {
	return m.bitmap.NextInitializedTickWithinOneWord(tick, lte, tickSpacing)
}
