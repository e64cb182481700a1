package tick

import "sort"

// List is a strictly increasing sequence of initialized ticks. Lookups are
// binary searches; word-boundary semantics match BitMap so the two indexes
// are interchangeable behind Provider.
type List struct {
	ticks       []Tick
	tickSpacing int
	validated   bool
}

// NewList takes ownership of a snapshot, sorts it, and validates the
// structural invariants. Mutations on a validated list revalidate and commit
// nothing on failure.
func NewList(ticks []Tick, tickSpacing int) (*List, error) {
	sorted := sortedCopy(ticks)
	if err := ValidateList(sorted, tickSpacing); err != nil {
		return nil, err
	}
	return &List{ticks: sorted, tickSpacing: tickSpacing, validated: true}, nil
}

// NewListUnchecked builds a list without the validation pass, for snapshots
// covering only part of a pool's tick range where liquidity net cannot sum
// to zero. Mutations on such a list skip revalidation as well.
func NewListUnchecked(ticks []Tick, tickSpacing int) (*List, error) {
	if tickSpacing <= 0 {
		return nil, ErrInvalidSpacing
	}
	return &List{ticks: sortedCopy(ticks), tickSpacing: tickSpacing}, nil
}

func sortedCopy(ticks []Tick) []Tick {
	sorted := make([]Tick, len(ticks))
	copy(sorted, ticks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	return sorted
}

// Len returns the number of initialized ticks.
func (l *List) Len() int {
	return len(l.ticks)
}

// TickSpacing returns the spacing the list was built with.
func (l *List) TickSpacing() int {
	return l.tickSpacing
}

// GetTick returns the tick at the exact index, or ErrInvalidTick.
func (l *List) GetTick(index int) (Tick, error) {
	i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index >= index })
	if i < len(l.ticks) && l.ticks[i].Index == index {
		return l.ticks[i], nil
	}
	return Tick{}, ErrInvalidTick
}

// NextInitializedTickWithinOneWord scans only the entries whose compressed
// index falls in the same 256-wide word as the query, returning the word
// boundary with initialized == false when the word holds nothing in the
// requested direction. Boundary values follow the bitmap convention.
func (l *List) NextInitializedTickWithinOneWord(tick int, lte bool, tickSpacing int) (int, bool, error) {
	compressed := compress(tick, tickSpacing)

	if lte {
		_, bitPos := position(compressed)
		minimum := (compressed - int(bitPos)) * tickSpacing

		// Largest initialized tick at or below the query.
		i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index > tick })
		if i == 0 || l.ticks[i-1].Index < minimum {
			return minimum, false, nil
		}
		return l.ticks[i-1].Index, true, nil
	}

	_, bitPos := position(compressed + 1)
	maximum := (compressed + 1 + int(255-bitPos)) * tickSpacing

	// Smallest initialized tick strictly above the query.
	i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index > tick })
	if i == len(l.ticks) || l.ticks[i].Index > maximum {
		return maximum, false, nil
	}
	return l.ticks[i].Index, true, nil
}

// Update replaces the tick with the same index. An update to a neutral
// liquidity net removes the entry instead, since a tick without net effect
// is no longer a boundary.
func (l *List) Update(t Tick) error {
	i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index >= t.Index })
	if i == len(l.ticks) || l.ticks[i].Index != t.Index {
		return ErrInvalidTick
	}

	if t.LiquidityNet.Sign() == 0 {
		_, err := l.Remove(t.Index)
		return err
	}

	next := make([]Tick, len(l.ticks))
	copy(next, l.ticks)
	next[i] = t
	return l.commit(next)
}

// Push inserts a tick preserving sort order, replacing any entry with the
// same index. A neutral liquidity net removes an existing entry and is
// otherwise a no-op.
func (l *List) Push(t Tick) error {
	if t.LiquidityNet.Sign() == 0 {
		if _, err := l.GetTick(t.Index); err == nil {
			_, err = l.Remove(t.Index)
			return err
		}
		return nil
	}

	i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index >= t.Index })

	var next []Tick
	if i < len(l.ticks) && l.ticks[i].Index == t.Index {
		next = make([]Tick, len(l.ticks))
		copy(next, l.ticks)
		next[i] = t
	} else {
		next = make([]Tick, 0, len(l.ticks)+1)
		next = append(next, l.ticks[:i]...)
		next = append(next, t)
		next = append(next, l.ticks[i:]...)
	}
	return l.commit(next)
}

// Remove deletes and returns the tick at the index, or ErrInvalidTick.
func (l *List) Remove(index int) (Tick, error) {
	i := sort.Search(len(l.ticks), func(i int) bool { return l.ticks[i].Index >= index })
	if i == len(l.ticks) || l.ticks[i].Index != index {
		return Tick{}, ErrInvalidTick
	}

	removed := l.ticks[i]
	next := make([]Tick, 0, len(l.ticks)-1)
	next = append(next, l.ticks[:i]...)
	next = append(next, l.ticks[i+1:]...)
	if err := l.commit(next); err != nil {
		return Tick{}, err
	}
	return removed, nil
}

func (l *List) commit(next []Tick) error {
	if l.validated {
		if err := ValidateList(next, l.tickSpacing); err != nil {
			return err
		}
	}
	l.ticks = next
	return nil
}
