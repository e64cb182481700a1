package tick

import (
	"math/big"
	"testing"
)

func TestNewMapRejectsInvalid(t *testing.T) {
	if _, err := NewMap(testTicks(), 0); err != ErrInvalidSpacing {
		t.Fatalf("expected ErrInvalidSpacing, got %v", err)
	}
	if _, err := NewMap([]Tick{New(0, 1, 1)}, 10); err != ErrZeroNet {
		t.Fatalf("expected ErrZeroNet, got %v", err)
	}
}

func TestMapGetTick(t *testing.T) {
	m, err := NewMap(testTicks(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 5 {
		t.Fatalf("len mismatch: %d", m.Len())
	}

	got, err := m.GetTick(110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LiquidityNet.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("tick mismatch: %+v", got)
	}

	if _, err := m.GetTick(111); err != ErrInvalidTick {
		t.Fatalf("expected ErrInvalidTick, got %v", err)
	}
}

// Both providers must answer every query identically; the swap engine picks
// whichever is behind the interface.
func TestListMapEquivalence(t *testing.T) {
	ticks := testTicks()
	list, err := NewList(ticks, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := NewMap(ticks, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranges := []struct{ from, to int }{
		{-887272, -887200},
		{-92200, -92000},
		{-300, 300},
		{2400, 2700},
		{22900, 23100},
	}

	for _, r := range ranges {
		for tickIndex := r.from; tickIndex <= r.to; tickIndex++ {
			for _, lte := range []bool{true, false} {
				listNext, listInit, err := list.NextInitializedTickWithinOneWord(tickIndex, lte, 10)
				if err != nil {
					t.Fatalf("list query %d: %v", tickIndex, err)
				}
				mapNext, mapInit, err := m.NextInitializedTickWithinOneWord(tickIndex, lte, 10)
				if err != nil {
					t.Fatalf("map query %d: %v", tickIndex, err)
				}
				if listNext != mapNext || listInit != mapInit {
					t.Fatalf("divergence at tick %d lte=%v: list (%d, %v) != map (%d, %v)",
						tickIndex, lte, listNext, listInit, mapNext, mapInit)
				}
			}
		}
	}
}

func TestListMapEquivalenceSpacingOne(t *testing.T) {
	ticks := []Tick{
		New(-256, 4, 4),
		New(-1, 3, 3),
		New(0, 2, 2),
		New(255, 1, 1),
		New(256, 10, -10),
	}
	list, err := NewList(ticks, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := NewMap(ticks, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for tickIndex := -600; tickIndex <= 600; tickIndex++ {
		for _, lte := range []bool{true, false} {
			listNext, listInit, err := list.NextInitializedTickWithinOneWord(tickIndex, lte, 1)
			if err != nil {
				t.Fatalf("list query %d: %v", tickIndex, err)
			}
			mapNext, mapInit, err := m.NextInitializedTickWithinOneWord(tickIndex, lte, 1)
			if err != nil {
				t.Fatalf("map query %d: %v", tickIndex, err)
			}
			if listNext != mapNext || listInit != mapInit {
				t.Fatalf("divergence at tick %d lte=%v: list (%d, %v) != map (%d, %v)",
					tickIndex, lte, listNext, listInit, mapNext, mapInit)
			}
		}
	}
}
