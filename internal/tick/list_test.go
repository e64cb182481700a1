package tick

import (
	"math/big"
	"testing"
)

func TestNewListSortsInput(t *testing.T) {
	shuffled := []Tick{
		New(110, 1, -1),
		New(-887270, 5, 5),
		New(22990, 9, -9),
		New(100, 3, 3),
		New(-92110, 2, 2),
	}
	list, err := NewList(shuffled, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Len() != 5 {
		t.Fatalf("len mismatch: %d", list.Len())
	}

	next, initialized, err := list.NextInitializedTickWithinOneWord(-887272, false, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !initialized || next != -887270 {
		t.Fatalf("lowest tick mismatch: (%d, %v)", next, initialized)
	}
}

func TestNewListRejectsInvalid(t *testing.T) {
	if _, err := NewList(testTicks(), 0); err != ErrInvalidSpacing {
		t.Fatalf("expected ErrInvalidSpacing, got %v", err)
	}
	if _, err := NewList([]Tick{New(0, 1, 1)}, 10); err != ErrZeroNet {
		t.Fatalf("expected ErrZeroNet, got %v", err)
	}
}

func TestListGetTick(t *testing.T) {
	list, err := NewList(testTicks(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := list.GetTick(-92110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Index != -92110 || got.LiquidityNet.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("tick mismatch: %+v", got)
	}

	if _, err := list.GetTick(-92111); err != ErrInvalidTick {
		t.Fatalf("expected ErrInvalidTick, got %v", err)
	}
}

func TestListNextInitializedTickLTE(t *testing.T) {
	list, err := NewList(testTicks(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		tick        int
		next        int
		initialized bool
	}{
		{100, 100, true},
		{101, 100, true},
		{110, 110, true},
		{99, 0, false},
		// Nothing at or below inside the word: falls to the word floor.
		{-92120, -92160, false},
		{-92110, -92110, true},
		{22990, 22990, true},
	}
	for _, c := range cases {
		next, initialized, err := list.NextInitializedTickWithinOneWord(c.tick, true, 10)
		if err != nil {
			t.Fatalf("tick %d: %v", c.tick, err)
		}
		if next != c.next || initialized != c.initialized {
			t.Fatalf("lte(%d) = (%d, %v), want (%d, %v)", c.tick, next, initialized, c.next, c.initialized)
		}
	}
}

func TestListNextInitializedTickGT(t *testing.T) {
	list, err := NewList(testTicks(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		tick        int
		next        int
		initialized bool
	}{
		{99, 100, true},
		{100, 110, true},
		// Next initialized tick is beyond the word ceiling.
		{110, 2550, false},
		{-92120, -92110, true},
		{22980, 22990, true},
		{22990, 23030, false},
	}
	for _, c := range cases {
		next, initialized, err := list.NextInitializedTickWithinOneWord(c.tick, false, 10)
		if err != nil {
			t.Fatalf("tick %d: %v", c.tick, err)
		}
		if next != c.next || initialized != c.initialized {
			t.Fatalf("gt(%d) = (%d, %v), want (%d, %v)", c.tick, next, initialized, c.next, c.initialized)
		}
	}
}

func TestListMutationsUnchecked(t *testing.T) {
	list, err := NewListUnchecked([]Tick{New(0, 10, 10), New(100, 10, -10)}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Insert keeps the list sorted.
	if err := list.Push(New(50, 5, 5)); err != nil {
		t.Fatalf("push: %v", err)
	}
	next, initialized, err := list.NextInitializedTickWithinOneWord(0, false, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !initialized || next != 50 {
		t.Fatalf("inserted tick not found: (%d, %v)", next, initialized)
	}

	// Push on an existing index replaces it.
	if err := list.Push(New(50, 7, 7)); err != nil {
		t.Fatalf("push replace: %v", err)
	}
	got, err := list.GetTick(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LiquidityNet.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("replace did not stick: %+v", got)
	}
	if list.Len() != 3 {
		t.Fatalf("replace changed length: %d", list.Len())
	}

	// Updating to a neutral net deletes the boundary.
	if err := list.Update(New(50, 0, 0)); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if _, err := list.GetTick(50); err != ErrInvalidTick {
		t.Fatalf("expected ErrInvalidTick after neutral update, got %v", err)
	}

	// Pushing a neutral net onto a missing index is a no-op.
	if err := list.Push(New(60, 0, 0)); err != nil {
		t.Fatalf("neutral push: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("neutral push changed length: %d", list.Len())
	}

	if err := list.Update(New(999990, 1, 1)); err != ErrInvalidTick {
		t.Fatalf("expected ErrInvalidTick, got %v", err)
	}
	if _, err := list.Remove(999990); err != ErrInvalidTick {
		t.Fatalf("expected ErrInvalidTick, got %v", err)
	}

	removed, err := list.Remove(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.Index != 0 || removed.LiquidityNet.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("removed tick mismatch: %+v", removed)
	}
	if list.Len() != 1 {
		t.Fatalf("remove did not shrink the list: %d", list.Len())
	}
}

func TestListMutationsValidatedRollback(t *testing.T) {
	list, err := NewList([]Tick{New(0, 10, 10), New(100, 10, -10)}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A push that breaks the zero-sum invariant must fail and leave the
	// list untouched.
	if err := list.Push(New(50, 5, 5)); err != ErrZeroNet {
		t.Fatalf("expected ErrZeroNet, got %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("failed push mutated the list: %d", list.Len())
	}
	if _, err := list.GetTick(50); err != ErrInvalidTick {
		t.Fatalf("failed push left the tick behind")
	}

	if err := list.Update(New(0, 10, 3)); err != ErrZeroNet {
		t.Fatalf("expected ErrZeroNet, got %v", err)
	}
	got, err := list.GetTick(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LiquidityNet.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("failed update mutated the tick: %+v", got)
	}

	if _, err := list.Remove(0); err != ErrZeroNet {
		t.Fatalf("expected ErrZeroNet, got %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("failed remove mutated the list: %d", list.Len())
	}

	// A replacement that preserves the invariant commits.
	if err := list.Push(New(0, 20, 10)); err != nil {
		t.Fatalf("push replace: %v", err)
	}
	got, err = list.GetTick(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LiquidityGross.Cmp(big.NewInt(20)) != 0 {
		t.Fatalf("replace did not stick: %+v", got)
	}
}
