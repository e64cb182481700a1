// Package tick models initialized liquidity boundaries and the indexes used
// to look them up during a swap: a sorted list and a hash map backed by a
// two-level bitmap. Both indexes answer the same two questions, so the swap
// engine is indifferent to which one backs a pool.
package tick

import (
	"errors"
	"math/big"
)

var (
	// ErrInvalidTick is returned when a tick is absent from an index or its
	// index is out of the global bounds.
	ErrInvalidTick = errors.New("tick not found or out of bounds")
	// ErrZeroNet is returned when the liquidity net over a tick set does not
	// sum to zero.
	ErrZeroNet = errors.New("tick list liquidity net does not sum to zero")
	// ErrInvalidSpacing is returned for a non-positive tick spacing or a tick
	// index not aligned to it.
	ErrInvalidSpacing = errors.New("invalid tick spacing or unaligned tick")
	// ErrUnsorted is returned when a tick set is not strictly increasing.
	ErrUnsorted = errors.New("tick list is not sorted")
	// ErrNoTickData is returned by the no-data provider.
	ErrNoTickData = errors.New("no tick data available")
)

// Tick is a single liquidity boundary.
type Tick struct {
	Index          int
	LiquidityGross *big.Int
	LiquidityNet   *big.Int
}

// New builds a tick from int64 liquidity values.
func New(index int, liquidityGross, liquidityNet int64) Tick {
	return Tick{
		Index:          index,
		LiquidityGross: big.NewInt(liquidityGross),
		LiquidityNet:   big.NewInt(liquidityNet),
	}
}

// Provider is the lookup capability a pool needs from a tick index.
type Provider interface {
	// GetTick returns the tick at the exact index.
	GetTick(index int) (Tick, error)

	// NextInitializedTickWithinOneWord returns the next initialized tick in
	// the given direction (lte: at or below, otherwise strictly above),
	// restricted to the 256-position bitmap word containing the compressed
	// tick. When no initialized tick exists in that word, the word's extreme
	// boundary tick is returned with initialized == false. Callers loop
	// across words.
	NextInitializedTickWithinOneWord(tick int, lte bool, tickSpacing int) (next int, initialized bool, err error)
}

// NoData is a Provider for pools whose swaps never cross an initialized
// tick; every lookup fails with ErrNoTickData.
type NoData struct{}

func (NoData) GetTick(int) (Tick, error) {
	return Tick{}, ErrNoTickData
}

func (NoData) NextInitializedTickWithinOneWord(int, bool, int) (int, bool, error) {
	return 0, false, ErrNoTickData
}

// ValidateList checks a tick set for the structural invariants every index
// relies on: positive spacing, every index aligned to it, strictly
// increasing order, and liquidity net summing to zero.
func ValidateList(ticks []Tick, tickSpacing int) error {
	if tickSpacing <= 0 {
		return ErrInvalidSpacing
	}

	net := new(big.Int)
	for i, t := range ticks {
		if t.Index%tickSpacing != 0 {
			return ErrInvalidSpacing
		}
		if i > 0 && ticks[i-1].Index >= t.Index {
			return ErrUnsorted
		}
		net.Add(net, t.LiquidityNet)
	}
	if net.Sign() != 0 {
		return ErrZeroNet
	}
	return nil
}

// compress maps a tick index onto its bitmap position, rounding toward
// negative infinity.
func compress(tick, tickSpacing int) int {
	compressed := tick / tickSpacing
	if tick < 0 && tick%tickSpacing != 0 {
		compressed--
	}
	return compressed
}

// position splits a compressed tick into its word and bit coordinates.
func position(compressed int) (wordPos int, bitPos uint) {
	return compressed >> 8, uint(compressed & 255)
}
