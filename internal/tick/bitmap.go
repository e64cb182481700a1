package tick

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// BitMap is a sparse two-level index over initialized tick positions: a map
// from word index to a 256-bit word, one bit per compressed tick. A set bit
// means the corresponding tick is initialized in the companion tick store.
type BitMap struct {
	words map[int]*uint256.Int
}

// NewBitMap builds a bitmap from a tick snapshot. Alignment is not checked
// here; composite indexes validate the snapshot before building.
func NewBitMap(ticks []Tick, tickSpacing int) BitMap {
	bm := BitMap{words: make(map[int]*uint256.Int)}
	for _, t := range ticks {
		bm.flip(compress(t.Index, tickSpacing))
	}
	return bm
}

func (bm BitMap) flip(compressed int) {
	wordPos, bitPos := position(compressed)
	word, ok := bm.words[wordPos]
	if !ok {
		word = new(uint256.Int)
		bm.words[wordPos] = word
	}
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), bitPos)
	word.Xor(word, mask)
}

func (bm BitMap) word(wordPos int) *uint256.Int {
	if w, ok := bm.words[wordPos]; ok {
		return w
	}
	return new(uint256.Int)
}

// NextInitializedTickWithinOneWord is the bitmap rendition of the provider
// query, mirroring TickBitmap.sol: mask the word on the query side of the
// bit position and pick the extreme set bit, or fall off at the word
// boundary with initialized == false.
func (bm BitMap) NextInitializedTickWithinOneWord(tick int, lte bool, tickSpacing int) (int, bool, error) {
	compressed := compress(tick, tickSpacing)

	if lte {
		wordPos, bitPos := position(compressed)
		// Bits at or below bitPos.
		mask := new(uint256.Int).Lsh(uint256.NewInt(1), bitPos+1)
		mask.SubUint64(mask, 1)
		masked := mask.And(mask, bm.word(wordPos))

		if masked.IsZero() {
			return (compressed - int(bitPos)) * tickSpacing, false, nil
		}
		msb := masked.BitLen() - 1
		return (compressed - int(bitPos) + msb) * tickSpacing, true, nil
	}

	// Search starts just above the current compressed position.
	wordPos, bitPos := position(compressed + 1)
	// Bits at or above bitPos.
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), bitPos)
	mask.SubUint64(mask, 1)
	mask.Not(mask)
	masked := mask.And(mask, bm.word(wordPos))

	if masked.IsZero() {
		return (compressed + 1 + int(255-bitPos)) * tickSpacing, false, nil
	}
	lsb := leastSignificantBit(masked)
	return (compressed + 1 + int(lsb-bitPos)) * tickSpacing, true, nil
}

func leastSignificantBit(x *uint256.Int) uint {
	for i, limb := range x {
		if limb != 0 {
			return uint(i*64 + bits.TrailingZeros64(limb))
		}
	}
	return 0
}
