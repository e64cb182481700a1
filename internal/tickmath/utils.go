package tickmath

import (
	"math"
	"math/big"
)

// EncodeSqrtRatioX96 returns the Q64.96 sqrt ratio for the price
// amount1/amount0, i.e. floor(sqrt((amount1 << 192) / amount0)).
func EncodeSqrtRatioX96(amount1, amount0 *big.Int) *big.Int {
	numerator := new(big.Int).Lsh(amount1, 192)
	ratioX192 := numerator.Div(numerator, amount0)
	return ratioX192.Sqrt(ratioX192)
}

// NearestUsableTick returns the closest tick that is a multiple of
// tickSpacing and still inside the usable tick range.
func NearestUsableTick(tick, tickSpacing int) int {
	rounded := int(math.Round(float64(tick)/float64(tickSpacing))) * tickSpacing
	if rounded < MinTick {
		return rounded + tickSpacing
	}
	if rounded > MaxTick {
		return rounded - tickSpacing
	}
	return rounded
}
