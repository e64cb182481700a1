package pool

// FeeTier is a pool fee in hundredths of a basis point together with the
// tick spacing the protocol assigns to that fee.
type FeeTier struct {
	Fee         int64
	TickSpacing int
}

// The canonical fee tiers.
var (
	FeeLowest = FeeTier{Fee: 100, TickSpacing: 1}
	FeeLow    = FeeTier{Fee: 500, TickSpacing: 10}
	FeeMedium = FeeTier{Fee: 3000, TickSpacing: 60}
	FeeHigh   = FeeTier{Fee: 10000, TickSpacing: 200}
)

// CustomFeeTier builds a non-canonical fee tier, as deployed by forks and
// factory owners.
func CustomFeeTier(fee int64, tickSpacing int) FeeTier {
	return FeeTier{Fee: fee, TickSpacing: tickSpacing}
}
