package pool

import (
	"fmt"
	"math/big"

	"tickQuoter/internal/swapmath"
	"tickQuoter/internal/tickmath"
)

// swapState is the transient state of one swap. It is produced by the pure
// swap loop and either discarded (read-only quotes) or committed into the
// pool (mutating quotes).
type swapState struct {
	amountSpecifiedRemaining *big.Int
	amountCalculated         *big.Int
	sqrtPriceX96             *big.Int
	tick                     int
	liquidity                *big.Int
}

// swap walks the price curve tick by tick. amountSpecified >= 0 is an exact
// input magnitude, < 0 an exact output magnitude. A nil limit defaults to
// the extreme representable price in the travel direction.
//
// Each iteration asks the provider for the next initialized tick within the
// current word, steps toward the nearer of that boundary and the limit with
// constant-product math, and crosses the boundary if the price lands exactly
// on it. The loop ends when the specified amount is consumed or the price
// reaches the limit.
func (p *Pool) swap(zeroForOne bool, amountSpecified, sqrtPriceLimitX96 *big.Int) (swapState, error) {
	limit := sqrtPriceLimitX96
	if limit == nil {
		if zeroForOne {
			limit = new(big.Int).Add(tickmath.MinSqrtRatio, big.NewInt(1))
		} else {
			limit = new(big.Int).Sub(tickmath.MaxSqrtRatio, big.NewInt(1))
		}
	}

	if zeroForOne {
		if limit.Cmp(tickmath.MinSqrtRatio) <= 0 || limit.Cmp(p.SqrtRatioX96) >= 0 {
			return swapState{}, ErrInvalidPriceLimit
		}
	} else {
		if limit.Cmp(tickmath.MaxSqrtRatio) >= 0 || limit.Cmp(p.SqrtRatioX96) <= 0 {
			return swapState{}, ErrInvalidPriceLimit
		}
	}

	exactInput := amountSpecified.Sign() >= 0

	state := swapState{
		amountSpecifiedRemaining: new(big.Int).Set(amountSpecified),
		amountCalculated:         new(big.Int),
		sqrtPriceX96:             new(big.Int).Set(p.SqrtRatioX96),
		tick:                     p.TickCurrent,
		liquidity:                new(big.Int).Set(p.Liquidity),
	}

	for state.amountSpecifiedRemaining.Sign() != 0 && state.sqrtPriceX96.Cmp(limit) != 0 {
		sqrtPriceStart := new(big.Int).Set(state.sqrtPriceX96)

		tickNext, initialized, err := p.TickData.NextInitializedTickWithinOneWord(state.tick, zeroForOne, p.TickSpacing())
		if err != nil {
			return swapState{}, fmt.Errorf("next initialized tick: %w", err)
		}
		if tickNext < tickmath.MinTick {
			tickNext = tickmath.MinTick
		} else if tickNext > tickmath.MaxTick {
			tickNext = tickmath.MaxTick
		}

		sqrtPriceNext, err := tickmath.GetSqrtRatioAtTick(tickNext)
		if err != nil {
			return swapState{}, err
		}

		// Step no further than whichever of boundary and limit is nearer.
		target := sqrtPriceNext
		if zeroForOne {
			if sqrtPriceNext.Cmp(limit) < 0 {
				target = limit
			}
		} else {
			if sqrtPriceNext.Cmp(limit) > 0 {
				target = limit
			}
		}

		step, err := swapmath.ComputeSwapStep(state.sqrtPriceX96, target, state.liquidity, state.amountSpecifiedRemaining, p.Fee.Fee)
		if err != nil {
			return swapState{}, err
		}
		state.sqrtPriceX96 = step.SqrtRatioNextX96

		if exactInput {
			consumed := new(big.Int).Add(step.AmountIn, step.FeeAmount)
			state.amountSpecifiedRemaining.Sub(state.amountSpecifiedRemaining, consumed)
			state.amountCalculated.Sub(state.amountCalculated, step.AmountOut)
		} else {
			state.amountSpecifiedRemaining.Add(state.amountSpecifiedRemaining, step.AmountOut)
			paid := new(big.Int).Add(step.AmountIn, step.FeeAmount)
			state.amountCalculated.Add(state.amountCalculated, paid)
		}

		if state.sqrtPriceX96.Cmp(sqrtPriceNext) == 0 {
			// Landed exactly on the boundary: cross it. The net is recorded
			// for upward crossings, so a downward crossing flips the sign.
			if initialized {
				boundary, err := p.TickData.GetTick(tickNext)
				if err != nil {
					return swapState{}, fmt.Errorf("cross tick %d: %w", tickNext, err)
				}
				liquidityNet := boundary.LiquidityNet
				if zeroForOne {
					liquidityNet = new(big.Int).Neg(liquidityNet)
				}
				state.liquidity = new(big.Int).Add(state.liquidity, liquidityNet)
			}
			if zeroForOne {
				state.tick = tickNext - 1
			} else {
				state.tick = tickNext
			}
		} else if state.sqrtPriceX96.Cmp(sqrtPriceStart) != 0 {
			// Stopped between boundaries: the tick follows from the price.
			state.tick, err = tickmath.GetTickAtSqrtRatio(state.sqrtPriceX96)
			if err != nil {
				return swapState{}, err
			}
		}
	}

	return state, nil
}
