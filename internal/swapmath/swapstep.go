package swapmath

import "math/big"

// feeDenominator expresses fees in hundredths of a basis point (1e6 = 100%).
var feeDenominator = big.NewInt(1_000_000)

// StepResult is the outcome of swapping within a single tick range.
type StepResult struct {
	SqrtRatioNextX96 *big.Int
	AmountIn         *big.Int
	AmountOut        *big.Int
	FeeAmount        *big.Int
}

// ComputeSwapStep computes one constant-product step: how far the price moves
// toward the target and the input, output, and fee amounts consumed, given
// the remaining amount. A non-negative amountRemaining is an exact input; a
// negative one is an exact output. The logic and rounding mirror SwapMath.sol.
func ComputeSwapStep(
	sqrtRatioCurrentX96,
	sqrtRatioTargetX96,
	liquidity,
	amountRemaining *big.Int,
	feePips int64,
) (StepResult, error) {
	var (
		res StepResult
		err error
	)
	res.AmountIn = new(big.Int)
	res.AmountOut = new(big.Int)
	res.FeeAmount = new(big.Int)

	zeroForOne := sqrtRatioCurrentX96.Cmp(sqrtRatioTargetX96) >= 0
	exactIn := amountRemaining.Sign() >= 0
	fee := big.NewInt(feePips)

	if exactIn {
		amountRemainingLessFee := mulDiv(amountRemaining, new(big.Int).Sub(feeDenominator, fee), feeDenominator)
		if zeroForOne {
			res.AmountIn, err = GetAmount0Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			res.AmountIn = GetAmount1Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		if err != nil {
			return StepResult{}, err
		}
		if amountRemainingLessFee.Cmp(res.AmountIn) >= 0 {
			res.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			res.SqrtRatioNextX96, err = GetNextSqrtPriceFromInput(sqrtRatioCurrentX96, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return StepResult{}, err
			}
		}
	} else {
		amountRemainingAbs := new(big.Int).Neg(amountRemaining)
		if zeroForOne {
			res.AmountOut = GetAmount1Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			res.AmountOut, err = GetAmount0Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		if err != nil {
			return StepResult{}, err
		}
		if amountRemainingAbs.Cmp(res.AmountOut) >= 0 {
			res.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			res.SqrtRatioNextX96, err = GetNextSqrtPriceFromOutput(sqrtRatioCurrentX96, liquidity, amountRemainingAbs, zeroForOne)
			if err != nil {
				return StepResult{}, err
			}
		}
	}

	max := sqrtRatioTargetX96.Cmp(res.SqrtRatioNextX96) == 0

	// Recompute the amounts from the price actually reached. When the step
	// stopped at the target, one side is already exact and must not be
	// recomputed (the recomputation rounds the other way).
	if zeroForOne {
		if !(max && exactIn) {
			res.AmountIn, err = GetAmount0Delta(res.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
			if err != nil {
				return StepResult{}, err
			}
		}
		if !(max && !exactIn) {
			res.AmountOut = GetAmount1Delta(res.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
		}
	} else {
		if !(max && exactIn) {
			res.AmountIn = GetAmount1Delta(sqrtRatioCurrentX96, res.SqrtRatioNextX96, liquidity, true)
		}
		if !(max && !exactIn) {
			res.AmountOut, err = GetAmount0Delta(sqrtRatioCurrentX96, res.SqrtRatioNextX96, liquidity, false)
			if err != nil {
				return StepResult{}, err
			}
		}
	}

	if !exactIn {
		amountRemainingAbs := new(big.Int).Neg(amountRemaining)
		if res.AmountOut.Cmp(amountRemainingAbs) > 0 {
			res.AmountOut.Set(amountRemainingAbs)
		}
	}

	if exactIn && !max {
		// Did not reach the target: the entire remainder beyond amountIn is
		// taken as fee.
		res.FeeAmount = new(big.Int).Sub(amountRemaining, res.AmountIn)
	} else {
		res.FeeAmount = mulDivRoundingUp(res.AmountIn, fee, new(big.Int).Sub(feeDenominator, fee))
	}

	return res, nil
}
