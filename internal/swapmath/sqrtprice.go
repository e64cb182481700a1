package swapmath

import (
	"errors"
	"math/big"

	"tickQuoter/internal/tickmath"
)

var (
	ErrZeroLiquidity = errors.New("liquidity must be greater than zero")
	ErrZeroSqrtPrice = errors.New("sqrt price must be greater than zero")
	ErrPriceOverflow = errors.New("price calculation overflow")

	one = big.NewInt(1)
)

func mulDiv(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	return product.Div(product, denominator)
}

func mulDivRoundingUp(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	quotient, rem := new(big.Int).QuoRem(product, denominator, new(big.Int))
	if rem.Sign() != 0 {
		quotient.Add(quotient, one)
	}
	return quotient
}

func divRoundingUp(a, denominator *big.Int) *big.Int {
	quotient, rem := new(big.Int).QuoRem(a, denominator, new(big.Int))
	if rem.Sign() != 0 {
		quotient.Add(quotient, one)
	}
	return quotient
}

// GetNextSqrtPriceFromAmount0RoundingUp returns the sqrt price after adding
// (or removing) an amount of token0 at the given liquidity. Rounds up so the
// price moves at most as far as the true value.
func GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPX96), nil
	}

	numerator1 := new(big.Int).Lsh(liquidity, 96)

	if add {
		// liquidity * sqrtP / (liquidity + amount * sqrtP), guarding the
		// intermediate product the way the contract does.
		product := new(big.Int).Mul(amount, sqrtPX96)
		denominator := new(big.Int).Add(numerator1, product)
		if denominator.Cmp(numerator1) >= 0 {
			return mulDivRoundingUp(numerator1, sqrtPX96, denominator), nil
		}
		denominator.Div(numerator1, sqrtPX96)
		denominator.Add(denominator, amount)
		return divRoundingUp(numerator1, denominator), nil
	}

	product := new(big.Int).Mul(amount, sqrtPX96)
	if numerator1.Cmp(product) <= 0 {
		return nil, ErrPriceOverflow
	}
	denominator := new(big.Int).Sub(numerator1, product)
	return mulDivRoundingUp(numerator1, sqrtPX96, denominator), nil
}

// GetNextSqrtPriceFromAmount1RoundingDown returns the sqrt price after adding
// (or removing) an amount of token1 at the given liquidity.
func GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	if add {
		quotient := mulDiv(amount, tickmath.Q96, liquidity)
		return quotient.Add(sqrtPX96, quotient), nil
	}

	quotient := mulDivRoundingUp(amount, tickmath.Q96, liquidity)
	if sqrtPX96.Cmp(quotient) <= 0 {
		return nil, ErrPriceOverflow
	}
	return new(big.Int).Sub(sqrtPX96, quotient), nil
}

// GetNextSqrtPriceFromInput returns the price after swapping amountIn,
// rounding so the output amount is never overestimated.
func GetNextSqrtPriceFromInput(sqrtPX96, liquidity, amountIn *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 {
		return nil, ErrZeroSqrtPrice
	}
	if liquidity.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	if zeroForOne {
		return GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountIn, true)
	}
	return GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput returns the price after swapping out amountOut,
// rounding so the input amount is never underestimated.
func GetNextSqrtPriceFromOutput(sqrtPX96, liquidity, amountOut *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 {
		return nil, ErrZeroSqrtPrice
	}
	if liquidity.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	if zeroForOne {
		return GetNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountOut, false)
	}
	return GetNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountOut, false)
}

// GetAmount0Delta returns the amount of token0 between two sqrt prices at the
// given liquidity.
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) (*big.Int, error) {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	if sqrtRatioAX96.Sign() <= 0 {
		return nil, ErrZeroSqrtPrice
	}

	numerator1 := new(big.Int).Lsh(liquidity, 96)
	numerator2 := new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)

	if roundUp {
		return divRoundingUp(mulDivRoundingUp(numerator1, numerator2, sqrtRatioBX96), sqrtRatioAX96), nil
	}
	result := mulDiv(numerator1, numerator2, sqrtRatioBX96)
	return result.Div(result, sqrtRatioAX96), nil
}

// GetAmount1Delta returns the amount of token1 between two sqrt prices at the
// given liquidity.
func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}

	diff := new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)
	if roundUp {
		return mulDivRoundingUp(liquidity, diff, tickmath.Q96)
	}
	return mulDiv(liquidity, diff, tickmath.Q96)
}
