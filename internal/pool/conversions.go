package pool

import (
	"math/big"

	"tickQuoter/internal/entity"
	"tickQuoter/internal/tickmath"
)

// TickToPrice converts a tick into the exact rational price of baseToken in
// terms of quoteToken. The protocol always quotes token1 per token0, so the
// address order of the two tokens decides the orientation of the ratio.
func TickToPrice(baseToken, quoteToken entity.Token, tickIndex int) (entity.Price, error) {
	sqrtRatioX96, err := tickmath.GetSqrtRatioAtTick(tickIndex)
	if err != nil {
		return entity.Price{}, err
	}
	ratioX192 := new(big.Int).Mul(sqrtRatioX96, sqrtRatioX96)

	baseFirst, err := baseToken.SortsBefore(quoteToken)
	if err != nil {
		return entity.Price{}, err
	}
	if baseFirst {
		return entity.NewPrice(baseToken, quoteToken, tickmath.Q192, ratioX192), nil
	}
	return entity.NewPrice(baseToken, quoteToken, ratioX192, tickmath.Q192), nil
}

// PriceToClosestTick returns the largest tick whose price is less than or
// equal to the input price. Encoding a rational price to a sqrt ratio loses
// precision, so the candidate from the tick math is checked against the
// exact price of the neighboring tick before being accepted.
func PriceToClosestTick(price entity.Price) (int, error) {
	sorted, err := price.Base.SortsBefore(price.Quote)
	if err != nil {
		return 0, err
	}

	var sqrtRatioX96 *big.Int
	if sorted {
		sqrtRatioX96 = tickmath.EncodeSqrtRatioX96(price.Numerator, price.Denominator)
	} else {
		sqrtRatioX96 = tickmath.EncodeSqrtRatioX96(price.Denominator, price.Numerator)
	}

	tickIndex, err := tickmath.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return 0, err
	}

	nextTickPrice, err := TickToPrice(price.Base, price.Quote, tickIndex+1)
	if err != nil {
		return 0, err
	}

	if sorted {
		if price.Cmp(nextTickPrice) >= 0 {
			tickIndex++
		}
	} else {
		if price.Cmp(nextTickPrice) <= 0 {
			tickIndex++
		}
	}
	return tickIndex, nil
}
