// Package pool implements the off-chain rendition of a concentrated
// liquidity pool: current price, in-range liquidity, and a tick data
// provider, plus the swap state machine that walks the price curve across
// initialized ticks exactly like the on-chain contract.
package pool

import (
	"errors"
	"fmt"
	"math/big"

	"tickQuoter/internal/entity"
	"tickQuoter/internal/tick"
	"tickQuoter/internal/tickmath"
)

var (
	// ErrInvalidToken is returned when an amount's currency is neither pool
	// token.
	ErrInvalidToken = errors.New("token is not part of the pool")
	// ErrInsufficientLiquidity is returned when a swap with no price limit
	// exhausts the tick range before satisfying the requested amount.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for requested amount")
	// ErrInvalidPriceLimit is returned when a price limit is out of bounds or
	// on the wrong side of the current price.
	ErrInvalidPriceLimit = errors.New("sqrt price limit out of range or on wrong side")
	// ErrInvalidFeeTier is returned for a fee tier with non-positive spacing
	// or a fee outside [0, 100%).
	ErrInvalidFeeTier = errors.New("invalid fee tier")
)

// Pool is the state an on-chain pool exposes to swaps. Token0 and Token1 are
// canonically ordered by address; TickCurrent is always the tick containing
// SqrtRatioX96. Only price, liquidity, and tick mutate, and only through the
// mutating swap entry points.
type Pool struct {
	Token0       entity.Token
	Token1       entity.Token
	Fee          FeeTier
	SqrtRatioX96 *big.Int
	Liquidity    *big.Int
	TickCurrent  int
	TickData     tick.Provider
}

// New constructs a pool without tick data; swaps on it cannot cross any
// initialized tick.
func New(tokenA, tokenB entity.Token, fee FeeTier, sqrtRatioX96, liquidity *big.Int) (*Pool, error) {
	return NewWithTickData(tokenA, tokenB, fee, sqrtRatioX96, liquidity, tick.NoData{})
}

// NewWithTickData constructs a pool backed by a tick data provider. Tokens
// are sorted canonically and the current tick is derived from the price.
func NewWithTickData(tokenA, tokenB entity.Token, fee FeeTier, sqrtRatioX96, liquidity *big.Int, provider tick.Provider) (*Pool, error) {
	if fee.TickSpacing <= 0 || fee.Fee < 0 || fee.Fee >= 1_000_000 {
		return nil, ErrInvalidFeeTier
	}

	aFirst, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return nil, err
	}
	token0, token1 := tokenA, tokenB
	if !aFirst {
		token0, token1 = tokenB, tokenA
	}

	tickCurrent, err := tickmath.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return nil, fmt.Errorf("derive current tick: %w", err)
	}

	return &Pool{
		Token0:       token0,
		Token1:       token1,
		Fee:          fee,
		SqrtRatioX96: new(big.Int).Set(sqrtRatioX96),
		Liquidity:    new(big.Int).Set(liquidity),
		TickCurrent:  tickCurrent,
		TickData:     provider,
	}, nil
}

// ChainID returns the chain both pool tokens live on.
func (p *Pool) ChainID() uint64 {
	return p.Token0.ChainID
}

// TickSpacing returns the tick spacing of the pool's fee tier.
func (p *Pool) TickSpacing() int {
	return p.Fee.TickSpacing
}

// InvolvesToken reports whether the token is one of the pool's two tokens.
func (p *Pool) InvolvesToken(token entity.Token) bool {
	return p.Token0.Equal(token) || p.Token1.Equal(token)
}

// Token0Price returns the mid price of token0 in terms of token1, i.e.
// sqrtRatio² / 2^192 as an exact rational.
func (p *Pool) Token0Price() entity.Price {
	ratioX192 := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return entity.NewPrice(p.Token0, p.Token1, tickmath.Q192, ratioX192)
}

// Token1Price returns the mid price of token1 in terms of token0.
func (p *Pool) Token1Price() entity.Price {
	ratioX192 := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return entity.NewPrice(p.Token1, p.Token0, ratioX192, tickmath.Q192)
}

// PriceOf returns the mid price of the given pool token in terms of the
// other one.
func (p *Pool) PriceOf(token entity.Token) (entity.Price, error) {
	switch {
	case p.Token0.Equal(token):
		return p.Token0Price(), nil
	case p.Token1.Equal(token):
		return p.Token1Price(), nil
	default:
		return entity.Price{}, ErrInvalidToken
	}
}

// GetOutputAmount quotes the output for an exact input amount without
// mutating the pool. A nil sqrtPriceLimitX96 means no limit.
func (p *Pool) GetOutputAmount(input entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, error) {
	out, _, err := p.quoteOutput(input, sqrtPriceLimitX96)
	return out, err
}

// GetInputAmount quotes the input needed for an exact output amount without
// mutating the pool. A nil sqrtPriceLimitX96 means no limit.
func (p *Pool) GetInputAmount(output entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, error) {
	in, _, err := p.quoteInput(output, sqrtPriceLimitX96)
	return in, err
}

// SwapInput is GetOutputAmount plus a commit: on success the pool's price,
// tick, and liquidity advance to the post-swap state. Nothing is committed
// on failure.
func (p *Pool) SwapInput(input entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, error) {
	out, state, err := p.quoteOutput(input, sqrtPriceLimitX96)
	if err != nil {
		return entity.CurrencyAmount{}, err
	}
	if err := p.commit(state); err != nil {
		return entity.CurrencyAmount{}, err
	}
	return out, nil
}

// SwapOutput is GetInputAmount plus a commit of the post-swap state.
func (p *Pool) SwapOutput(output entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, error) {
	in, state, err := p.quoteInput(output, sqrtPriceLimitX96)
	if err != nil {
		return entity.CurrencyAmount{}, err
	}
	if err := p.commit(state); err != nil {
		return entity.CurrencyAmount{}, err
	}
	return in, nil
}

func (p *Pool) quoteOutput(input entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, swapState, error) {
	if !p.InvolvesToken(input.Token) {
		return entity.CurrencyAmount{}, swapState{}, ErrInvalidToken
	}

	zeroForOne := input.Token.Equal(p.Token0)
	state, err := p.swap(zeroForOne, input.Raw, sqrtPriceLimitX96)
	if err != nil {
		return entity.CurrencyAmount{}, swapState{}, err
	}
	if state.amountSpecifiedRemaining.Sign() != 0 && sqrtPriceLimitX96 == nil {
		return entity.CurrencyAmount{}, swapState{}, ErrInsufficientLiquidity
	}

	outputToken := p.Token1
	if !zeroForOne {
		outputToken = p.Token0
	}
	// amountCalculated is negative for exact input; the caller receives its
	// magnitude.
	out := entity.FromRawAmount(outputToken, new(big.Int).Neg(state.amountCalculated))
	return out, state, nil
}

func (p *Pool) quoteInput(output entity.CurrencyAmount, sqrtPriceLimitX96 *big.Int) (entity.CurrencyAmount, swapState, error) {
	if !p.InvolvesToken(output.Token) {
		return entity.CurrencyAmount{}, swapState{}, ErrInvalidToken
	}

	zeroForOne := output.Token.Equal(p.Token1)
	state, err := p.swap(zeroForOne, new(big.Int).Neg(output.Raw), sqrtPriceLimitX96)
	if err != nil {
		return entity.CurrencyAmount{}, swapState{}, err
	}
	if state.amountSpecifiedRemaining.Sign() != 0 && sqrtPriceLimitX96 == nil {
		return entity.CurrencyAmount{}, swapState{}, ErrInsufficientLiquidity
	}

	inputToken := p.Token0
	if !zeroForOne {
		inputToken = p.Token1
	}
	in := entity.FromRawAmount(inputToken, state.amountCalculated)
	return in, state, nil
}

// commit folds a final swap state back into the pool. The tick is recomputed
// from the final price so the construction invariant keeps holding.
func (p *Pool) commit(state swapState) error {
	tickCurrent, err := tickmath.GetTickAtSqrtRatio(state.sqrtPriceX96)
	if err != nil {
		return fmt.Errorf("derive post-swap tick: %w", err)
	}
	p.SqrtRatioX96 = state.sqrtPriceX96
	p.TickCurrent = tickCurrent
	p.Liquidity = state.liquidity
	return nil
}
