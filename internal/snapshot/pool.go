package snapshot

import (
	"tickQuoter/internal/chain"
	"tickQuoter/internal/entity"
	"tickQuoter/internal/pool"
	"tickQuoter/internal/tick"
)

// BuildPool assembles a quotable pool from a snapshot. The ticks are treated
// as a full snapshot, so the net liquidity invariant is enforced.
func BuildPool(state *chain.PoolState, ticks []tick.Tick) (*pool.Pool, error) {
	token0 := entity.Token{
		ChainID:  state.ChainID,
		Address:  state.Token0.Address,
		Decimals: state.Token0.Decimals,
		Symbol:   state.Token0.Symbol,
		Name:     state.Token0.Name,
	}
	token1 := entity.Token{
		ChainID:  state.ChainID,
		Address:  state.Token1.Address,
		Decimals: state.Token1.Decimals,
		Symbol:   state.Token1.Symbol,
		Name:     state.Token1.Name,
	}

	tickMap, err := tick.NewMap(ticks, state.TickSpacing)
	if err != nil {
		return nil, err
	}

	tier := pool.CustomFeeTier(state.Fee, state.TickSpacing)
	return pool.NewWithTickData(token0, token1, tier, state.SqrtPriceX96, state.Liquidity, tickMap)
}
