package snapshot

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"tickQuoter/internal/chain"
	"tickQuoter/internal/tick"
	"tickQuoter/internal/tickmath"
)

func testState() *chain.PoolState {
	return &chain.PoolState{
		Address: common.HexToAddress("0x6c6Bc977E13Df9b0de53b251522280BB72383700"),
		ChainID: 1,
		Token0: chain.TokenInfo{
			Address:  common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"),
			Decimals: 18,
			Symbol:   "DAI",
			Name:     "Dai Stablecoin",
		},
		Token1: chain.TokenInfo{
			Address:  common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			Decimals: 6,
			Symbol:   "USDC",
			Name:     "USD Coin",
		},
		Fee:          500,
		TickSpacing:  10,
		SqrtPriceX96: tickmath.EncodeSqrtRatioX96(big.NewInt(1), big.NewInt(1)),
		Liquidity:    big.NewInt(1_000_000_000_000_000_000),
		Tick:         0,
	}
}

func testTicks() []tick.Tick {
	liquidity := big.NewInt(1_000_000_000_000_000_000)
	return []tick.Tick{
		{Index: -887270, LiquidityGross: liquidity, LiquidityNet: liquidity},
		{Index: 887270, LiquidityGross: liquidity, LiquidityNet: new(big.Int).Neg(liquidity)},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.jsonl")

	if err := Save(path, testState(), testTicks()); err != nil {
		t.Fatalf("save: %v", err)
	}

	state, ticks, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := testState()
	if state.Address != want.Address || state.ChainID != want.ChainID {
		t.Fatalf("pool identity mismatch: %+v", state)
	}
	if state.Token0 != want.Token0 || state.Token1 != want.Token1 {
		t.Fatalf("token metadata mismatch: %+v", state)
	}
	if state.Fee != want.Fee || state.TickSpacing != want.TickSpacing || state.Tick != want.Tick {
		t.Fatalf("pool parameters mismatch: %+v", state)
	}
	if state.SqrtPriceX96.Cmp(want.SqrtPriceX96) != 0 {
		t.Fatalf("sqrt price mismatch: %s", state.SqrtPriceX96)
	}
	if state.Liquidity.Cmp(want.Liquidity) != 0 {
		t.Fatalf("liquidity mismatch: %s", state.Liquidity)
	}

	wantTicks := testTicks()
	if len(ticks) != len(wantTicks) {
		t.Fatalf("tick count mismatch: %d", len(ticks))
	}
	for i, got := range ticks {
		if got.Index != wantTicks[i].Index {
			t.Fatalf("tick %d index mismatch: %d", i, got.Index)
		}
		if got.LiquidityGross.Cmp(wantTicks[i].LiquidityGross) != 0 || got.LiquidityNet.Cmp(wantTicks[i].LiquidityNet) != 0 {
			t.Fatalf("tick %d liquidity mismatch: %+v", i, got)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestBuildPool(t *testing.T) {
	p, err := BuildPool(testState(), testTicks())
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}

	if p.Token0.Symbol != "DAI" || p.Token1.Symbol != "USDC" {
		t.Fatalf("token order mismatch: %s / %s", p.Token0.Symbol, p.Token1.Symbol)
	}
	if p.TickCurrent != 0 {
		t.Fatalf("tick mismatch: %d", p.TickCurrent)
	}
	if p.Fee.Fee != 500 || p.Fee.TickSpacing != 10 {
		t.Fatalf("fee tier mismatch: %+v", p.Fee)
	}

	addr, err := p.Address()
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	if addr != testState().Address {
		t.Fatalf("derived address mismatch: %s", addr.Hex())
	}
}
