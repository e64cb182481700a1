package chain

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"tickQuoter/internal/tick"
)

// TokenInfo is the on-chain metadata of one pool token.
type TokenInfo struct {
	Address  common.Address
	Decimals uint8
	Symbol   string
	Name     string
}

// PoolState is a pool's slot0-level state at one block, the part of a
// snapshot that is not tick data.
type PoolState struct {
	Address      common.Address
	ChainID      uint64
	Token0       TokenInfo
	Token1       TokenInfo
	Fee          int64
	TickSpacing  int
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
	Tick         int
}

// FetcherConfig tunes the snapshot fetcher.
type FetcherConfig struct {
	Workers      int
	MaxRetries   uint
	RetryBackoff time.Duration
	LensAddress  common.Address
}

// SnapshotFetcher reads a pool's full state, including every populated tick,
// through eth_calls at a fixed block. This is the single upfront acquisition
// step; the swap engine itself never touches the chain.
type SnapshotFetcher struct {
	client *Client
	cfg    FetcherConfig
	logger *zap.Logger
}

// NewSnapshotFetcher builds a fetcher. Zero config fields get sane defaults.
func NewSnapshotFetcher(client *Client, cfg FetcherConfig, logger *zap.Logger) *SnapshotFetcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.LensAddress == (common.Address{}) {
		cfg.LensAddress = TickLensAddress
	}
	return &SnapshotFetcher{client: client, cfg: cfg, logger: logger}
}

// call packs a method, performs the eth_call with retries, and unpacks the
// outputs.
func (f *SnapshotFetcher) call(ctx context.Context, contractABI abi.ABI, to common.Address, block *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{To: &to, Data: data}

	var resp []byte
	err = retry.Do(
		func() error {
			var callErr error
			resp, callErr = f.client.CallContract(ctx, msg, block)
			return callErr
		},
		retry.Attempts(f.cfg.MaxRetries),
		retry.Delay(f.cfg.RetryBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := contractABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// FetchPoolState reads the pool's tokens, fee tier, price, tick, and
// liquidity at the given block (nil means latest).
func (f *SnapshotFetcher) FetchPoolState(ctx context.Context, pool common.Address, block *big.Int) (*PoolState, error) {
	poolABI, err := v3PoolABIInstance()
	if err != nil {
		return nil, err
	}

	chainID, err := f.client.GetChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}

	state := &PoolState{Address: pool, ChainID: chainID.Uint64()}

	values, err := f.call(ctx, poolABI, pool, block, "token0")
	if err != nil {
		return nil, err
	}
	token0 := values[0].(common.Address)

	values, err = f.call(ctx, poolABI, pool, block, "token1")
	if err != nil {
		return nil, err
	}
	token1 := values[0].(common.Address)

	values, err = f.call(ctx, poolABI, pool, block, "fee")
	if err != nil {
		return nil, err
	}
	state.Fee = values[0].(*big.Int).Int64()

	values, err = f.call(ctx, poolABI, pool, block, "tickSpacing")
	if err != nil {
		return nil, err
	}
	state.TickSpacing = int(values[0].(*big.Int).Int64())

	values, err = f.call(ctx, poolABI, pool, block, "liquidity")
	if err != nil {
		return nil, err
	}
	state.Liquidity = values[0].(*big.Int)

	values, err = f.call(ctx, poolABI, pool, block, "slot0")
	if err != nil {
		return nil, err
	}
	state.SqrtPriceX96 = values[0].(*big.Int)
	state.Tick = int(values[1].(*big.Int).Int64())

	state.Token0, err = f.fetchTokenInfo(ctx, token0, block)
	if err != nil {
		return nil, err
	}
	state.Token1, err = f.fetchTokenInfo(ctx, token1, block)
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (f *SnapshotFetcher) fetchTokenInfo(ctx context.Context, token common.Address, block *big.Int) (TokenInfo, error) {
	erc20, err := erc20ABIInstance()
	if err != nil {
		return TokenInfo{}, err
	}

	info := TokenInfo{Address: token}

	values, err := f.call(ctx, erc20, token, block, "decimals")
	if err != nil {
		return TokenInfo{}, fmt.Errorf("token %s decimals: %w", token.Hex(), err)
	}
	info.Decimals = values[0].(uint8)

	// Symbol and name are display metadata; non-standard tokens may not
	// expose them as strings.
	if values, err := f.call(ctx, erc20, token, block, "symbol"); err == nil {
		info.Symbol = values[0].(string)
	}
	if values, err := f.call(ctx, erc20, token, block, "name"); err == nil {
		info.Name = values[0].(string)
	}

	return info, nil
}

// populatedTick mirrors the TickLens PopulatedTick tuple.
type populatedTick struct {
	Tick           *big.Int
	LiquidityNet   *big.Int
	LiquidityGross *big.Int
}

// FetchTicks reads every populated tick of the pool in [tickLower,
// tickUpper]. It scans the pool's bitmap words concurrently on a worker
// pool, then asks the lens for the populated ticks of each nonzero word.
func (f *SnapshotFetcher) FetchTicks(ctx context.Context, pool common.Address, tickSpacing, tickLower, tickUpper int, block *big.Int) ([]tick.Tick, error) {
	if tickSpacing <= 0 {
		return nil, tick.ErrInvalidSpacing
	}
	if tickLower > tickUpper {
		return nil, fmt.Errorf("tick range inverted: %d > %d", tickLower, tickUpper)
	}

	poolABI, err := v3PoolABIInstance()
	if err != nil {
		return nil, err
	}
	lensABI, err := tickLensABIInstance()
	if err != nil {
		return nil, err
	}

	minWord := wordOfTick(tickLower, tickSpacing)
	maxWord := wordOfTick(tickUpper, tickSpacing)

	workers, err := ants.NewPool(f.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	defer workers.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		ticks    []tick.Tick
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for word := minWord; word <= maxWord; word++ {
		word := word
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			if failed() || ctx.Err() != nil {
				return
			}

			values, err := f.call(ctx, poolABI, pool, block, "tickBitmap", int16(word))
			if err != nil {
				fail(err)
				return
			}
			if values[0].(*big.Int).Sign() == 0 {
				return
			}

			values, err = f.call(ctx, lensABI, f.cfg.LensAddress, block, "getPopulatedTicksInWord", pool, int16(word))
			if err != nil {
				fail(err)
				return
			}
			populated := *abi.ConvertType(values[0], new([]populatedTick)).(*[]populatedTick)

			wordTicks := make([]tick.Tick, 0, len(populated))
			for _, pt := range populated {
				index := int(pt.Tick.Int64())
				if index < tickLower || index > tickUpper {
					continue
				}
				wordTicks = append(wordTicks, tick.Tick{
					Index:          index,
					LiquidityGross: pt.LiquidityGross,
					LiquidityNet:   pt.LiquidityNet,
				})
			}

			f.logger.Debug("fetched bitmap word",
				zap.Int("word", word),
				zap.Int("ticks", len(wordTicks)),
			)

			mu.Lock()
			ticks = append(ticks, wordTicks...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submit word %d: %w", word, submitErr))
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Index < ticks[j].Index })

	f.logger.Info("fetched tick snapshot",
		zap.String("pool", pool.Hex()),
		zap.Int("words", maxWord-minWord+1),
		zap.Int("ticks", len(ticks)),
	)

	return ticks, nil
}

// wordOfTick returns the bitmap word index containing the tick, rounding the
// compressed index toward negative infinity.
func wordOfTick(tickIndex, tickSpacing int) int {
	compressed := tickIndex / tickSpacing
	if tickIndex < 0 && tickIndex%tickSpacing != 0 {
		compressed--
	}
	return compressed >> 8
}
