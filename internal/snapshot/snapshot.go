// Package snapshot persists a fetched pool snapshot as a JSONL file so a
// quote can be replayed offline without touching the chain again. The first
// line is the pool header, every following line is one initialized tick.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"tickQuoter/internal/chain"
	"tickQuoter/internal/tick"
)

type tokenRecord struct {
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol,omitempty"`
	Name     string `json:"name,omitempty"`
}

// headerRecord is the first JSONL line. Amounts are decimal strings because
// sqrtPriceX96 and liquidity do not fit in a JSON number.
type headerRecord struct {
	Address      string      `json:"address"`
	ChainID      uint64      `json:"chainId"`
	Token0       tokenRecord `json:"token0"`
	Token1       tokenRecord `json:"token1"`
	Fee          int64       `json:"fee"`
	TickSpacing  int         `json:"tickSpacing"`
	SqrtPriceX96 string      `json:"sqrtPriceX96"`
	Liquidity    string      `json:"liquidity"`
	Tick         int         `json:"tick"`
}

type tickRecord struct {
	Index          int    `json:"index"`
	LiquidityGross string `json:"liquidityGross"`
	LiquidityNet   string `json:"liquidityNet"`
}

// Save writes the pool header and ticks to path, creating parent directories
// as needed. An existing file is truncated.
func Save(path string, state *chain.PoolState, ticks []tick.Tick) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open snapshot file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	header := headerRecord{
		Address:      state.Address.Hex(),
		ChainID:      state.ChainID,
		Token0:       tokenRecord{Address: state.Token0.Address.Hex(), Decimals: state.Token0.Decimals, Symbol: state.Token0.Symbol, Name: state.Token0.Name},
		Token1:       tokenRecord{Address: state.Token1.Address.Hex(), Decimals: state.Token1.Decimals, Symbol: state.Token1.Symbol, Name: state.Token1.Name},
		Fee:          state.Fee,
		TickSpacing:  state.TickSpacing,
		SqrtPriceX96: state.SqrtPriceX96.String(),
		Liquidity:    state.Liquidity.String(),
		Tick:         state.Tick,
	}
	if err := writeLine(writer, header); err != nil {
		return err
	}

	for _, t := range ticks {
		record := tickRecord{
			Index:          t.Index,
			LiquidityGross: t.LiquidityGross.String(),
			LiquidityNet:   t.LiquidityNet.String(),
		}
		if err := writeLine(writer, record); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

func writeLine(writer *bufio.Writer, v interface{}) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot record: %w", err)
	}
	if _, err := writer.Write(line); err != nil {
		return fmt.Errorf("write snapshot record: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

// Load reads a snapshot file written by Save and reconstructs the pool state
// and its tick list.
func Load(path string) (*chain.PoolState, []tick.Tick, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("read snapshot header: %w", err)
		}
		return nil, nil, fmt.Errorf("snapshot file %s is empty", path)
	}

	var header headerRecord
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot header: %w", err)
	}

	state, err := headerToState(header)
	if err != nil {
		return nil, nil, err
	}

	var ticks []tick.Tick
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var record tickRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, nil, fmt.Errorf("decode tick at line %d: %w", lineNo, err)
		}
		gross, ok := new(big.Int).SetString(record.LiquidityGross, 10)
		if !ok {
			return nil, nil, fmt.Errorf("invalid liquidityGross at line %d: %q", lineNo, record.LiquidityGross)
		}
		net, ok := new(big.Int).SetString(record.LiquidityNet, 10)
		if !ok {
			return nil, nil, fmt.Errorf("invalid liquidityNet at line %d: %q", lineNo, record.LiquidityNet)
		}
		ticks = append(ticks, tick.Tick{Index: record.Index, LiquidityGross: gross, LiquidityNet: net})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	return state, ticks, nil
}

func headerToState(header headerRecord) (*chain.PoolState, error) {
	sqrtPrice, ok := new(big.Int).SetString(header.SqrtPriceX96, 10)
	if !ok {
		return nil, fmt.Errorf("invalid sqrtPriceX96: %q", header.SqrtPriceX96)
	}
	liquidity, ok := new(big.Int).SetString(header.Liquidity, 10)
	if !ok {
		return nil, fmt.Errorf("invalid liquidity: %q", header.Liquidity)
	}

	return &chain.PoolState{
		Address:      common.HexToAddress(header.Address),
		ChainID:      header.ChainID,
		Token0:       chain.TokenInfo{Address: common.HexToAddress(header.Token0.Address), Decimals: header.Token0.Decimals, Symbol: header.Token0.Symbol, Name: header.Token0.Name},
		Token1:       chain.TokenInfo{Address: common.HexToAddress(header.Token1.Address), Decimals: header.Token1.Decimals, Symbol: header.Token1.Symbol, Name: header.Token1.Name},
		Fee:          header.Fee,
		TickSpacing:  header.TickSpacing,
		SqrtPriceX96: sqrtPrice,
		Liquidity:    liquidity,
		Tick:         header.Tick,
	}, nil
}
