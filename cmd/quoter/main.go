package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tickQuoter/internal/chain"
	"tickQuoter/internal/config"
	"tickQuoter/internal/entity"
	"tickQuoter/internal/snapshot"
	"tickQuoter/internal/tickmath"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Offline concentrated liquidity swap quoter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a pool snapshot (state plus all populated ticks)",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("rpc", "", "Ethereum RPC URL")
	fetchCmd.Flags().String("pool", "", "pool contract address")
	fetchCmd.Flags().Uint64("block", 0, "block number, 0 means latest")
	fetchCmd.Flags().Int("tick-lower", tickmath.MinTick, "lowest tick to scan")
	fetchCmd.Flags().Int("tick-upper", tickmath.MaxTick, "highest tick to scan")
	fetchCmd.Flags().String("lens", "", "TickLens contract address (default: canonical deployment)")
	fetchCmd.Flags().Int("workers", 8, "concurrent bitmap word scans")
	fetchCmd.Flags().Int("max-retries", 5, "maximum retry attempts per call")
	fetchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fetchCmd.Flags().String("snapshot", "./data/snapshot.jsonl", "output snapshot path")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a swap against a saved snapshot",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("snapshot", "./data/snapshot.jsonl", "input snapshot path")
	quoteCmd.Flags().String("token-in", "", "input token address")
	quoteCmd.Flags().String("token-out", "", "output token address")
	quoteCmd.Flags().String("amount", "", "raw token amount (input amount, or output amount with --exact-out)")
	quoteCmd.Flags().Bool("exact-out", false, "treat amount as the desired output")
	quoteCmd.Flags().String("price-limit", "", "optional sqrtPriceX96 limit")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if !common.IsHexAddress(cfg.Pool) {
		return fmt.Errorf("invalid pool address: %q", cfg.Pool)
	}
	pool := common.HexToAddress(cfg.Pool)

	fetcherCfg := chain.FetcherConfig{
		Workers:      cfg.Workers,
		MaxRetries:   uint(cfg.MaxRetries),
		RetryBackoff: cfg.RetryBackoff,
	}
	if cfg.Lens != "" {
		if !common.IsHexAddress(cfg.Lens) {
			return fmt.Errorf("invalid lens address: %q", cfg.Lens)
		}
		fetcherCfg.LensAddress = common.HexToAddress(cfg.Lens)
	}

	var block *big.Int
	if cfg.Block > 0 {
		block = new(big.Int).SetUint64(cfg.Block)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	fetcher := chain.NewSnapshotFetcher(chainClient, fetcherCfg, logger)

	logger.Info("fetch start",
		zap.String("pool", pool.Hex()),
		zap.Uint64("block", cfg.Block),
		zap.Int("tick_lower", cfg.TickLower),
		zap.Int("tick_upper", cfg.TickUpper),
		zap.Int("workers", cfg.Workers),
		zap.String("snapshot", cfg.Snapshot),
	)

	state, err := fetcher.FetchPoolState(ctx, pool, block)
	if err != nil {
		return err
	}

	ticks, err := fetcher.FetchTicks(ctx, pool, state.TickSpacing, cfg.TickLower, cfg.TickUpper, block)
	if err != nil {
		return err
	}

	if err := snapshot.Save(cfg.Snapshot, state, ticks); err != nil {
		return err
	}

	logger.Info("snapshot saved",
		zap.String("path", cfg.Snapshot),
		zap.Int("ticks", len(ticks)),
		zap.String("sqrt_price_x96", state.SqrtPriceX96.String()),
		zap.String("liquidity", state.Liquidity.String()),
		zap.Int("tick", state.Tick),
	)

	return nil
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	state, ticks, err := snapshot.Load(cfg.Snapshot)
	if err != nil {
		return err
	}

	p, err := snapshot.BuildPool(state, ticks)
	if err != nil {
		return err
	}

	tokenIn, err := resolveToken(p.Token0, p.Token1, cfg.TokenIn, "token-in")
	if err != nil {
		return err
	}
	tokenOut, err := resolveToken(p.Token0, p.Token1, cfg.TokenOut, "token-out")
	if err != nil {
		return err
	}
	if tokenIn.Equal(tokenOut) {
		return fmt.Errorf("token-in and token-out must differ")
	}

	amount, ok := new(big.Int).SetString(strings.TrimSpace(cfg.Amount), 10)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("invalid amount: %q", cfg.Amount)
	}

	var priceLimit *big.Int
	if cfg.PriceLimit != "" {
		priceLimit, ok = new(big.Int).SetString(strings.TrimSpace(cfg.PriceLimit), 10)
		if !ok {
			return fmt.Errorf("invalid price limit: %q", cfg.PriceLimit)
		}
	}

	logger.Info("quote start",
		zap.String("pool", state.Address.Hex()),
		zap.String("token_in", tokenIn.Address.Hex()),
		zap.String("token_out", tokenOut.Address.Hex()),
		zap.String("amount", amount.String()),
		zap.Bool("exact_out", cfg.ExactOut),
		zap.Int("ticks", len(ticks)),
	)

	if cfg.ExactOut {
		in, err := p.GetInputAmount(entity.FromRawAmount(tokenOut, amount), priceLimit)
		if err != nil {
			return err
		}
		fmt.Printf("input required: %s %s\n", in.Raw.String(), symbolOrAddress(in.Token))
		return nil
	}

	out, err := p.GetOutputAmount(entity.FromRawAmount(tokenIn, amount), priceLimit)
	if err != nil {
		return err
	}
	fmt.Printf("output: %s %s\n", out.Raw.String(), symbolOrAddress(out.Token))
	return nil
}

func resolveToken(token0, token1 entity.Token, address, flag string) (entity.Token, error) {
	if !common.IsHexAddress(address) {
		return entity.Token{}, fmt.Errorf("invalid %s address: %q", flag, address)
	}
	addr := common.HexToAddress(address)
	switch addr {
	case token0.Address:
		return token0, nil
	case token1.Address:
		return token1, nil
	default:
		return entity.Token{}, fmt.Errorf("%s %s is not a pool token", flag, addr.Hex())
	}
}

func symbolOrAddress(token entity.Token) string {
	if token.Symbol != "" {
		return token.Symbol
	}
	return token.Address.Hex()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
