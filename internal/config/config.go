package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FetchConfig holds configuration for the fetch command, loaded from flags,
// env, or config file.
type FetchConfig struct {
	RPCURL       string
	Pool         string
	Block        uint64
	TickLower    int
	TickUpper    int
	Lens         string
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	Snapshot     string
	LogLevel     string
}

// LoadFetch merges config file, environment variables, and flags into
// FetchConfig.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return FetchConfig{}, err
	}

	v.SetDefault("workers", 8)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("snapshot", "./data/snapshot.jsonl")
	v.SetDefault("log-level", "info")

	cfg := FetchConfig{
		RPCURL:       v.GetString("rpc"),
		Pool:         v.GetString("pool"),
		Block:        v.GetUint64("block"),
		TickLower:    v.GetInt("tick-lower"),
		TickUpper:    v.GetInt("tick-upper"),
		Lens:         v.GetString("lens"),
		Workers:      v.GetInt("workers"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Snapshot:     v.GetString("snapshot"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

// QuoteConfig holds configuration for the quote command.
type QuoteConfig struct {
	Snapshot   string
	TokenIn    string
	TokenOut   string
	Amount     string
	ExactOut   bool
	PriceLimit string
	LogLevel   string
}

// LoadQuote merges config file, environment variables, and flags into
// QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return QuoteConfig{}, err
	}

	v.SetDefault("snapshot", "./data/snapshot.jsonl")
	v.SetDefault("log-level", "info")

	cfg := QuoteConfig{
		Snapshot:   v.GetString("snapshot"),
		TokenIn:    v.GetString("token-in"),
		TokenOut:   v.GetString("token-out"),
		Amount:     v.GetString("amount"),
		ExactOut:   v.GetBool("exact-out"),
		PriceLimit: v.GetString("price-limit"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
