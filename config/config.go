package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration.
type Config struct {
	Symbols    []string       `json:"symbols" yaml:"symbols"`
	Timeframes []string       `json:"timeframes" yaml:"timeframes"` // first entry drives the clock
	Patterns   PatternConfig  `json:"patterns" yaml:"patterns"`
	Trading    TradingConfig  `json:"trading" yaml:"trading"`
	Journal    JournalConfig  `json:"journal" yaml:"journal"`
}

// PatternConfig contains detector thresholds.
type PatternConfig struct {
	LiquidityThreshold float64 `json:"liquidity_threshold" yaml:"liquidity_threshold"`
	ImbalanceThreshold float64 `json:"imbalance_threshold" yaml:"imbalance_threshold"`

	// OrderBlockLookback is accepted for compatibility with older config
	// files but no detector consumes it.
	OrderBlockLookback int `json:"order_block_lookback,omitempty" yaml:"order_block_lookback,omitempty"`
}

// TradingConfig contains sizing and exit parameters. Percent fields are
// fractions (0.02 = 2%).
type TradingConfig struct {
	InitialBalance    float64 `json:"initial_balance" yaml:"initial_balance"`
	PositionSize      float64 `json:"position_size" yaml:"position_size"`
	MaxPositions      int     `json:"max_positions" yaml:"max_positions"`
	StopLossPercent   float64 `json:"stop_loss_percent" yaml:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent" yaml:"take_profit_percent"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols is required")
	}
	for _, s := range c.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("symbols must not contain empty entries")
		}
	}
	if len(c.Timeframes) == 0 {
		return fmt.Errorf("timeframes is required (first entry drives the clock)")
	}
	for _, tf := range c.Timeframes {
		if strings.TrimSpace(tf) == "" {
			return fmt.Errorf("timeframes must not contain empty entries")
		}
	}
	if c.Patterns.LiquidityThreshold <= 0 {
		return fmt.Errorf("patterns.liquidity_threshold must be positive")
	}
	if c.Patterns.ImbalanceThreshold <= 0 {
		return fmt.Errorf("patterns.imbalance_threshold must be positive")
	}
	if c.Patterns.OrderBlockLookback < 0 {
		return fmt.Errorf("patterns.order_block_lookback must not be negative")
	}
	if c.Trading.InitialBalance <= 0 {
		return fmt.Errorf("trading.initial_balance must be positive")
	}
	if c.Trading.PositionSize <= 0 || c.Trading.PositionSize > 1 {
		return fmt.Errorf("trading.position_size must be between 0 and 1")
	}
	if c.Trading.MaxPositions <= 0 {
		return fmt.Errorf("trading.max_positions must be positive")
	}
	if c.Trading.StopLossPercent <= 0 || c.Trading.StopLossPercent >= 1 {
		return fmt.Errorf("trading.stop_loss_percent must be between 0 and 1")
	}
	if c.Trading.TakeProfitPercent <= 0 {
		return fmt.Errorf("trading.take_profit_percent must be positive")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// PrimaryTimeframe returns the timeframe that drives the simulation clock.
func (c *Config) PrimaryTimeframe() string {
	return c.Timeframes[0]
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Symbols:    []string{"BTCUSDT", "ETHUSDT", "XRPUSDT"},
		Timeframes: []string{"1h", "4h", "1d"},
		Patterns: PatternConfig{
			LiquidityThreshold: 0.02,
			ImbalanceThreshold: 0.015,
			OrderBlockLookback: 20,
		},
		Trading: TradingConfig{
			InitialBalance:    10_000,
			PositionSize:      0.01,
			MaxPositions:      3,
			StopLossPercent:   0.02,
			TakeProfitPercent: 0.04,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
