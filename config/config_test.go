package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "1h", cfg.PrimaryTimeframe())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no symbols", func(c *Config) { c.Symbols = nil }},
		{"empty symbol", func(c *Config) { c.Symbols = []string{"BTCUSDT", " "} }},
		{"no timeframes", func(c *Config) { c.Timeframes = nil }},
		{"zero liquidity threshold", func(c *Config) { c.Patterns.LiquidityThreshold = 0 }},
		{"zero imbalance threshold", func(c *Config) { c.Patterns.ImbalanceThreshold = 0 }},
		{"negative order block lookback", func(c *Config) { c.Patterns.OrderBlockLookback = -1 }},
		{"zero balance", func(c *Config) { c.Trading.InitialBalance = 0 }},
		{"position size above 1", func(c *Config) { c.Trading.PositionSize = 1.5 }},
		{"zero max positions", func(c *Config) { c.Trading.MaxPositions = 0 }},
		{"stop loss at 1", func(c *Config) { c.Trading.StopLossPercent = 1 }},
		{"zero take profit", func(c *Config) { c.Trading.TakeProfitPercent = 0 }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv journal without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite journal without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	data := `
symbols: [BTCUSDT, ETHUSDT]
timeframes: [1h, 4h, 1d]
patterns:
  liquidity_threshold: 0.02
  imbalance_threshold: 0.015
  order_block_lookback: 20
trading:
  initial_balance: 10000
  position_size: 0.01
  max_positions: 3
  stop_loss_percent: 0.02
  take_profit_percent: 0.04
journal:
  type: sqlite
  db_path: ./run.sqlite
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, cfg.Symbols)
	assert.Equal(t, "1h", cfg.PrimaryTimeframe())
	assert.Equal(t, 0.015, cfg.Patterns.ImbalanceThreshold)
	assert.Equal(t, 20, cfg.Patterns.OrderBlockLookback)
	assert.Equal(t, 3, cfg.Trading.MaxPositions)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestLoadFromFileJSON(t *testing.T) {
	data := `{
  "symbols": ["BTCUSDT"],
  "timeframes": ["1h"],
  "patterns": {"liquidity_threshold": 0.02, "imbalance_threshold": 0.015},
  "trading": {
    "initial_balance": 5000,
    "position_size": 0.02,
    "max_positions": 2,
    "stop_loss_percent": 0.01,
    "take_profit_percent": 0.03
  },
  "journal": {"type": "none"}
}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, cfg.Trading.InitialBalance)
}

func TestLoadFromFileInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols: []\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
