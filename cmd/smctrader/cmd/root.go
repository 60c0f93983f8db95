package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smctrader",
	Short: "Smart-money structure detection and multi-timeframe backtesting",
	Long: `smctrader scans OHLC candle series for smart-money structural signals
(liquidity levels, order blocks, fair value gaps) and replays them against
historical data to simulate a trading strategy's equity curve.

It provides tools for:
  - Detecting structural patterns across multiple timeframes
  - Backtesting the pattern-vote strategy over local candle data
  - Journaling trades and equity curves to CSV or SQLite
  - Summarizing performance (win rate, drawdown, profit factor)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
