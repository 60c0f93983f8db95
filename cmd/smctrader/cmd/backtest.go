package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradelab/smctrader/backtest"
	"github.com/tradelab/smctrader/config"
	"github.com/tradelab/smctrader/journal"
	"github.com/tradelab/smctrader/market"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the pattern-vote strategy over historical candle data",
	Long: `Backtest loads candle CSVs for every configured (symbol, timeframe)
pair, runs the simulation, and prints a summary report.

Candle files live in the data directory as <SYMBOL>_<timeframe>.csv with
rows time,open,high,low,close,volume.

Example:
  smctrader backtest -d ./data -c config.yaml --start 2023-01-01 --end 2023-06-30`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btDataDir    string
	btStart      string
	btEnd        string
	btBalance    float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON config (defaults used when empty)")
	backtestCmd.Flags().StringVarP(&btDataDir, "data", "d", "", "directory with <SYMBOL>_<timeframe>.csv candle files (required)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date (2006-01-02 or RFC3339), unbounded when empty")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date (2006-01-02 or RFC3339), unbounded when empty")
	backtestCmd.Flags().Float64VarP(&btBalance, "balance", "b", 0, "override initial balance")

	if err := backtestCmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = loaded
	}
	if btBalance > 0 {
		cfg.Trading.InitialBalance = btBalance
	}

	start, err := parseDate(btStart)
	if err != nil {
		return fmt.Errorf("bad --start: %w", err)
	}
	end, err := parseDate(btEnd)
	if err != nil {
		return fmt.Errorf("bad --end: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	provider := market.NewFileProvider(btDataDir)
	data, err := backtest.LoadSeriesSet(provider, cfg, start, end)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	fmt.Printf("Running backtest over %d symbols, timeframes %v (clock: %s)\n\n",
		len(cfg.Symbols), cfg.Timeframes, cfg.PrimaryTimeframe())

	engine := backtest.NewEngine(cfg, j)
	result, err := engine.Run(data)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	backtest.PrintSummary(os.Stdout, result)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
