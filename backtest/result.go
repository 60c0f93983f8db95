package backtest

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Result bundles everything a run produces: the trade ledger, the
// per-bar balance curve, rejected open signals, and summary metrics.
type Result struct {
	InitialBalance float64
	FinalBalance   float64

	Trades     []Trade
	Balances   []BalanceSnapshot
	Rejections []Rejection

	Metrics Metrics
}

// PrintSummary writes a human-readable report of the run.
func PrintSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:         %d\n", r.Metrics.TotalTrades)
	fmt.Fprintf(w, "Profitable:     %d\n", r.Metrics.ProfitableTrades)
	fmt.Fprintf(w, "Win Rate:       %.2f%%\n", r.Metrics.WinRate*100)
	fmt.Fprintf(w, "Average PnL:    %.2f\n", r.Metrics.AveragePnL)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance:  %.2f\n", r.InitialBalance)
	fmt.Fprintf(w, "End Balance:    %.2f\n", r.FinalBalance)
	fmt.Fprintf(w, "Total PnL:      %.2f\n", r.Metrics.TotalPnL)
	fmt.Fprintf(w, "Return:         %.2f%%\n", r.Metrics.TotalReturn)
	if math.IsInf(r.Metrics.ProfitFactor, 1) {
		fmt.Fprintf(w, "Profit Factor:  inf (no losing trades)\n")
	} else {
		fmt.Fprintf(w, "Profit Factor:  %.2f\n", r.Metrics.ProfitFactor)
	}
	fmt.Fprintf(w, "Max Drawdown:   %.2f%%\n", r.Metrics.MaxDrawdown)

	if len(r.Rejections) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rejected open signals: %d\n", len(r.Rejections))
		byCode := map[string]int{}
		for _, rej := range r.Rejections {
			byCode[rej.Code]++
		}
		for code, n := range byCode {
			fmt.Fprintf(w, "  %-20s %d\n", code, n)
		}
	}

	if len(r.Trades) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Trades")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, t := range r.Trades {
			fmt.Fprintf(w, "%s  %-10s %-5s entry %.4f exit %.4f pnl %+.2f (%+.2f%%) %s\n",
				t.ExitTime.Format(time.RFC3339),
				t.Symbol,
				t.Side,
				t.EntryPrice,
				t.ExitPrice,
				t.PnL,
				t.PnLPercent,
				t.Reason)
		}
	}

	fmt.Fprintln(w)
}
