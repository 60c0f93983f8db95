package backtest

import (
	"math"
	"sort"
)

// Metrics summarizes a finished run. ComputeMetrics is total: it never
// fails, and an empty trade list yields a zeroed (not absent) result.
type Metrics struct {
	TotalTrades      int
	ProfitableTrades int
	WinRate          float64 // fraction, 0..1
	TotalPnL         float64
	TotalReturn      float64 // percent of initial balance
	AveragePnL       float64
	MaxDrawdown      float64 // percent, peak-to-trough of realized curve
	ProfitFactor     float64 // +Inf when no losing trades exist
	FinalBalance     float64
}

// ComputeMetrics rolls up the trade ledger against the initial and final
// cash balances.
func ComputeMetrics(trades []Trade, initialBalance, finalBalance float64) Metrics {
	m := Metrics{FinalBalance: finalBalance}
	if len(trades) == 0 {
		return m
	}

	var totalPnL, winSum, lossSum float64
	wins := 0
	for _, t := range trades {
		totalPnL += t.PnL
		if t.PnL > 0 {
			wins++
			winSum += t.PnL
		} else if t.PnL < 0 {
			lossSum += -t.PnL
		}
	}

	m.TotalTrades = len(trades)
	m.ProfitableTrades = wins
	m.WinRate = float64(wins) / float64(len(trades))
	m.TotalPnL = totalPnL
	m.TotalReturn = totalPnL / initialBalance * 100
	m.AveragePnL = totalPnL / float64(len(trades))
	m.MaxDrawdown = maxDrawdownPct(trades, initialBalance)

	if lossSum > 0 {
		m.ProfitFactor = winSum / lossSum
	} else {
		m.ProfitFactor = math.Inf(1)
	}

	return m
}

// maxDrawdownPct replays the realized balance curve: initial balance plus
// each trade's pnl in exit-time order. This curve uses realized outcomes
// only and is independent of the bar-level equity snapshots.
func maxDrawdownPct(trades []Trade, initialBalance float64) float64 {
	ordered := make([]Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitTime.Before(ordered[j].ExitTime)
	})

	balance := initialBalance
	peak := initialBalance
	maxDD := 0.0

	for _, t := range ordered {
		balance += t.PnL
		if balance > peak {
			peak = balance
		}
		if peak > 0 {
			if dd := (peak - balance) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD * 100
}
