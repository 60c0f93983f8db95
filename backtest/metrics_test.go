package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tradeWithPnL(i int, pnl float64) Trade {
	exit := t0.Add(time.Duration(i) * time.Hour)
	return Trade{
		ID:        "T" + string(rune('0'+i)),
		Symbol:    "BTCUSDT",
		Side:      Long,
		PnL:       pnl,
		EntryTime: exit.Add(-time.Hour),
		ExitTime:  exit,
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil, 10_000, 10_000)

	assert.Equal(t, 0, m.TotalTrades)
	assert.Equal(t, 0, m.ProfitableTrades)
	assert.Equal(t, 0.0, m.WinRate)
	assert.Equal(t, 0.0, m.TotalPnL)
	assert.Equal(t, 0.0, m.TotalReturn)
	assert.Equal(t, 0.0, m.AveragePnL)
	assert.Equal(t, 0.0, m.MaxDrawdown)
	assert.Equal(t, 0.0, m.ProfitFactor)
	assert.Equal(t, 10_000.0, m.FinalBalance)
}

func TestComputeMetricsRollup(t *testing.T) {
	trades := []Trade{
		tradeWithPnL(1, 100),
		tradeWithPnL(2, -200),
		tradeWithPnL(3, 50),
		tradeWithPnL(4, -50),
	}

	m := ComputeMetrics(trades, 10_000, 9_900)

	assert.Equal(t, 4, m.TotalTrades)
	assert.Equal(t, 2, m.ProfitableTrades)
	assert.InDelta(t, 0.5, m.WinRate, 1e-12)
	assert.InDelta(t, -100, m.TotalPnL, 1e-12)
	assert.InDelta(t, -1.0, m.TotalReturn, 1e-12) // -100 / 10000 * 100
	assert.InDelta(t, -25, m.AveragePnL, 1e-12)
	assert.InDelta(t, 150.0/250.0, m.ProfitFactor, 1e-12)
	assert.Equal(t, 9_900.0, m.FinalBalance)
}

func TestProfitFactorInfiniteWithoutLosses(t *testing.T) {
	trades := []Trade{tradeWithPnL(1, 100), tradeWithPnL(2, 25)}

	m := ComputeMetrics(trades, 10_000, 10_125)
	assert.True(t, math.IsInf(m.ProfitFactor, 1))
}

func TestMaxDrawdownFromRealizedCurve(t *testing.T) {
	// Curve off 1000: 1100 → 900 → 950. Peak 1100, trough 900:
	// (1100-900)/1100 ≈ 18.18%.
	trades := []Trade{
		tradeWithPnL(1, 100),
		tradeWithPnL(2, -200),
		tradeWithPnL(3, 50),
	}

	m := ComputeMetrics(trades, 1_000, 950)
	assert.InDelta(t, 200.0/1100.0*100, m.MaxDrawdown, 1e-9)
}

func TestMaxDrawdownOrdersByExitTime(t *testing.T) {
	// Same trades appended out of order must produce the same drawdown:
	// the realized curve follows exit time, not append order.
	trades := []Trade{
		tradeWithPnL(3, 50),
		tradeWithPnL(1, 100),
		tradeWithPnL(2, -200),
	}

	m := ComputeMetrics(trades, 1_000, 950)
	assert.InDelta(t, 200.0/1100.0*100, m.MaxDrawdown, 1e-9)
}

func TestMaxDrawdownNeverNegative(t *testing.T) {
	trades := []Trade{tradeWithPnL(1, 100), tradeWithPnL(2, 200)}

	m := ComputeMetrics(trades, 1_000, 1_300)
	assert.GreaterOrEqual(t, m.MaxDrawdown, 0.0)
	assert.Equal(t, 0.0, m.MaxDrawdown)
}
