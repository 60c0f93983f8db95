package backtest

import (
	"time"

	"github.com/tradelab/smctrader/patterns"
)

// Side: +1 long, -1 short
type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// CloseReason records why a position was converted into a trade.
type CloseReason string

const (
	ReasonStopLoss   CloseReason = "StopLoss"
	ReasonTakeProfit CloseReason = "TakeProfit"
	ReasonEndOfRun   CloseReason = "EndOfRun"
)

// SignalContext captures the multi-timeframe evidence behind an open
// decision: the per-timeframe snapshots and the resulting vote counts.
type SignalContext struct {
	BuyVotes  int
	SellVotes int
	Snapshots map[string]patterns.Snapshot // keyed by timeframe
}

// Position is one open holding. At most one Position exists per symbol,
// and the count across symbols never exceeds the configured maximum.
// Stop and target are fixed at open time.
type Position struct {
	ID           string
	Symbol       string
	Side         Side
	EntryPrice   float64
	StopLoss     float64
	TakeProfit   float64
	Quantity     float64 // base asset
	ReservedCost float64 // quote asset debited from cash at open
	OpenedAt     time.Time
	Context      SignalContext
}

// Trade is the immutable record a closed Position becomes.
type Trade struct {
	ID         string
	Symbol     string
	Side       Side
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	PnLPercent float64
	EntryTime  time.Time
	ExitTime   time.Time
	Reason     CloseReason
	Context    SignalContext
}

// Rejection is the observable outcome of an open signal the engine could
// not act on. The position is still not opened; the decision just leaves
// a trace instead of being silently dropped.
type Rejection struct {
	Time   time.Time
	Symbol string
	Side   Side
	Code   string
	Reason string
}

// BalanceSnapshot is recorded once per processed bar: cash plus the
// mark-to-market value of all open positions.
type BalanceSnapshot struct {
	Time   time.Time
	Cash   float64
	Equity float64
}
