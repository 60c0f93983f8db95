// Package journal persists the audit trail of a backtest run: one record
// per closed trade and one equity snapshot per processed bar.
package journal

import "time"

// TradeRecord is an immutable closed-position record.
type TradeRecord struct {
	TradeID    string
	Symbol     string
	Side       string // "long" or "short"
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	EntryTime  time.Time
	ExitTime   time.Time
	PnL        float64
	PnLPercent float64
	Reason     string
}

// EquitySnapshot is cash plus the mark-to-market value of open positions
// at one bar.
type EquitySnapshot struct {
	Time   time.Time
	Cash   float64
	Equity float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
