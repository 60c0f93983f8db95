package backtest

import (
	"fmt"
	"time"

	"github.com/tradelab/smctrader/config"
	"github.com/tradelab/smctrader/internal/id"
	"github.com/tradelab/smctrader/journal"
	"github.com/tradelab/smctrader/market"
	"github.com/tradelab/smctrader/patterns"
	"github.com/tradelab/smctrader/risk"
)

const (
	// maxLookback caps the trailing window handed to the analyzer.
	maxLookback = 100

	// openVotes is the minimum directional vote count to open a position.
	openVotes = 2
)

// SeriesSet holds the pre-fetched historical data for a run, keyed by
// symbol then timeframe.
type SeriesSet map[string]map[string]*market.Series

// Engine replays detected patterns against historical candles: it drives
// a virtual clock over the primary timeframe, aggregates directional
// votes across timeframes, and manages positions, cash, and the trade
// ledger. Single-threaded; a run is one deterministic batch computation.
type Engine struct {
	cfg      *config.Config
	analyzer *patterns.Analyzer
	limits   risk.Limits
	journal  journal.Journal // optional, nil disables persistence

	cash       float64
	positions  map[string]*Position
	trades     []Trade
	balances   []BalanceSnapshot
	rejections []Rejection
}

// NewEngine builds an engine from validated configuration. The journal is
// optional; pass nil to keep the run entirely in memory.
func NewEngine(cfg *config.Config, j journal.Journal) *Engine {
	return &Engine{
		cfg: cfg,
		analyzer: patterns.NewAnalyzer(patterns.Config{
			LiquidityThreshold: cfg.Patterns.LiquidityThreshold,
			ImbalanceThreshold: cfg.Patterns.ImbalanceThreshold,
		}),
		limits:    risk.Limits{MaxOpenPositions: cfg.Trading.MaxPositions},
		journal:   j,
		cash:      cfg.Trading.InitialBalance,
		positions: make(map[string]*Position),
	}
}

// Run executes the simulation over the supplied series set and returns
// the full result. It fails only when a configured (symbol, timeframe)
// series is absent or empty; everything else is handled in-run.
func (e *Engine) Run(data SeriesSet) (*Result, error) {
	if err := e.validate(data); err != nil {
		return nil, err
	}

	primaryTF := e.cfg.PrimaryTimeframe()

	// Symbols are processed sequentially in configuration order; the
	// shared cash balance and open-position count carry across symbol
	// loops, so earlier symbols win contention for the position limit.
	for _, symbol := range e.cfg.Symbols {
		primary := data[symbol][primaryTF]

		for _, bar := range primary.Candles {
			e.processBar(data, symbol, bar)
		}
	}

	e.closeAllAtEnd(data, primaryTF)

	res := &Result{
		InitialBalance: e.cfg.Trading.InitialBalance,
		FinalBalance:   e.cash,
		Trades:         e.trades,
		Balances:       e.balances,
		Rejections:     e.rejections,
	}
	res.Metrics = ComputeMetrics(e.trades, e.cfg.Trading.InitialBalance, e.cash)
	return res, nil
}

func (e *Engine) validate(data SeriesSet) error {
	for _, symbol := range e.cfg.Symbols {
		for _, tf := range e.cfg.Timeframes {
			s, ok := data[symbol][tf]
			if !ok || s == nil || s.Len() == 0 {
				return fmt.Errorf("missing required series for %s %s", symbol, tf)
			}
		}
	}
	return nil
}

// processBar handles one primary-timeframe bar for one symbol: analyze
// every timeframe at this point in time, manage the open position if any,
// otherwise consider an open, then snapshot equity.
func (e *Engine) processBar(data SeriesSet, symbol string, bar market.Candle) {
	sig := e.collectVotes(data, symbol, bar.Time)
	price := bar.Close

	// Exits are evaluated before any new open; a bar that closes a
	// position never opens a new one.
	if pos, ok := e.positions[symbol]; ok {
		e.checkExit(pos, price, bar.Time)
	} else if sig.BuyVotes >= openVotes {
		e.tryOpen(symbol, Long, price, bar.Time, sig)
	} else if sig.SellVotes >= openVotes {
		e.tryOpen(symbol, Short, price, bar.Time, sig)
	}

	e.snapshotEquity(bar.Time, price)
}

// collectVotes recomputes the pattern snapshot for every configured
// timeframe at the given instant and tallies directional votes. Only the
// most recent order block and most recent fair value gap of each
// timeframe vote, one vote each.
func (e *Engine) collectVotes(data SeriesSet, symbol string, now time.Time) SignalContext {
	sig := SignalContext{Snapshots: make(map[string]patterns.Snapshot, len(e.cfg.Timeframes))}

	for _, tf := range e.cfg.Timeframes {
		s := data[symbol][tf]
		idx := s.NearestIdx(now)
		if idx < 0 {
			continue
		}

		lookback := idx + 1
		if lookback > maxLookback {
			lookback = maxLookback
		}

		snap := e.analyzer.Analyze(s.Window(idx, lookback))
		sig.Snapshots[tf] = snap

		if ob, ok := snap.LatestOrderBlock(); ok {
			if ob.Direction == patterns.Bullish {
				sig.BuyVotes++
			} else {
				sig.SellVotes++
			}
		}
		if gap, ok := snap.LatestGap(); ok {
			if gap.Direction == patterns.Bullish {
				sig.BuyVotes++
			} else {
				sig.SellVotes++
			}
		}
	}
	return sig
}

// checkExit closes the position when the bar's close crosses its stop or
// target. Stop-loss is checked first: if both levels were somehow crossed
// in the same bar, the worse outcome wins.
func (e *Engine) checkExit(pos *Position, price float64, now time.Time) {
	switch pos.Side {
	case Long:
		if price <= pos.StopLoss {
			e.closePosition(pos, price, now, ReasonStopLoss)
		} else if price >= pos.TakeProfit {
			e.closePosition(pos, price, now, ReasonTakeProfit)
		}
	case Short:
		if price >= pos.StopLoss {
			e.closePosition(pos, price, now, ReasonStopLoss)
		} else if price <= pos.TakeProfit {
			e.closePosition(pos, price, now, ReasonTakeProfit)
		}
	}
}

// tryOpen sizes and opens a position unless a limit rejects it. A
// rejected open is recorded, never silently dropped.
func (e *Engine) tryOpen(symbol string, side Side, price float64, now time.Time, sig SignalContext) {
	sized := risk.Calculate(risk.Inputs{
		Balance:     e.cash,
		Entry:       price,
		PositionPct: e.cfg.Trading.PositionSize,
		StopPct:     e.cfg.Trading.StopLossPercent,
		TargetPct:   e.cfg.Trading.TakeProfitPercent,
		Sign:        int(side),
	})

	_, busy := e.positions[symbol]
	dec := risk.CheckOpen(e.limits, risk.OpenState{
		OpenPositions:     len(e.positions),
		SymbolHasPosition: busy,
		Cash:              e.cash,
	}, sized.QuoteSize)

	if !dec.Allowed {
		e.rejections = append(e.rejections, Rejection{
			Time:   now,
			Symbol: symbol,
			Side:   side,
			Code:   dec.Code,
			Reason: dec.Reason,
		})
		return
	}

	e.cash -= sized.QuoteSize
	e.positions[symbol] = &Position{
		ID:           id.New(),
		Symbol:       symbol,
		Side:         side,
		EntryPrice:   price,
		StopLoss:     sized.Stop,
		TakeProfit:   sized.Target,
		Quantity:     sized.Quantity,
		ReservedCost: sized.QuoteSize,
		OpenedAt:     now,
		Context:      sig,
	}
}

// closePosition converts a position into a trade: pnl follows the side
// sign rule, cash receives the reserved cost plus pnl.
func (e *Engine) closePosition(pos *Position, exit float64, now time.Time, reason CloseReason) {
	pnl := float64(pos.Side) * (exit - pos.EntryPrice) * pos.Quantity
	e.cash += pos.ReservedCost + pnl

	pnlPct := 0.0
	if pos.ReservedCost > 0 {
		pnlPct = pnl / pos.ReservedCost * 100
	}

	trade := Trade{
		ID:         pos.ID,
		Symbol:     pos.Symbol,
		Side:       pos.Side,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exit,
		Quantity:   pos.Quantity,
		PnL:        pnl,
		PnLPercent: pnlPct,
		EntryTime:  pos.OpenedAt,
		ExitTime:   now,
		Reason:     reason,
		Context:    pos.Context,
	}
	e.trades = append(e.trades, trade)
	delete(e.positions, pos.Symbol)

	if e.journal != nil {
		_ = e.journal.RecordTrade(journal.TradeRecord{
			TradeID:    trade.ID,
			Symbol:     trade.Symbol,
			Side:       trade.Side.String(),
			Quantity:   trade.Quantity,
			EntryPrice: trade.EntryPrice,
			ExitPrice:  trade.ExitPrice,
			EntryTime:  trade.EntryTime,
			ExitTime:   trade.ExitTime,
			PnL:        trade.PnL,
			PnLPercent: trade.PnLPercent,
			Reason:     string(trade.Reason),
		})
	}
}

// snapshotEquity marks every open position at the close of the bar being
// processed. With several symbols and unsynchronized bars this is an
// approximation: positions in other symbols are valued at this symbol's
// price. Known limitation of the replay model.
func (e *Engine) snapshotEquity(now time.Time, price float64) {
	equity := e.cash
	for _, pos := range e.positions {
		equity += pos.Quantity * price
	}

	e.balances = append(e.balances, BalanceSnapshot{Time: now, Cash: e.cash, Equity: equity})

	if e.journal != nil {
		_ = e.journal.RecordEquity(journal.EquitySnapshot{Time: now, Cash: e.cash, Equity: equity})
	}
}

// closeAllAtEnd force-closes every surviving position at its own primary
// series' final candle close.
func (e *Engine) closeAllAtEnd(data SeriesSet, primaryTF string) {
	for _, symbol := range e.cfg.Symbols {
		pos, ok := e.positions[symbol]
		if !ok {
			continue
		}
		last := data[symbol][primaryTF].Last()
		e.closePosition(pos, last.Close, last.Time, ReasonEndOfRun)
	}
}
