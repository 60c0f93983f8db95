package backtest

import (
	"fmt"
	"time"

	"github.com/tradelab/smctrader/config"
	"github.com/tradelab/smctrader/market"
)

// LoadSeriesSet fetches every (symbol, timeframe) series the configuration
// requires from the provider. All data is materialized before the run
// begins; a missing or empty series fails the load.
func LoadSeriesSet(p market.Provider, cfg *config.Config, start, end time.Time) (SeriesSet, error) {
	set := make(SeriesSet, len(cfg.Symbols))

	for _, symbol := range cfg.Symbols {
		set[symbol] = make(map[string]*market.Series, len(cfg.Timeframes))
		for _, tf := range cfg.Timeframes {
			s, err := p.Fetch(symbol, tf, start, end)
			if err != nil {
				return nil, fmt.Errorf("load %s %s: %w", symbol, tf, err)
			}
			if s.Len() == 0 {
				return nil, fmt.Errorf("load %s %s: no candles in range", symbol, tf)
			}
			set[symbol][tf] = s
		}
	}
	return set, nil
}
