package market

import "time"

// Provider supplies historical candle series. Implementations must return
// candles strictly ascending by timestamp. The zero time for start or end
// means "unbounded" on that side.
type Provider interface {
	Fetch(symbol, timeframe string, start, end time.Time) (*Series, error)
}
