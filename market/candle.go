package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) candlestick data
// for a single bar. Candles are immutable once loaded.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// Bearish reports whether the candle closed below its open.
func (c Candle) Bearish() bool {
	return c.Close < c.Open
}

// RangeRatio returns the bar's high-low range relative to its low.
// Zero when the low is not positive (degenerate input).
func (c Candle) RangeRatio() float64 {
	if c.Low <= 0 {
		return 0
	}
	return (c.High - c.Low) / c.Low
}
