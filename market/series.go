package market

import (
	"fmt"
	"sort"
	"time"
)

// Series is an ordered candle sequence for one (symbol, timeframe) pair.
// Candles are strictly ascending by timestamp. The unix-time index is built
// once at construction so nearest-timestamp lookups are binary searches
// rather than per-bar scans.
type Series struct {
	Symbol    string
	Timeframe string
	Candles   []Candle

	times []int64 // unix seconds, parallel to Candles
}

// NewSeries validates ordering and builds the timestamp index.
func NewSeries(symbol, timeframe string, candles []Candle) (*Series, error) {
	times := make([]int64, len(candles))
	for i, c := range candles {
		if i > 0 && !c.Time.After(candles[i-1].Time) {
			return nil, fmt.Errorf("series %s %s: candle %d (%s) not after previous (%s)",
				symbol, timeframe, i, c.Time, candles[i-1].Time)
		}
		times[i] = c.Time.Unix()
	}
	return &Series{
		Symbol:    symbol,
		Timeframe: timeframe,
		Candles:   candles,
		times:     times,
	}, nil
}

func (s *Series) Len() int { return len(s.Candles) }

// Last returns the final candle of the series.
func (s *Series) Last() Candle {
	return s.Candles[len(s.Candles)-1]
}

// NearestIdx returns the index of the candle whose timestamp is closest
// to t. Ties go to the earlier candle. Returns -1 for an empty series.
func (s *Series) NearestIdx(t time.Time) int {
	n := len(s.times)
	if n == 0 {
		return -1
	}

	ts := t.Unix()
	i := sort.Search(n, func(i int) bool { return s.times[i] >= ts })

	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if ts-s.times[i-1] <= s.times[i]-ts {
		return i - 1
	}
	return i
}

// Window returns the trailing window ending at idx (inclusive), at most
// lookback candles long. The slice aliases the series; callers treat it
// as read-only.
func (s *Series) Window(idx, lookback int) []Candle {
	if idx < 0 || idx >= len(s.Candles) || lookback <= 0 {
		return nil
	}
	start := idx - lookback + 1
	if start < 0 {
		start = 0
	}
	return s.Candles[start : idx+1]
}
