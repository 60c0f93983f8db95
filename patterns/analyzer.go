package patterns

import "github.com/tradelab/smctrader/market"

// DefaultSwingWindow is the number of candles that must sit strictly below
// a swing high (or above a swing low) on each side for a liquidity level.
const DefaultSwingWindow = 5

// Config holds the detector thresholds. Thresholds are relative price
// ratios, e.g. 0.02 for 2%.
type Config struct {
	SwingWindow        int
	LiquidityThreshold float64
	ImbalanceThreshold float64
}

// Analyzer runs the three structural detectors over candle windows.
// It is stateless and safe for reuse across series and bars.
type Analyzer struct {
	cfg Config
}

func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.SwingWindow <= 0 {
		cfg.SwingWindow = DefaultSwingWindow
	}
	return &Analyzer{cfg: cfg}
}

// Analyze returns the combined snapshot of all three detectors over the
// window. Windows shorter than a detector's minimum yield empty results
// for that detector, never an error.
func (a *Analyzer) Analyze(candles []market.Candle) Snapshot {
	return Snapshot{
		Levels:      a.LiquidityLevels(candles),
		OrderBlocks: a.OrderBlocks(candles),
		Gaps:        a.FairValueGaps(candles),
	}
}

// LiquidityLevels finds swing highs (resistance) and swing lows (support).
// A candle at index i is a swing high when its high strictly exceeds the
// highs of the SwingWindow candles on both sides; swing lows are symmetric
// on lows. Candles within SwingWindow of either boundary are never
// evaluated, so they never produce levels.
func (a *Analyzer) LiquidityLevels(candles []market.Candle) []LiquidityLevel {
	w := a.cfg.SwingWindow
	if len(candles) < 2*w+1 {
		return nil
	}

	var levels []LiquidityLevel
	for i := w; i < len(candles)-w; i++ {
		if isSwingHigh(candles, i, w) {
			levels = append(levels, LiquidityLevel{
				Kind:  Resistance,
				Price: candles[i].High,
				Time:  candles[i].Time,
			})
		}
		if isSwingLow(candles, i, w) {
			levels = append(levels, LiquidityLevel{
				Kind:  Support,
				Price: candles[i].Low,
				Time:  candles[i].Time,
			})
		}
	}
	return levels
}

func isSwingHigh(candles []market.Candle, i, w int) bool {
	for j := i - w; j <= i+w; j++ {
		if j == i {
			continue
		}
		if candles[i].High <= candles[j].High {
			return false
		}
	}
	return true
}

func isSwingLow(candles []market.Candle, i, w int) bool {
	for j := i - w; j <= i+w; j++ {
		if j == i {
			continue
		}
		if candles[i].Low >= candles[j].Low {
			return false
		}
	}
	return true
}

// OrderBlocks scans consecutive candle pairs. A bullish block is the
// bullish candle i whose successor is bearish with a relative range
// strictly above LiquidityThreshold; the bearish block is the mirror.
// Bounds come from candle i, not the reversal candle.
func (a *Analyzer) OrderBlocks(candles []market.Candle) []OrderBlock {
	if len(candles) < 2 {
		return nil
	}

	var blocks []OrderBlock
	for i := 0; i < len(candles)-1; i++ {
		cur, next := candles[i], candles[i+1]
		if next.RangeRatio() <= a.cfg.LiquidityThreshold {
			continue
		}

		switch {
		case cur.Bullish() && next.Bearish():
			blocks = append(blocks, OrderBlock{
				Direction: Bullish,
				Top:       cur.High,
				Bottom:    cur.Low,
				Time:      cur.Time,
			})
		case cur.Bearish() && next.Bullish():
			blocks = append(blocks, OrderBlock{
				Direction: Bearish,
				Top:       cur.High,
				Bottom:    cur.Low,
				Time:      cur.Time,
			})
		}
	}
	return blocks
}

// FairValueGaps finds three-candle imbalances. A bullish gap exists when
// the low of candle i+1 sits strictly above the high of candle i-1 and the
// gap relative to that high strictly exceeds ImbalanceThreshold. The
// bearish gap mirrors on the opposite wicks.
func (a *Analyzer) FairValueGaps(candles []market.Candle) []FairValueGap {
	if len(candles) < 3 {
		return nil
	}

	var gaps []FairValueGap
	for i := 1; i < len(candles)-1; i++ {
		prev, next := candles[i-1], candles[i+1]

		if next.Low > prev.High && prev.High > 0 {
			if (next.Low-prev.High)/prev.High > a.cfg.ImbalanceThreshold {
				gaps = append(gaps, FairValueGap{
					Direction: Bullish,
					Top:       next.Low,
					Bottom:    prev.High,
					Time:      candles[i].Time,
				})
			}
		}

		if next.High < prev.Low && next.High > 0 {
			if (prev.Low-next.High)/next.High > a.cfg.ImbalanceThreshold {
				gaps = append(gaps, FairValueGap{
					Direction: Bearish,
					Top:       prev.Low,
					Bottom:    next.High,
					Time:      candles[i].Time,
				})
			}
		}
	}
	return gaps
}
