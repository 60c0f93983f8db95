// Package patterns detects smart-money price structure in candle windows:
// liquidity levels (swing highs/lows), order blocks, and fair value gaps.
// All detectors are pure functions over the window they are given.
package patterns

import "time"

// Direction classifies a structural signal. +1 bullish, -1 bearish.
type Direction int8

const (
	Bullish Direction = +1
	Bearish Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	}
	return "unknown"
}

// LevelKind classifies a liquidity level.
type LevelKind int8

const (
	Support LevelKind = iota
	Resistance
)

func (k LevelKind) String() string {
	if k == Resistance {
		return "resistance"
	}
	return "support"
}

// LiquidityLevel is a swing high or swing low, a zone where resting
// orders may cluster.
type LiquidityLevel struct {
	Kind  LevelKind
	Price float64
	Time  time.Time
}

// OrderBlock is a candle preceding a sharp reversal with outsized
// subsequent range. Bounds are the block candle's high/low.
type OrderBlock struct {
	Direction Direction
	Top       float64
	Bottom    float64
	Time      time.Time
}

// FairValueGap is a price discontinuity between the wicks of candles
// two bars apart. Time is the middle candle's timestamp.
type FairValueGap struct {
	Direction Direction
	Top       float64
	Bottom    float64
	Time      time.Time
}

// Snapshot is the combined detector output for one trailing window at one
// decision point. It is recomputed every bar and never cached across bars.
type Snapshot struct {
	Levels      []LiquidityLevel
	OrderBlocks []OrderBlock
	Gaps        []FairValueGap
}

// LatestOrderBlock returns the most recently detected order block.
func (s Snapshot) LatestOrderBlock() (OrderBlock, bool) {
	if len(s.OrderBlocks) == 0 {
		return OrderBlock{}, false
	}
	return s.OrderBlocks[len(s.OrderBlocks)-1], true
}

// LatestGap returns the most recently detected fair value gap.
func (s Snapshot) LatestGap() (FairValueGap, bool) {
	if len(s.Gaps) == 0 {
		return FairValueGap{}, false
	}
	return s.Gaps[len(s.Gaps)-1], true
}

// Empty reports whether no detector produced a hit.
func (s Snapshot) Empty() bool {
	return len(s.Levels) == 0 && len(s.OrderBlocks) == 0 && len(s.Gaps) == 0
}
