// Package risk provides position sizing and pre-open limit checks for the
// backtest engine.
package risk

// Inputs describes one prospective position open. Percentages are
// fractions (0.01 = 1%). Sign is +1 for long, -1 for short.
type Inputs struct {
	Balance     float64 // cash balance at open time (compounding base)
	Entry       float64
	PositionPct float64
	StopPct     float64
	TargetPct   float64
	Sign        int
}

// Result holds the sized order: the quote-currency cost reserved from
// cash, the base-asset quantity, and the fixed exit levels. Stop and
// target are set once at open time and never recalculated.
type Result struct {
	QuoteSize float64
	Quantity  float64
	Stop      float64
	Target    float64
}

// Calculate sizes a position against the current balance. The quote size
// compounds with the account rather than being fixed to the initial
// balance.
func Calculate(in Inputs) Result {
	quote := in.Balance * in.PositionPct

	r := Result{QuoteSize: quote}
	if in.Entry > 0 {
		r.Quantity = quote / in.Entry
	}

	s := float64(in.Sign)
	r.Stop = in.Entry * (1 - s*in.StopPct)
	r.Target = in.Entry * (1 + s*in.TargetPct)
	return r
}
