package risk

import "fmt"

// Rejection codes returned by CheckOpen.
const (
	CodeSymbolBusy   = "SYMBOL_BUSY"
	CodeMaxPositions = "MAX_POSITIONS"
	CodeNoFunds      = "INSUFFICIENT_FUNDS"
)

// Limits are the exposure constraints enforced before every open.
type Limits struct {
	MaxOpenPositions int // summed across all symbols
}

// OpenState is the ledger state relevant to one open decision.
type OpenState struct {
	OpenPositions     int
	SymbolHasPosition bool
	Cash              float64
}

// Decision is the explicit outcome of an open check. A disallowed open is
// an observable rejection, not a silent drop.
type Decision struct {
	Allowed bool
	Code    string
	Reason  string
}

// CheckOpen evaluates whether a position costing cost may be opened given
// the current ledger state.
func CheckOpen(l Limits, st OpenState, cost float64) Decision {
	if st.SymbolHasPosition {
		return Decision{Code: CodeSymbolBusy, Reason: "symbol already has an open position"}
	}
	if st.OpenPositions >= l.MaxOpenPositions {
		return Decision{
			Code:   CodeMaxPositions,
			Reason: fmt.Sprintf("open positions %d >= max %d", st.OpenPositions, l.MaxOpenPositions),
		}
	}
	if cost > st.Cash {
		return Decision{
			Code:   CodeNoFunds,
			Reason: fmt.Sprintf("cost %.2f exceeds cash %.2f", cost, st.Cash),
		}
	}
	return Decision{Allowed: true}
}
