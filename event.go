package costbasis

import "time"

// Kind discriminates normalized events.
type Kind int

const (
	// Neutral events do not move bitcoin; they may still carry a price.
	Neutral Kind = iota
	// Acquire adds a lot to the ledger.
	Acquire
	// Dispose consumes lots from the ledger.
	Dispose
)

func (k Kind) String() string {
	switch k {
	case Acquire:
		return "acquire"
	case Dispose:
		return "dispose"
	default:
		return "neutral"
	}
}

// Event is a normalized transaction. Whatever the raw schema, every row the
// ledger can use is turned into exactly one Event.
type Event struct {
	Date     time.Time // the only ordering key
	Kind     Kind
	Type     string   // raw type, for display
	Amount   Quantity // BTC moved, strictly positive for Acquire and Dispose
	Cost     Money    // Acquire: total cost, fees included
	Proceeds Money    // Dispose: fiat received, or spot value for non-sale disposals
	Price    Money    // unit price at the time of the event, zero if unknown
	Fee      Money    // already folded into Cost or Proceeds
	Row      int      // index of the raw row
}

// unitSalePrice returns the proceeds per BTC disposed.
func (e Event) unitSalePrice() Money {
	if e.Amount.IsZero() {
		return e.Proceeds
	}
	return e.Proceeds.Div(e.Amount)
}
