package costbasis

import "time"

// Result is the cost basis snapshot of a history under one method.
type Result struct {
	Method   CostBasisMethod
	Currency string
	AsOf     time.Time
	Price    Money // current spot price used for valuation

	TotalCostBasis        Money
	AverageCost           Money
	UnrealizedGain        Money
	UnrealizedGainPercent Percent
	RealizedGains         Money
	RemainingBTC          Quantity

	PotentialTaxLiabilityShortTerm Money
	PotentialTaxLiabilityLongTerm  Money

	RealizedShortTerm   Money
	RealizedLongTerm    Money
	UnrealizedShortTerm Money
	UnrealizedLongTerm  Money

	// UncoveredBTC is the bitcoin disposed of without a matching acquisition,
	// UncoveredGains the part of RealizedGains it accounts for.
	UncoveredBTC   Quantity
	UncoveredGains Money

	Lots        []Lot
	Disposals   []Disposal
	Diagnostics Diagnostics

	clock bool // AsOf was read from the clock
}

// MarketValue returns the value of the remaining bitcoin at the current price.
func (r *Result) MarketValue() Money { return r.Price.Mul(r.RemainingBTC) }

// MarshalJSON writes the result with a fixed field order, so that two
// identical calculations produce identical bytes. AsOf is only written when
// the calculator pinned it.
func (r *Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("method", r.Method)
	w.Append("currency", r.Currency)
	if !r.clock {
		w.Time("asOf", r.AsOf)
	}
	w.Append("price", r.Price)
	w.Append("totalCostBasis", r.TotalCostBasis)
	w.Append("averageCost", r.AverageCost)
	w.Append("unrealizedGain", r.UnrealizedGain)
	w.Append("unrealizedGainPercent", r.UnrealizedGainPercent)
	w.Append("realizedGains", r.RealizedGains)
	w.Append("remainingBtc", r.RemainingBTC)
	w.Append("potentialTaxLiabilityShortTerm", r.PotentialTaxLiabilityShortTerm)
	w.Append("potentialTaxLiabilityLongTerm", r.PotentialTaxLiabilityLongTerm)
	w.Append("realizedShortTerm", r.RealizedShortTerm)
	w.Append("realizedLongTerm", r.RealizedLongTerm)
	w.Append("unrealizedShortTerm", r.UnrealizedShortTerm)
	w.Append("unrealizedLongTerm", r.UnrealizedLongTerm)
	w.Append("uncoveredBtc", r.UncoveredBTC)
	w.Append("uncoveredGains", r.UncoveredGains)
	w.Append("lots", nonNil(r.Lots))
	w.Append("disposals", nonNil(r.Disposals))
	w.Append("diagnostics", nonNil(r.Diagnostics))
	return w.MarshalJSON()
}

