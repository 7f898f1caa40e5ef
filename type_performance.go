package costbasis

import (
	"math"

	"github.com/shopspring/decimal"
)

// Performance summarizes a monthly series.
type Performance struct {
	Start, End       Month
	Value, CostBasis Money // at End

	CumulativeReturn Percent // gain over cost basis at End
	AnnualizedReturn Percent // equal to CumulativeReturn for less than a year

	AllTimeHigh      Money
	AllTimeHighMonth Month
	MaxDrawdown      Percent // largest fall from a previous high, positive
	CurrentDrawdown  Percent // fall of End from the all time high, positive
}

// Change returns the unrealized gain at the end of the series.
func (p Performance) Change() Money { return p.Value.Sub(p.CostBasis) }

// NewPerformance computes the performance of a monthly series. The zero
// Performance is returned for an empty series.
func NewPerformance(points []MonthlyPoint) Performance {
	if len(points) == 0 {
		return Performance{}
	}
	last := points[len(points)-1]
	perf := Performance{
		Start:     points[0].Month,
		End:       last.Month,
		Value:     last.PortfolioValue,
		CostBasis: last.CostBasis,
	}
	perf.CumulativeReturn = percentOf(perf.Change(), perf.CostBasis)
	perf.AnnualizedReturn = annualize(perf.CumulativeReturn, len(points))

	peak := points[0].PortfolioValue
	perf.AllTimeHigh, perf.AllTimeHighMonth = peak, points[0].Month
	for _, p := range points {
		if p.PortfolioValue.GreaterThan(peak) {
			peak = p.PortfolioValue
			perf.AllTimeHigh, perf.AllTimeHighMonth = peak, p.Month
		}
		if dd := percentOf(peak.Sub(p.PortfolioValue), peak); dd.Decimal().GreaterThan(perf.MaxDrawdown.Decimal()) {
			perf.MaxDrawdown = dd
		}
	}
	perf.CurrentDrawdown = percentOf(perf.AllTimeHigh.Sub(last.PortfolioValue), perf.AllTimeHigh)
	return perf
}

// annualize converts a return over a number of months into a yearly rate.
func annualize(cumulative Percent, months int) Percent {
	if months < 12 {
		return cumulative
	}
	growth := 1 + cumulative.Decimal().InexactFloat64()/100
	if growth <= 0 {
		return P(-100)
	}
	rate := math.Pow(growth, 12/float64(months)) - 1
	return Percent{value: decimal.NewFromFloat(rate * 100).Round(4)}
}
