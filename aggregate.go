package costbasis

import (
	"time"
)

// MonthlyPoint is the state of the portfolio at the end of a month.
type MonthlyPoint struct {
	Month          Month
	CumulativeBTC  Quantity // net bitcoin flow since the first event, may be negative with missing history
	CostBasis      Money
	BTCPrice       Money // last known price, the live price for the current month
	PortfolioValue Money // max(0, CumulativeBTC) * BTCPrice

	MA3       *Money // 3-month trailing mean of PortfolioValue, nil if not enough months
	MADynamic *Money // trailing mean over DynamicWindow months, nil if not enough months
}

func (p MonthlyPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", p.Month.String())
	w.Append("portfolioValue", p.PortfolioValue)
	w.Append("costBasis", p.CostBasis)
	w.Append("cumulativeBTC", p.CumulativeBTC)
	w.Append("btcPrice", p.BTCPrice)
	w.Append("ma3", p.MA3)
	w.Append("maDynamic", p.MADynamic)
	return w.MarshalJSON()
}

// DynamicWindow returns the moving average window for a series of n months:
// half the history, between 2 and 6 months.
func DynamicWindow(n int) int {
	return min(6, max(2, n/2))
}

// Aggregate walks the events month by month, from the month of the first
// event to the month of asOf. Months without activity carry the state of the
// previous month. The month of asOf is valued at currentPrice. Cost basis
// follows method.
func (c *Calculator) Aggregate(method CostBasisMethod, events []Event, currentPrice Money) ([]MonthlyPoint, error) {
	if !currentPrice.IsPositive() {
		return nil, ErrNoPriceAvailable
	}
	if len(events) == 0 {
		return nil, nil
	}
	events = chronological(events)
	asOf := c.asOf()
	current := MonthOf(asOf)
	first, last := MonthOf(events[0].Date), current
	if l := MonthOf(events[len(events)-1].Date); l.After(last) {
		last = l
	}

	l := newLedger(method, c.Currency)
	var held Quantity
	price := M(0, c.Currency)
	var points []MonthlyPoint
	next := 0
	for m := first; !m.After(last); m = m.Add(1) {
		for ; next < len(events) && events[next].Date.Before(m.End()); next++ {
			e := events[next]
			l.apply(e)
			switch e.Kind {
			case Acquire:
				held = held.Add(e.Amount)
			case Dispose:
				held = held.Sub(e.Amount)
			}
			if e.Price.IsPositive() {
				price = e.Price.In(c.Currency)
			}
		}
		p := MonthlyPoint{
			Month:         m,
			CumulativeBTC: held,
			CostBasis:     l.costBasis(),
			BTCPrice:      price,
		}
		if m == current {
			p.BTCPrice = currentPrice.In(c.Currency)
		}
		p.PortfolioValue = p.BTCPrice.Mul(held.NonNegative())
		points = append(points, p)
	}
	movingAverages(points)
	return points, nil
}

// movingAverages sets the trailing means of each point. A point whose window
// reaches before the first month has no mean.
func movingAverages(points []MonthlyPoint) {
	window := DynamicWindow(len(points))
	for i := range points {
		points[i].MA3 = trailingMean(points, i, 3)
		points[i].MADynamic = trailingMean(points, i, window)
	}
}

func trailingMean(points []MonthlyPoint, i, window int) *Money {
	if window <= 0 || i+1 < window {
		return nil
	}
	sum := points[i].PortfolioValue
	for j := i - window + 1; j < i; j++ {
		sum = sum.Add(points[j].PortfolioValue)
	}
	mean := sum.Div(Q(window))
	return &mean
}

// YearlyPoint summarizes the activity of a calendar year.
type YearlyPoint struct {
	Year              int
	Acquired          Quantity
	Disposed          Quantity
	Invested          Money // cost of acquisitions
	Proceeds          Money
	RealizedShortTerm Money
	RealizedLongTerm  Money
}

// RealizedGains returns the gains realized during the year.
func (y YearlyPoint) RealizedGains() Money { return y.RealizedShortTerm.Add(y.RealizedLongTerm) }

// Yearly returns one point per calendar year, from the year of the first
// event to the year of the last one, with gains matched under method. Events
// are replayed by date whatever their order.
func (c *Calculator) Yearly(method CostBasisMethod, events []Event) []YearlyPoint {
	if len(events) == 0 {
		return nil
	}
	events = chronological(events)
	first := events[0].Date.UTC().Year()
	years := make([]YearlyPoint, events[len(events)-1].Date.UTC().Year()-first+1)
	zero := M(0, c.Currency)
	for i := range years {
		years[i] = YearlyPoint{Year: first + i, Invested: zero, Proceeds: zero, RealizedShortTerm: zero, RealizedLongTerm: zero}
	}

	l := newLedger(method, c.Currency)
	for _, e := range events {
		y := &years[e.Date.UTC().Year()-first]
		before := len(l.disposals)
		l.apply(e)
		switch e.Kind {
		case Acquire:
			y.Acquired = y.Acquired.Add(e.Amount)
			y.Invested = y.Invested.Add(e.Cost)
		case Dispose:
			y.Disposed = y.Disposed.Add(e.Amount)
			y.Proceeds = y.Proceeds.Add(e.Proceeds)
		}
		for _, d := range l.disposals[before:] {
			if d.Covered && d.LongTerm {
				y.RealizedLongTerm = y.RealizedLongTerm.Add(d.Gain)
			} else {
				y.RealizedShortTerm = y.RealizedShortTerm.Add(d.Gain)
			}
		}
	}
	return years
}

// AgeBucket is the part of the holdings acquired within an age range.
type AgeBucket struct {
	Label  string
	Amount Quantity
	Cost   Money
}

// ageLimits are the upper bounds of the age buckets, the last one is open.
var ageLimits = []struct {
	label  string
	before func(acquired time.Time) time.Time
}{
	{"< 1 month", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{"1-6 months", func(t time.Time) time.Time { return t.AddDate(0, 6, 0) }},
	{"6-12 months", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
	{"1-2 years", func(t time.Time) time.Time { return t.AddDate(2, 0, 0) }},
}

// HoldingAges distributes open lots by how long they have been held on asOf.
func HoldingAges(lots []Lot, asOf time.Time, currency string) []AgeBucket {
	buckets := make([]AgeBucket, len(ageLimits)+1)
	for i, a := range ageLimits {
		buckets[i] = AgeBucket{Label: a.label, Cost: M(0, currency)}
	}
	buckets[len(ageLimits)] = AgeBucket{Label: "> 2 years", Cost: M(0, currency)}

	for _, lot := range lots {
		i := len(ageLimits)
		for j, a := range ageLimits {
			if a.before(lot.Acquired).After(asOf) {
				i = j
				break
			}
		}
		buckets[i].Amount = buckets[i].Amount.Add(lot.Remaining)
		buckets[i].Cost = buckets[i].Cost.Add(lot.Cost)
	}
	return buckets
}
