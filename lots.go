package costbasis

import (
	"fmt"
	"sort"
	"time"
)

// LongTermThreshold is the holding period from which a gain is long-term.
const LongTermThreshold = 365 * 24 * time.Hour

// isLongTerm reports whether a lot acquired on 'from' and disposed (or
// valued) on 'to' has been held long enough.
func isLongTerm(from, to time.Time) bool { return to.Sub(from) >= LongTermThreshold }

// Lot is an open tranche of bitcoin acquired at a given time. It keeps the
// total cost basis of what remains, the unit cost is derived from it.
type Lot struct {
	Acquired  time.Time
	Remaining Quantity
	Cost      Money // cost basis of Remaining
	Row       int   // raw row of the acquisition
}

// UnitCost returns the cost basis per BTC remaining.
func (l Lot) UnitCost() Money {
	if l.Remaining.IsZero() {
		return l.Cost
	}
	return l.Cost.Div(l.Remaining)
}

func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Time("acquired", l.Acquired)
	w.Append("remaining", l.Remaining)
	w.Append("cost", l.Cost)
	w.Append("unitCost", l.UnitCost())
	w.Append("row", l.Row)
	return w.MarshalJSON()
}

// Disposal is the audit record of a slice of a disposal matched against one
// lot. A slice with no lot to match (Covered false) has a zero cost basis.
type Disposal struct {
	Date     time.Time
	Acquired time.Time
	Amount   Quantity
	Cost     Money
	Proceeds Money
	Gain     Money
	LongTerm bool
	Covered  bool
	Row      int // raw row of the disposal
}

func (d Disposal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Time("date", d.Date)
	w.Time("acquired", d.Acquired)
	w.Append("amount", d.Amount)
	w.Append("cost", d.Cost)
	w.Append("proceeds", d.Proceeds)
	w.Append("gain", d.Gain)
	w.Append("longTerm", d.LongTerm)
	w.Append("covered", d.Covered)
	w.Append("row", d.Row)
	return w.MarshalJSON()
}

// ledger holds the open lots of a single calculation. It is never shared:
// each calculation builds its own from the event stream.
type ledger struct {
	method    CostBasisMethod
	currency  string
	lots      []Lot // in insertion order
	realized  Money
	uncovered Quantity
	disposals []Disposal
	diags     Diagnostics
}

func newLedger(method CostBasisMethod, currency string) *ledger {
	return &ledger{method: method, currency: currency, realized: M(0, currency)}
}

// replay applies all events in order.
func (l *ledger) replay(events []Event) {
	for _, e := range events {
		l.apply(e)
	}
}

// apply updates the ledger with a single event.
func (l *ledger) apply(e Event) {
	switch e.Kind {
	case Acquire:
		l.acquire(e)
	case Dispose:
		l.dispose(e)
	}
}

func (l *ledger) acquire(e Event) {
	if l.method != AverageCost {
		l.lots = append(l.lots, Lot{Acquired: e.Date, Remaining: e.Amount, Cost: e.Cost, Row: e.Row})
		return
	}
	// All lots collapse into a pool at the weighted average unit cost. Lots
	// are still kept apart to know how long each part has been held, so the
	// pool cost is spread over them by amount. The last lot gets whatever is
	// left so that they always add up to the pool cost.
	amount := l.remaining().Add(e.Amount)
	pool := l.costBasis().Add(e.Cost)
	l.lots = append(l.lots, Lot{Acquired: e.Date, Remaining: e.Amount, Row: e.Row})
	left := pool
	for i := range l.lots {
		lot := &l.lots[i]
		if i == len(l.lots)-1 {
			lot.Cost = left
			break
		}
		lot.Cost = pool.Mul(lot.Remaining).Div(amount)
		left = left.Sub(lot.Cost)
	}
}

// order returns the indexes of lots in the order they are consumed.
func (l *ledger) order() []int {
	idx := make([]int, len(l.lots))
	for i := range idx {
		idx[i] = i
	}
	var less func(a, b Lot) bool
	switch l.method {
	case LIFO:
		less = func(a, b Lot) bool { return a.Acquired.After(b.Acquired) }
	case HIFO:
		// a.Cost/a.Remaining > b.Cost/b.Remaining, without rounding.
		less = func(a, b Lot) bool { return a.Cost.Mul(b.Remaining).GreaterThan(b.Cost.Mul(a.Remaining)) }
	default:
		// FIFO, and the pool of AverageCost whose lots share the same unit cost.
		less = func(a, b Lot) bool { return a.Acquired.Before(b.Acquired) }
	}
	// Ties keep insertion order.
	sort.SliceStable(idx, func(i, j int) bool { return less(l.lots[idx[i]], l.lots[idx[j]]) })
	return idx
}

func (l *ledger) dispose(e Event) {
	left := e.Amount
	proceedsLeft := e.Proceeds
	unitPrice := e.unitSalePrice()

	// take returns the proceeds attributed to a slice. The last slice gets
	// whatever is left so that slices always add up to the event proceeds.
	take := func(slice Quantity) Money {
		left = left.Sub(slice)
		if left.IsZero() {
			p := proceedsLeft
			proceedsLeft = M(0, l.currency)
			return p
		}
		p := unitPrice.Mul(slice)
		proceedsLeft = proceedsLeft.Sub(p)
		return p
	}

	for _, i := range l.order() {
		if !left.IsPositive() {
			break
		}
		lot := &l.lots[i]
		slice := left.Min(lot.Remaining)
		// The slice that empties a lot takes its whole remaining cost.
		cost := lot.Cost
		if slice.LessThan(lot.Remaining) {
			cost = lot.Cost.Mul(slice).Div(lot.Remaining)
		}
		proceeds := take(slice)
		gain := proceeds.Sub(cost)
		l.realized = l.realized.Add(gain)
		l.disposals = append(l.disposals, Disposal{
			Date:     e.Date,
			Acquired: lot.Acquired,
			Amount:   slice,
			Cost:     cost,
			Proceeds: proceeds,
			Gain:     gain,
			LongTerm: isLongTerm(lot.Acquired, e.Date),
			Covered:  true,
			Row:      e.Row,
		})
		lot.Remaining = lot.Remaining.Sub(slice)
		lot.Cost = lot.Cost.Sub(cost)
	}
	l.compact()

	if left.IsPositive() {
		// Disposal of bitcoin that was never recorded as acquired: the
		// shortfall has a zero cost basis.
		shortfall := left
		proceeds := take(shortfall)
		l.realized = l.realized.Add(proceeds)
		l.uncovered = l.uncovered.Add(shortfall)
		l.disposals = append(l.disposals, Disposal{
			Date:     e.Date,
			Amount:   shortfall,
			Cost:     M(0, l.currency),
			Proceeds: proceeds,
			Gain:     proceeds,
			Row:      e.Row,
		})
		l.diags = append(l.diags, Diagnostic{
			Kind:    InsufficientLotCoverage,
			Row:     e.Row,
			Date:    e.Date,
			Amount:  shortfall,
			Message: fmt.Sprintf("disposal of %s BTC exceeds holdings by %s BTC, counted with a zero cost basis", e.Amount, shortfall),
		})
	}
}

// compact removes the lots fully consumed.
func (l *ledger) compact() {
	open := l.lots[:0]
	for _, lot := range l.lots {
		if lot.Remaining.IsPositive() {
			open = append(open, lot)
		}
	}
	l.lots = open
}

// remaining returns the amount of bitcoin held.
func (l *ledger) remaining() Quantity {
	var total Quantity
	for _, lot := range l.lots {
		total = total.Add(lot.Remaining)
	}
	return total
}

// costBasis returns the cost basis of the bitcoin held.
func (l *ledger) costBasis() Money {
	total := M(0, l.currency)
	for _, lot := range l.lots {
		total = total.Add(lot.Cost)
	}
	return total
}

// openLots returns a copy of the open lots in insertion order.
func (l *ledger) openLots() []Lot {
	return append([]Lot(nil), l.lots...)
}
