package costbasis

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Calculator computes cost basis results. It holds configuration only: every
// call replays the whole history into a fresh ledger, so a Calculator can be
// used from several goroutines at once.
//
// With a zero AsOf, results leave it out of their JSON, but their long-term
// split still depends on the day they are computed. Pin AsOf for outputs that
// must be reproducible.
type Calculator struct {
	Currency string    // reporting currency of fiat amounts
	Rates    TaxRates  // flat rates of the potential tax liability
	AsOf     time.Time // "now" for holding periods of held lots; zero means time.Now()
}


// NewCalculator returns a Calculator reporting in currency with the default rates.
func NewCalculator(currency string) *Calculator {
	return &Calculator{Currency: currency, Rates: DefaultTaxRates}
}

func (c *Calculator) asOf() time.Time {
	if c.AsOf.IsZero() {
		return time.Now().UTC()
	}
	return c.AsOf
}

// Calculate normalizes the raw history and computes the cost basis under
// method, valued at currentPrice.
func (c *Calculator) Calculate(userID string, method CostBasisMethod, rows []RawTransaction, currentPrice Money) (*Result, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	events, diags := Normalize(rows, c.Currency)
	res, err := c.CalculateEvents(method, events, currentPrice)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(diags, res.Diagnostics...)
	return res, nil
}

// CalculateEvents computes the cost basis of an already normalized history.
// Events are replayed by date whatever their order.
func (c *Calculator) CalculateEvents(method CostBasisMethod, events []Event, currentPrice Money) (*Result, error) {
	if !currentPrice.IsPositive() {
		return nil, ErrNoPriceAvailable
	}
	if currentPrice.Currency() != "" && currentPrice.Currency() != c.Currency {
		return nil, fmt.Errorf("price in %s, want %s", currentPrice.Currency(), c.Currency)
	}
	price := currentPrice.In(c.Currency)
	asOf := c.asOf()

	l := newLedger(method, c.Currency)
	l.replay(chronological(events))

	zero := M(0, c.Currency)
	res := &Result{
		Method:              method,
		Currency:            c.Currency,
		AsOf:                asOf,
		clock:               c.AsOf.IsZero(),
		Price:               price,
		RealizedGains:       l.realized,
		RemainingBTC:        l.remaining(),
		TotalCostBasis:      l.costBasis(),
		RealizedShortTerm:   zero,
		RealizedLongTerm:    zero,
		UnrealizedShortTerm: zero,
		UnrealizedLongTerm:  zero,
		UncoveredBTC:        l.uncovered,
		UncoveredGains:      zero,
		Lots:                l.openLots(),
		Disposals:           l.disposals,
		Diagnostics:         l.diags,
	}
	res.AverageCost = zero
	if res.RemainingBTC.IsPositive() {
		res.AverageCost = res.TotalCostBasis.Div(res.RemainingBTC)
	}
	res.UnrealizedGain = price.Mul(res.RemainingBTC).Sub(res.TotalCostBasis)
	res.UnrealizedGainPercent = percentOf(res.UnrealizedGain, res.TotalCostBasis)

	for _, d := range l.disposals {
		switch {
		case !d.Covered:
			res.UncoveredGains = res.UncoveredGains.Add(d.Gain)
			// bitcoin of unknown origin is treated as just acquired.
			res.RealizedShortTerm = res.RealizedShortTerm.Add(d.Gain)
		case d.LongTerm:
			res.RealizedLongTerm = res.RealizedLongTerm.Add(d.Gain)
		default:
			res.RealizedShortTerm = res.RealizedShortTerm.Add(d.Gain)
		}
	}
	for _, lot := range l.lots {
		gain := price.Mul(lot.Remaining).Sub(lot.Cost)
		if isLongTerm(lot.Acquired, asOf) {
			res.UnrealizedLongTerm = res.UnrealizedLongTerm.Add(gain)
		} else {
			res.UnrealizedShortTerm = res.UnrealizedShortTerm.Add(gain)
		}
	}
	res.PotentialTaxLiabilityShortTerm = c.Rates.liability(res.UnrealizedShortTerm, c.Rates.ShortTerm)
	res.PotentialTaxLiabilityLongTerm = c.Rates.liability(res.UnrealizedLongTerm, c.Rates.LongTerm)
	return res, nil
}

// Compare computes the cost basis under every method. Methods run
// concurrently over the same read-only events, each with its own ledger.
// Results are returned in the order of Methods.
func (c *Calculator) Compare(ctx context.Context, userID string, rows []RawTransaction, currentPrice Money) ([]*Result, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	events, diags := Normalize(rows, c.Currency)

	// fix "now" once so that all methods agree on holding periods.
	fixed := *c
	fixed.AsOf = c.asOf()

	results := make([]*Result, len(Methods))
	g, ctx := errgroup.WithContext(ctx)
	for i, method := range Methods {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fixed.CalculateEvents(method, events, currentPrice)
			if err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
			res.Diagnostics = append(append(Diagnostics(nil), diags...), res.Diagnostics...)
			res.clock = c.AsOf.IsZero()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
