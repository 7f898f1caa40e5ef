package costbasis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRates are the flat rates used to estimate a potential tax liability.
// They are an approximation, not a tax computation.
type TaxRates struct {
	ShortTerm decimal.Decimal // ratio, 0.15 for 15%
	LongTerm  decimal.Decimal
}

// DefaultTaxRates applies the same flat 15% to both holding periods.
var DefaultTaxRates = TaxRates{
	ShortTerm: decimal.RequireFromString("0.15"),
	LongTerm:  decimal.RequireFromString("0.15"),
}

// Validate checks that rates are ratios in [0, 1].
func (r TaxRates) Validate() error {
	one := decimal.NewFromInt(1)
	for name, v := range map[string]decimal.Decimal{"short-term": r.ShortTerm, "long-term": r.LongTerm} {
		if v.IsNegative() || v.GreaterThan(one) {
			return fmt.Errorf("invalid %s tax rate %s: want a ratio between 0 and 1", name, v)
		}
	}
	return nil
}

// liability estimates the tax due on a gain. Losses owe nothing.
func (r TaxRates) liability(gain Money, rate decimal.Decimal) Money {
	return gain.Positive().Scale(rate)
}
