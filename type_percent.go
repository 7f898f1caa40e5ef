package costbasis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio expressed in percent (5 means 5%).
type Percent struct {
	value decimal.Decimal
}

// P returns the Percent for value.
func P[T float64 | int | int64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

// percentOf returns 100*a/b, zero when b is zero.
func percentOf(a, b Money) Percent {
	return Percent{value: a.Ratio(b).Mul(decimal.NewFromInt(100))}
}

func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) IsZero() bool             { return p.value.IsZero() }

// Equal compares with a precision of 1/10000 of a percent.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	return p.value.Sub(q.value).Abs().LessThan(decimal.NewFromFloat(precision))
}

func (p Percent) String() string {
	return fmt.Sprintf("%s%%", p.value.StringFixed(2))
}

func (p Percent) SignedString() string {
	if p.value.Round(2).IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}
