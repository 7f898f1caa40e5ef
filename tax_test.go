package costbasis

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTaxRates_Validate(t *testing.T) {
	tests := []struct {
		name  string
		rates TaxRates
		err   bool
	}{
		{"default", DefaultTaxRates, false},
		{"zero", TaxRates{}, false},
		{"split", TaxRates{ShortTerm: decimal.RequireFromString("0.37"), LongTerm: decimal.RequireFromString("0.2")}, false},
		{"percent instead of ratio", TaxRates{ShortTerm: decimal.NewFromInt(15), LongTerm: decimal.NewFromInt(15)}, true},
		{"negative", TaxRates{ShortTerm: decimal.NewFromInt(-1)}, true},
	}
	for _, tt := range tests {
		if err := tt.rates.Validate(); (err != nil) != tt.err {
			t.Errorf("%s: Validate() error = %v, want error %v", tt.name, err, tt.err)
		}
	}
}

func TestCalculator_TaxRates(t *testing.T) {
	c := testCalculator()
	c.Rates = TaxRates{ShortTerm: decimal.RequireFromString("0.37"), LongTerm: decimal.RequireFromString("0.2")}
	res, err := c.Calculate("alice", FIFO, scenario(), USD(50000))
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	// a single short-term lot of 1 BTC bought at 30000.
	if got, want := res.PotentialTaxLiabilityShortTerm, USD(7400); !got.Equal(want) {
		t.Errorf("PotentialTaxLiabilityShortTerm = %v, want %v", got.Decimal(), want.Decimal())
	}
	if !res.PotentialTaxLiabilityLongTerm.IsZero() {
		t.Errorf("PotentialTaxLiabilityLongTerm = %v, want 0", res.PotentialTaxLiabilityLongTerm.Decimal())
	}
}
