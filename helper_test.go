package costbasis

import (
	"time"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// on parses a date for tests, panicking on error.
func on(s string) time.Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// buy is a unified buy row paying usd for btc.
func buy(date string, btc, usd float64) RawTransaction {
	return RawTransaction{
		Date: date, Type: "buy",
		SentAmount: Dec(usd), SentCurrency: "USD",
		ReceivedAmount: Dec(btc), ReceivedCurrency: "BTC",
	}
}

// sell is a unified sell row receiving usd for btc.
func sell(date string, btc, usd float64) RawTransaction {
	return RawTransaction{
		Date: date, Type: "sell",
		SentAmount: Dec(btc), SentCurrency: "BTC",
		ReceivedAmount: Dec(usd), ReceivedCurrency: "USD",
	}
}

// scenario is the reference history: two lots bought at 10k and 30k, one
// bitcoin sold at 40k.
func scenario() []RawTransaction {
	return []RawTransaction{
		buy("2024-01-01", 1, 10000),
		buy("2024-01-02", 1, 30000),
		sell("2024-01-03", 1, 40000),
	}
}

// testCalculator returns a USD calculator with a fixed "now".
func testCalculator() *Calculator {
	c := NewCalculator("USD")
	c.AsOf = on("2024-06-01")
	return c
}
