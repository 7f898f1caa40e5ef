// Package spot provides current bitcoin prices for cost basis valuation.
package spot

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/costbasis"
	"github.com/shopspring/decimal"
)

// Coinbase public spot price endpoint and the path of the amount in its answer.
const (
	CoinbaseURL  = "https://api.coinbase.com/v2/prices/BTC-{currency}/spot"
	CoinbasePath = "$.data.amount"
)

// JSONSource reads the spot price from a JSON HTTP endpoint.
type JSONSource struct {
	URL      string // "{currency}" is replaced by Currency
	Path     string // jsonpath of the price in the answer
	Currency string
	Client   *http.Client // http.DefaultClient if nil
}

// Coinbase returns a JSONSource for the Coinbase spot price in currency.
func Coinbase(currency string, client *http.Client) *JSONSource {
	return &JSONSource{URL: CoinbaseURL, Path: CoinbasePath, Currency: currency, Client: client}
}

func (s *JSONSource) addr() string {
	return strings.ReplaceAll(s.URL, "{currency}", strings.ToUpper(s.Currency))
}

// Spot returns the current price of one bitcoin. A missing, zero or negative
// price is reported as costbasis.ErrNoPriceAvailable.
func (s *JSONSource) Spot(ctx context.Context) (costbasis.Money, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	addr := s.addr()
	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return costbasis.Money{}, fmt.Errorf("error retrieving spot price from %q: %w", addr, err)
	}
	jval, err := jsonpath.Get(s.Path, jobj)
	if err != nil {
		return costbasis.Money{}, fmt.Errorf("%w: %q not found in answer: %v", costbasis.ErrNoPriceAvailable, s.Path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, err := toDecimal(jval)
	if err != nil {
		return costbasis.Money{}, fmt.Errorf("%w: %q: %v", costbasis.ErrNoPriceAvailable, s.Path, err)
	}
	if !val.IsPositive() {
		return costbasis.Money{}, fmt.Errorf("%w: %q is %s", costbasis.ErrNoPriceAvailable, s.Path, val)
	}
	return costbasis.M(val, strings.ToUpper(s.Currency)), nil
}

// toDecimal reads a price that some APIs return as a number and others as a string.
func toDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		v = strings.ReplaceAll(v, ",", "")
		v = strings.ReplaceAll(v, " ", "")
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid string %q: %w", v, err)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("neither a float or string: %v", jval)
	}
}

// Fixed is a PriceSource returning a constant price, for offline runs.
type Fixed costbasis.Money

func (f Fixed) Spot(context.Context) (costbasis.Money, error) {
	m := costbasis.Money(f)
	if !m.IsPositive() {
		return costbasis.Money{}, costbasis.ErrNoPriceAvailable
	}
	return m, nil
}

var (
	_ costbasis.PriceSource = (*JSONSource)(nil)
	_ costbasis.PriceSource = Fixed{}
)
