package costbasis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the day only layout used by exports that carry no time.
const DateFormat = "2006-01-02"

// timeLayouts are the ISO-8601 variants found in exchange exports, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07",
	DateFormat,
}

// ParseTime parses an ISO-8601 timestamp. Timestamps without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want ISO-8601", s)
}

// canonical maps legacy and unified transaction types to the unified names.
func canonical(typ string) string {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "buy":
		return "buy"
	case "sell":
		return "sell"
	case "deposit", "receive":
		return "deposit"
	case "withdrawal", "withdraw", "send":
		return "withdrawal"
	case "interest":
		return "interest"
	default:
		return ""
	}
}

// rowReader extracts the amounts of a single raw row in the reporting currency.
type rowReader struct {
	index    int
	row      RawTransaction
	currency string
}

// fiat returns the amount if it is positive and denominated in fiat. A fiat
// currency other than the reporting one is an error: there is no conversion
// in the engine.
func (r rowReader) fiat(amount decimal.NullDecimal, currency string) (Money, bool, error) {
	if !amount.Valid || !amount.Decimal.IsPositive() || isBTC(currency) {
		return Money{}, false, nil
	}
	if c := strings.TrimSpace(currency); c != "" && !strings.EqualFold(c, r.currency) {
		return Money{}, false, fmt.Errorf("amount in %s, want %s", c, r.currency)
	}
	return M(amount.Decimal, r.currency), true, nil
}

// btc returns the amount if it is tagged as bitcoin.
func (r rowReader) btc(amount decimal.NullDecimal, currency string) Quantity {
	if !amount.Valid || !isBTC(currency) {
		return Quantity{}
	}
	return Q(amount.Decimal)
}

// negative returns the name of the first negative field, if any.
func (r rowReader) negative() string {
	fields := []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"sent_amount", r.row.SentAmount},
		{"received_amount", r.row.ReceivedAmount},
		{"fee_amount", r.row.FeeAmount},
		{"price", r.row.Price},
	}
	for _, f := range fields {
		if f.value.Valid && f.value.Decimal.IsNegative() {
			return f.name
		}
	}
	return ""
}

// Normalize converts raw rows into events sorted by date. Rows sharing the
// same timestamp keep their input order. Rows that cannot be read are
// excluded and reported in the returned diagnostics; rows with no bitcoin
// amount are dropped silently. The input slice is not modified.
func Normalize(rows []RawTransaction, currency string) ([]Event, Diagnostics) {
	events := make([]Event, 0, len(rows))
	var diags Diagnostics
	for i, row := range rows {
		e, keep, err := normalizeRow(rowReader{index: i, row: row, currency: currency})
		if err != nil {
			d := malformed(i, "%v", err)
			d.Date = e.Date
			diags = append(diags, d)
			continue
		}
		if keep {
			events = append(events, e)
		}
	}
	sortByDate(events)
	return events, diags
}

func sortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// chronological returns events sorted by date, events sharing the same date
// keeping their order. Unsorted events are sorted in a copy.
func chronological(events []Event) []Event {
	if sort.SliceIsSorted(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) }) {
		return events
	}
	sorted := append([]Event(nil), events...)
	sortByDate(sorted)
	return sorted
}

func normalizeRow(r rowReader) (e Event, keep bool, err error) {
	row := r.row
	e.Row = r.index
	e.Type = row.Type
	e.Date, err = ParseTime(row.Date)
	if err != nil {
		return e, false, err
	}
	if name := r.negative(); name != "" {
		return e, false, fmt.Errorf("negative %s", name)
	}
	typ := canonical(row.Type)
	if typ == "" {
		return e, false, fmt.Errorf("unknown transaction type %q", row.Type)
	}

	zero := M(0, r.currency)
	e.Cost, e.Proceeds, e.Fee, e.Price = zero, zero, zero, zero
	price := zero
	if row.Price.Valid && row.Price.Decimal.IsPositive() {
		price = M(row.Price.Decimal, r.currency)
	}
	feeFiat, _, err := r.fiat(row.FeeAmount, row.FeeCurrency)
	if err != nil {
		return e, false, fmt.Errorf("fee: %w", err)
	}
	feeFiat = feeFiat.In(r.currency)
	feeBTC := r.btc(row.FeeAmount, row.FeeCurrency)

	switch typ {
	case "buy", "deposit", "interest":
		if !isBTC(row.ReceivedCurrency) {
			// fiat deposits, fiat interest, informational rows.
			e.Kind, e.Price = Neutral, price
			return e, true, nil
		}
		amount := r.btc(row.ReceivedAmount, row.ReceivedCurrency)
		if !amount.IsPositive() {
			return e, false, nil
		}
		var base Money
		paid, ok, err := r.fiat(row.SentAmount, row.SentCurrency)
		switch {
		case err != nil:
			return e, false, fmt.Errorf("sent: %w", err)
		case typ == "buy" && ok:
			base = paid
		case price.IsPositive():
			base = price.Mul(amount)
		default:
			return e, false, fmt.Errorf("%s of %s BTC has neither a fiat amount nor a price", typ, amount)
		}
		if !price.IsPositive() {
			price = base.Div(amount)
		}
		fee := feeFiat.Add(price.Mul(feeBTC))
		e.Kind = Acquire
		e.Amount = amount
		e.Cost = base.Add(fee)
		e.Fee = fee
		e.Price = price
		return e, true, nil

	case "sell", "withdrawal":
		if !isBTC(row.SentCurrency) {
			e.Kind, e.Price = Neutral, price
			return e, true, nil
		}
		sent := r.btc(row.SentAmount, row.SentCurrency)
		if !sent.IsPositive() {
			return e, false, nil
		}
		var gross Money
		received, ok, err := r.fiat(row.ReceivedAmount, row.ReceivedCurrency)
		switch {
		case err != nil:
			return e, false, fmt.Errorf("received: %w", err)
		case typ == "sell" && ok:
			gross = received
		case price.IsPositive():
			gross = price.Mul(sent)
		default:
			return e, false, fmt.Errorf("%s of %s BTC has neither a fiat amount nor a price", typ, sent)
		}
		if !price.IsPositive() {
			price = gross.Div(sent)
		}
		e.Kind = Dispose
		// a bitcoin fee leaves the wallet too, with no proceeds.
		e.Amount = sent.Add(feeBTC)
		e.Proceeds = gross.Sub(feeFiat).Positive()
		e.Fee = feeFiat.Add(price.Mul(feeBTC))
		e.Price = price
		return e, true, nil
	}
	return e, false, fmt.Errorf("unhandled transaction type %q", row.Type)
}
