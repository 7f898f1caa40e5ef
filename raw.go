package costbasis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// RawTransaction is a transaction row as stored by the transaction history
// source. It covers both the unified schema (buy, sell, deposit, withdrawal,
// interest) and the legacy one (Buy, Sell, Send, Receive).
type RawTransaction struct {
	Date             string              `json:"date"`
	Type             string              `json:"type"`
	SentAmount       decimal.NullDecimal `json:"sent_amount"`
	SentCurrency     string              `json:"sent_currency,omitempty"`
	ReceivedAmount   decimal.NullDecimal `json:"received_amount"`
	ReceivedCurrency string              `json:"received_currency,omitempty"`
	FeeAmount        decimal.NullDecimal `json:"fee_amount"`
	FeeCurrency      string              `json:"fee_currency,omitempty"`
	Price            decimal.NullDecimal `json:"price"`
}

// Dec returns a valid NullDecimal, a short hand to build rows in code.
func Dec[T float64 | int | int64 | decimal.Decimal](value T) decimal.NullDecimal {
	return decimal.NewNullDecimal(newDecimal(value))
}

// DecodeTransactions reads raw transactions from a JSONL stream, one JSON
// object per line. Blank lines are skipped.
func DecodeTransactions(r io.Reader) ([]RawTransaction, error) {
	var rows []RawTransaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		content := bytes.TrimSpace(scanner.Bytes())
		if len(content) == 0 {
			continue
		}
		var row RawTransaction
		if err := json.Unmarshal(content, &row); err != nil {
			return nil, fmt.Errorf("line %d: invalid transaction: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return rows, nil
}

// EncodeTransactions writes rows as JSONL.
func EncodeTransactions(w io.Writer, rows []RawTransaction) error {
	enc := json.NewEncoder(w)
	for i, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// isBTC reports whether a currency tag designates bitcoin.
func isBTC(currency string) bool {
	return strings.EqualFold(strings.TrimSpace(currency), "BTC")
}
