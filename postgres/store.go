package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/costbasis"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Store implements costbasis.TransactionSource using PostgreSQL.
type Store struct {
	pool *Pool
	// Legacy adds the rows of the orders, sends and receives tables to the
	// unified transactions table.
	Legacy bool
}

// NewStore creates a new Store.
func NewStore(pool *Pool, legacy bool) *Store {
	return &Store{pool: pool, Legacy: legacy}
}

// Compile-time interface check.
var _ costbasis.TransactionSource = (*Store)(nil)

// Amounts are read as text so that no digit is lost on the way to decimal.
const unifiedQuery = `
	SELECT date, type,
		sent_amount::text, COALESCE(sent_currency, ''),
		received_amount::text, COALESCE(received_currency, ''),
		fee_amount::text, COALESCE(fee_currency, ''),
		price::text,
		0 AS src, id
	FROM transactions
	WHERE user_id = $1
`

// Legacy rows are mapped to the unified columns: the BTC side of an order
// depends on its direction, transfers are always in BTC.
const legacyQuery = `
	UNION ALL
	SELECT date, type,
		(CASE WHEN type = 'Sell' THEN btc_amount ELSE fiat_amount END)::text,
		CASE WHEN type = 'Sell' THEN 'BTC' ELSE fiat_currency END,
		(CASE WHEN type = 'Sell' THEN fiat_amount ELSE btc_amount END)::text,
		CASE WHEN type = 'Sell' THEN fiat_currency ELSE 'BTC' END,
		fee::text, COALESCE(fee_currency, fiat_currency),
		price::text,
		1 AS src, id
	FROM orders
	WHERE user_id = $1
	UNION ALL
	SELECT date, 'Send', amount::text, 'BTC', NULL, '', fee::text, 'BTC', price::text, 2 AS src, id
	FROM sends
	WHERE user_id = $1
	UNION ALL
	SELECT date, 'Receive', NULL, '', amount::text, 'BTC', NULL, '', price::text, 3 AS src, id
	FROM receives
	WHERE user_id = $1
`

const orderBy = `
	ORDER BY date ASC, src ASC, id ASC
`

// Transactions retrieves the history of a user, ordered by date ASC.
func (s *Store) Transactions(ctx context.Context, userID string) ([]costbasis.RawTransaction, error) {
	query := unifiedQuery
	if s.Legacy {
		query += legacyQuery
	}
	query += orderBy

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get transactions by user id: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// scanTransactions scans multiple rows into a slice of RawTransaction.
func scanTransactions(rows pgx.Rows) ([]costbasis.RawTransaction, error) {
	var txs []costbasis.RawTransaction

	for rows.Next() {
		var (
			tx                         costbasis.RawTransaction
			date                       time.Time
			sent, received, fee, price *string
			src                        int
			id                         int64
		)
		err := rows.Scan(
			&date,
			&tx.Type,
			&sent, &tx.SentCurrency,
			&received, &tx.ReceivedCurrency,
			&fee, &tx.FeeCurrency,
			&price,
			&src, &id,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		tx.Date = date.UTC().Format(time.RFC3339Nano)
		for _, f := range []struct {
			text *string
			dst  *decimal.NullDecimal
		}{
			{sent, &tx.SentAmount},
			{received, &tx.ReceivedAmount},
			{fee, &tx.FeeAmount},
			{price, &tx.Price},
		} {
			if *f.dst, err = nullDecimal(f.text); err != nil {
				return nil, fmt.Errorf("scan transaction row %d: %w", id, err)
			}
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txs, nil
}

// nullDecimal parses a numeric read as text.
func nullDecimal(text *string) (decimal.NullDecimal, error) {
	if text == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*text)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid numeric %q: %w", *text, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// numeric returns the text of a decimal for a ::numeric parameter, nil for NULL.
func numeric(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

// nullable returns nil for an empty string.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// InsertBulk adds transactions of a user to the unified table atomically.
// Rows must have a valid date.
func (s *Store) InsertBulk(ctx context.Context, userID string, txs []costbasis.RawTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (
			user_id, date, type, sent_amount, sent_currency, received_amount, received_currency, fee_amount, fee_currency, price
		) VALUES ($1, $2, $3, $4::text::numeric, $5, $6::text::numeric, $7, $8::text::numeric, $9, $10::text::numeric)
	`

	for i, row := range txs {
		date, err := costbasis.ParseTime(row.Date)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
		_, err = tx.Exec(ctx, query,
			userID,
			date,
			row.Type,
			numeric(row.SentAmount),
			nullable(row.SentCurrency),
			numeric(row.ReceivedAmount),
			nullable(row.ReceivedCurrency),
			numeric(row.FeeAmount),
			nullable(row.FeeCurrency),
			numeric(row.Price),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d in bulk: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
