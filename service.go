package costbasis

import (
	"context"
	"fmt"
)

// TransactionSource returns the raw transaction history of a user, ordered
// by date. Authentication is the caller's concern.
type TransactionSource interface {
	Transactions(ctx context.Context, userID string) ([]RawTransaction, error)
}

// PriceSource returns the current spot price of one bitcoin. It returns
// ErrNoPriceAvailable when it has no price.
type PriceSource interface {
	Spot(ctx context.Context) (Money, error)
}

// Rows is a TransactionSource serving the same rows to every user, for
// histories loaded from a file.
type Rows []RawTransaction

func (r Rows) Transactions(context.Context, string) ([]RawTransaction, error) { return r, nil }

// Service runs the fetch then compute pipeline: it queries both sources and
// hands plain values to the Calculator. Cancellation and timeouts apply to
// the fetch only; the calculation itself does no I/O.
type Service struct {
	Transactions TransactionSource
	Prices       PriceSource
	Calculator   *Calculator
}

// fetch loads the history and the spot price of a user.
func (s *Service) fetch(ctx context.Context, userID string) ([]RawTransaction, Money, error) {
	if userID == "" {
		return nil, Money{}, ErrNoUser
	}
	rows, err := s.Transactions.Transactions(ctx, userID)
	if err != nil {
		return nil, Money{}, fmt.Errorf("could not load transactions of %q: %w", userID, err)
	}
	price, err := s.Prices.Spot(ctx)
	if err != nil {
		return nil, Money{}, fmt.Errorf("could not get spot price: %w", err)
	}
	return rows, price, nil
}

// Calculate computes the cost basis of a user under method.
func (s *Service) Calculate(ctx context.Context, userID string, method CostBasisMethod) (*Result, error) {
	rows, price, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Calculator.Calculate(userID, method, rows, price)
}

// Compare computes the cost basis of a user under every method.
func (s *Service) Compare(ctx context.Context, userID string) ([]*Result, error) {
	rows, price, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Calculator.Compare(ctx, userID, rows, price)
}

// Monthly computes the monthly series of a user, with cost basis under method.
func (s *Service) Monthly(ctx context.Context, userID string, method CostBasisMethod) ([]MonthlyPoint, Diagnostics, error) {
	rows, price, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	events, diags := Normalize(rows, s.Calculator.Currency)
	points, err := s.Calculator.Aggregate(method, events, price)
	return points, diags, err
}

// Yearly computes the yearly activity of a user, with gains under method.
// It needs no price.
func (s *Service) Yearly(ctx context.Context, userID string, method CostBasisMethod) ([]YearlyPoint, Diagnostics, error) {
	if userID == "" {
		return nil, nil, ErrNoUser
	}
	rows, err := s.Transactions.Transactions(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load transactions of %q: %w", userID, err)
	}
	events, diags := Normalize(rows, s.Calculator.Currency)
	return s.Calculator.Yearly(method, events), diags, nil
}
