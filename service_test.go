package costbasis

import (
	"context"
	"errors"
	"testing"
)

// fixedPrice is a PriceSource for tests.
type fixedPrice struct {
	price Money
	err   error
}

func (p fixedPrice) Spot(context.Context) (Money, error) { return p.price, p.err }

// failingSource is a TransactionSource that always fails.
type failingSource struct{ err error }

func (s failingSource) Transactions(context.Context, string) ([]RawTransaction, error) {
	return nil, s.err
}

func newTestService(price PriceSource) *Service {
	return &Service{
		Transactions: Rows(scenario()),
		Prices:       price,
		Calculator:   testCalculator(),
	}
}

func TestService_Calculate(t *testing.T) {
	s := newTestService(fixedPrice{price: USD(50000)})
	res, err := s.Calculate(context.Background(), "alice", LIFO)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if got, want := res.RealizedGains, USD(10000); !got.Equal(want) {
		t.Errorf("RealizedGains = %v, want %v", got.Decimal(), want.Decimal())
	}
	if got, want := res.Price, USD(50000); !got.Equal(want) {
		t.Errorf("Price = %v, want %v", got.Decimal(), want.Decimal())
	}
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()

	s := newTestService(fixedPrice{err: ErrNoPriceAvailable})
	if _, err := s.Calculate(ctx, "alice", FIFO); !errors.Is(err, ErrNoPriceAvailable) {
		t.Errorf("Calculate() error = %v, want %v", err, ErrNoPriceAvailable)
	}
	if _, _, err := s.Monthly(ctx, "alice", FIFO); !errors.Is(err, ErrNoPriceAvailable) {
		t.Errorf("Monthly() error = %v, want %v", err, ErrNoPriceAvailable)
	}
	// yearly figures need no price.
	if _, _, err := s.Yearly(ctx, "alice", FIFO); err != nil {
		t.Errorf("Yearly() unexpected error: %v", err)
	}

	s = newTestService(fixedPrice{price: USD(50000)})
	if _, err := s.Compare(ctx, ""); !errors.Is(err, ErrNoUser) {
		t.Errorf("Compare() error = %v, want %v", err, ErrNoUser)
	}

	boom := errors.New("connection refused")
	s.Transactions = failingSource{err: boom}
	if _, err := s.Calculate(ctx, "alice", FIFO); !errors.Is(err, boom) {
		t.Errorf("Calculate() error = %v, want %v", err, boom)
	}
}

func TestService_Monthly(t *testing.T) {
	s := newTestService(fixedPrice{price: USD(50000)})
	points, diags, err := s.Monthly(context.Background(), "alice", FIFO)
	if err != nil {
		t.Fatalf("Monthly() unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Monthly() diagnostics = %v, want none", diags)
	}
	// January to June 2024.
	if len(points) != 6 {
		t.Fatalf("Monthly() returned %d points, want 6", len(points))
	}
	last := points[len(points)-1]
	if got, want := last.PortfolioValue, USD(50000); !got.Equal(want) {
		t.Errorf("last PortfolioValue = %v, want %v", got.Decimal(), want.Decimal())
	}
	if got, want := last.CostBasis, USD(30000); !got.Equal(want) {
		t.Errorf("last CostBasis = %v, want %v", got.Decimal(), want.Decimal())
	}
}
