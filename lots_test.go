package costbasis

import (
	"testing"
	"time"
)

func TestIsLongTerm(t *testing.T) {
	acquired := on("2023-01-01")
	testCases := []struct {
		on   string
		want bool
	}{
		{"2023-06-01", false},
		{"2023-12-31T23:59:59Z", false},
		{"2024-01-01", true}, // 2023 has 365 days
		{"2025-01-01", true},
	}
	for _, tc := range testCases {
		if got := isLongTerm(acquired, on(tc.on)); got != tc.want {
			t.Errorf("isLongTerm(2023-01-01, %s) = %v, want %v", tc.on, got, tc.want)
		}
	}
}

// events normalizes rows that are expected to be valid.
func events(t *testing.T, rows ...RawTransaction) []Event {
	t.Helper()
	evts, diags := Normalize(rows, "USD")
	if len(diags) != 0 {
		t.Fatalf("Normalize() diagnostics = %v, want none", diags)
	}
	return evts
}

func TestLedger_HIFO(t *testing.T) {
	l := newLedger(HIFO, "USD")
	l.replay(events(t,
		buy("2024-01-01", 1, 10000),
		buy("2024-01-02", 1, 30000),
		buy("2024-01-03", 1, 20000),
		sell("2024-01-04", 1.5, 60000),
	))

	if got, want := l.realized, USD(20000); !got.Equal(want) {
		t.Errorf("realized = %v, want %v", got.Decimal(), want.Decimal())
	}
	if got, want := l.remaining(), Q(1.5); !got.Equal(want) {
		t.Errorf("remaining() = %v, want %v", got, want)
	}
	if got, want := l.costBasis(), USD(20000); !got.Equal(want) {
		t.Errorf("costBasis() = %v, want %v", got.Decimal(), want.Decimal())
	}
	// the 30k lot is gone, half of the 20k lot is left.
	if len(l.lots) != 2 {
		t.Fatalf("open lots = %d, want 2", len(l.lots))
	}
	if got, want := l.lots[1].Remaining, Q(0.5); !got.Equal(want) {
		t.Errorf("lots[1].Remaining = %v, want %v", got, want)
	}
	if got, want := l.lots[1].UnitCost(), USD(20000); !got.Equal(want) {
		t.Errorf("lots[1].UnitCost = %v, want %v", got.Decimal(), want.Decimal())
	}
}

func TestLedger_AverageCost(t *testing.T) {
	l := newLedger(AverageCost, "USD")
	l.replay(events(t,
		buy("2024-01-01", 1, 10000),
		buy("2024-01-02", 1, 30000),
	))
	for i, lot := range l.lots {
		if got, want := lot.UnitCost(), USD(20000); !got.Equal(want) {
			t.Errorf("after acquisitions lots[%d].UnitCost = %v, want %v", i, got.Decimal(), want.Decimal())
		}
	}

	// disposals do not change the average.
	l.replay(events(t, sell("2024-01-03", 0.5, 15000)))
	if got, want := l.realized, USD(5000); !got.Equal(want) {
		t.Errorf("realized = %v, want %v", got.Decimal(), want.Decimal())
	}
	if got, want := l.costBasis(), USD(30000); !got.Equal(want) {
		t.Errorf("costBasis() = %v, want %v", got.Decimal(), want.Decimal())
	}
	for i, lot := range l.lots {
		if got, want := lot.UnitCost(), USD(20000); !got.Equal(want) {
			t.Errorf("after disposal lots[%d].UnitCost = %v, want %v", i, got.Decimal(), want.Decimal())
		}
	}

	// a new acquisition moves it.
	l.replay(events(t, buy("2024-01-04", 0.5, 25000)))
	for i, lot := range l.lots {
		if got, want := lot.UnitCost(), USD(27500); !got.Equal(want) {
			t.Errorf("after new acquisition lots[%d].UnitCost = %v, want %v", i, got.Decimal(), want.Decimal())
		}
	}
	if got, want := l.costBasis(), USD(55000); !got.Equal(want) {
		t.Errorf("costBasis() = %v, want %v", got.Decimal(), want.Decimal())
	}
}

func TestLedger_TiesKeepInsertionOrder(t *testing.T) {
	history := events(t,
		buy("2024-01-01T10:00:00Z", 1, 10000),
		buy("2024-01-01T10:00:00Z", 1, 20000),
		sell("2024-01-02", 1, 30000),
	)
	testCases := []struct {
		method CostBasisMethod
		want   Money
	}{
		{FIFO, USD(20000)},
		{LIFO, USD(20000)},
		{HIFO, USD(10000)},
	}
	for _, tc := range testCases {
		l := newLedger(tc.method, "USD")
		l.replay(history)
		if !l.realized.Equal(tc.want) {
			t.Errorf("%s: realized = %v, want %v", tc.method, l.realized.Decimal(), tc.want.Decimal())
		}
	}
}

func TestLedger_DisposalSlicesAddUp(t *testing.T) {
	for _, method := range Methods {
		l := newLedger(method, "USD")
		l.replay(events(t,
			buy("2024-01-01", 1, 10000),
			buy("2024-01-02", 1, 20000),
			sell("2024-01-03", 1.5, 10000),
		))
		proceeds, amount := USD(0), Quantity{}
		for _, d := range l.disposals {
			proceeds = proceeds.Add(d.Proceeds)
			amount = amount.Add(d.Amount)
			if !d.Gain.Equal(d.Proceeds.Sub(d.Cost)) {
				t.Errorf("%s: disposal gain %v, want proceeds - cost = %v", method, d.Gain.Decimal(), d.Proceeds.Sub(d.Cost).Decimal())
			}
		}
		if !proceeds.Equal(USD(10000)) {
			t.Errorf("%s: sum of slice proceeds = %v, want 10000", method, proceeds.Decimal())
		}
		if !amount.Equal(Q(1.5)) {
			t.Errorf("%s: sum of slice amounts = %v, want 1.5", method, amount)
		}
	}
}

func TestLedger_Uncovered(t *testing.T) {
	l := newLedger(FIFO, "USD")
	l.replay(events(t,
		buy("2024-01-01", 1, 10000),
		sell("2024-01-02", 1.5, 60000),
	))

	if len(l.lots) != 0 {
		t.Errorf("open lots = %v, want none", l.lots)
	}
	if got, want := l.uncovered, Q(0.5); !got.Equal(want) {
		t.Errorf("uncovered = %v, want %v", got, want)
	}
	// 30000 on the covered bitcoin, 20000 on the uncovered half.
	if got, want := l.realized, USD(50000); !got.Equal(want) {
		t.Errorf("realized = %v, want %v", got.Decimal(), want.Decimal())
	}
	if len(l.diags) != 1 || l.diags[0].Kind != InsufficientLotCoverage {
		t.Fatalf("diagnostics = %v, want one insufficient lot coverage", l.diags)
	}
	if got, want := l.diags[0].Amount, Q(0.5); !got.Equal(want) {
		t.Errorf("diagnostic amount = %v, want %v", got, want)
	}
	last := l.disposals[len(l.disposals)-1]
	if last.Covered || !last.Cost.IsZero() || !last.Acquired.Equal(time.Time{}) {
		t.Errorf("uncovered slice = %+v, want zero cost and no acquisition", last)
	}
}
