package costbasis

import "testing"

func TestParseCostBasisMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected CostBasisMethod
		err      bool
	}{
		{"fifo", FIFO, false},
		{"LIFO", LIFO, false},
		{"average", AverageCost, false},
		{"avg", AverageCost, false},
		{" hifo ", HIFO, false},
		{"specific", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCostBasisMethod(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParseCostBasisMethod(%q) error = %v, want error %v", tt.input, err, tt.err)
			continue
		}
		if !tt.err && got != tt.expected {
			t.Errorf("ParseCostBasisMethod(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	// every method parses back from its name.
	for _, m := range Methods {
		if got, err := ParseCostBasisMethod(m.String()); err != nil || got != m {
			t.Errorf("ParseCostBasisMethod(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
}
