package costbasis

import (
	"fmt"
	"strings"
)

// CostBasisMethod defines how disposals are matched against open lots.
type CostBasisMethod int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO CostBasisMethod = iota
	// LIFO (Last-In, First-Out) consumes the most recent lots first.
	LIFO
	// AverageCost pools all lots into one at the running weighted average unit cost.
	AverageCost
	// HIFO (Highest-In, First-Out) consumes the lots with the highest unit cost first.
	HIFO
)

// Methods lists every supported method, in display order.
var Methods = []CostBasisMethod{FIFO, LIFO, AverageCost, HIFO}

func (m CostBasisMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case AverageCost:
		return "average"
	case HIFO:
		return "hifo"
	default:
		return "unknown"
	}
}

// Title returns the display name of the method.
func (m CostBasisMethod) Title() string {
	switch m {
	case FIFO:
		return "FIFO"
	case LIFO:
		return "LIFO"
	case AverageCost:
		return "Average Cost"
	case HIFO:
		return "HIFO"
	default:
		return "Unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "average", "avg", "average-cost":
		return AverageCost, nil
	case "hifo":
		return HIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

func (m CostBasisMethod) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}
