package costbasis

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoPriceAvailable is returned when no current spot price is known.
	// Valuation is never computed with a zero price.
	ErrNoPriceAvailable = errors.New("no price available")
	// ErrNoUser is returned when a calculation is requested without a user.
	ErrNoUser = errors.New("no user")
)

// DiagnosticKind classifies row level issues. They never abort a calculation.
type DiagnosticKind int

const (
	// MalformedInput marks a row that was excluded from the ledger.
	MalformedInput DiagnosticKind = iota
	// InsufficientLotCoverage marks a disposal larger than the recorded holdings.
	InsufficientLotCoverage
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedInput:
		return "malformed-input"
	case InsufficientLotCoverage:
		return "insufficient-lot-coverage"
	default:
		return "unknown"
	}
}

func (k DiagnosticKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// Diagnostic is a non-blocking warning attached to a calculation.
type Diagnostic struct {
	Kind    DiagnosticKind
	Row     int       // index of the raw row, -1 if not applicable
	Date    time.Time // zero for rows whose date could not be read
	Amount  Quantity  // uncovered amount for InsufficientLotCoverage
	Message string
}

func (d Diagnostic) String() string {
	if d.Row < 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: row %d: %s", d.Kind, d.Row, d.Message)
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", d.Kind)
	w.Append("row", d.Row)
	w.Time("date", d.Date)
	if !d.Amount.IsZero() {
		w.Append("amount", d.Amount)
	}
	w.Append("message", d.Message)
	return w.MarshalJSON()
}

// Diagnostics is the list of warnings collected while processing a history.
type Diagnostics []Diagnostic

// Count returns the number of diagnostics of a given kind.
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func malformed(row int, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: MalformedInput, Row: row, Message: fmt.Sprintf(format, args...)}
}
