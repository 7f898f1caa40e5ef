package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/costbasis"
)

// LotsMarkdown renders the audit trail of a result: open lots, their age
// distribution and every matched disposal.
func LotsMarkdown(r *costbasis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lots (%s)\n\n", r.Method.Title())

	ConditionalBlock(&b, func(w io.Writer) bool { return renderOpenLots(w, r) })
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderAges(w, costbasis.HoldingAges(r.Lots, r.AsOf, r.Currency))
	})
	ConditionalBlock(&b, func(w io.Writer) bool { return renderDisposals(w, r.Disposals) })
	if len(r.Lots) == 0 && len(r.Disposals) == 0 {
		fmt.Fprint(&b, "No lots.\n")
	}
	return b.String()
}

func renderOpenLots(w io.Writer, r *costbasis.Result) bool {
	if len(r.Lots) == 0 {
		return false
	}
	fmt.Fprint(w, "## Open Lots\n\n")
	fmt.Fprintln(w, "| Acquired | Remaining | Unit Cost | Cost Basis | Unrealized | Term |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|---:|:---|")
	for _, lot := range r.Lots {
		term := "short"
		if r.AsOf.Sub(lot.Acquired) >= costbasis.LongTermThreshold {
			term = "long"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			lot.Acquired.Format("2006-01-02"),
			lot.Remaining.Decimal().StringFixed(8),
			lot.UnitCost(),
			lot.Cost,
			r.Price.Mul(lot.Remaining).Sub(lot.Cost).SignedString(),
			term,
		)
	}
	fmt.Fprintln(w)
	return true
}

func renderAges(w io.Writer, buckets []costbasis.AgeBucket) bool {
	printed := false
	for _, a := range buckets {
		if a.Amount.IsZero() {
			continue
		}
		if !printed {
			fmt.Fprint(w, "## Holding Age\n\n")
			fmt.Fprintln(w, "| Age | BTC | Cost Basis |")
			fmt.Fprintln(w, "|:---|---:|---:|")
			printed = true
		}
		fmt.Fprintf(w, "| %s | %s | %s |\n", a.Label, a.Amount.Decimal().StringFixed(8), a.Cost)
	}
	if printed {
		fmt.Fprintln(w)
	}
	return printed
}

func renderDisposals(w io.Writer, disposals []costbasis.Disposal) bool {
	if len(disposals) == 0 {
		return false
	}
	fmt.Fprint(w, "## Disposals\n\n")
	fmt.Fprintln(w, "| Date | Acquired | BTC | Proceeds | Cost Basis | Gain | Term |")
	fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|:---|")
	for _, d := range disposals {
		acquired, term := "missing", "short"
		if d.Covered {
			acquired = d.Acquired.Format("2006-01-02")
		}
		if d.LongTerm {
			term = "long"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
			d.Date.Format("2006-01-02"),
			acquired,
			d.Amount.Decimal().StringFixed(8),
			d.Proceeds,
			d.Cost,
			d.Gain.SignedString(),
			term,
		)
	}
	fmt.Fprintln(w)
	return true
}
