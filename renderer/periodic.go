package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/costbasis"
)

// MonthlyMarkdown renders the monthly series and its performance summary.
func MonthlyMarkdown(method costbasis.CostBasisMethod, points []costbasis.MonthlyPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly Portfolio (%s)\n\n", method.Title())
	if len(points) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}
	ConditionalBlock(&b, func(w io.Writer) bool { return renderPerformance(w, costbasis.NewPerformance(points)) })

	window := costbasis.DynamicWindow(len(points))
	fmt.Fprint(&b, "## Months\n\n")
	fmt.Fprintf(&b, "| Month | BTC | Price | Value | Cost Basis | MA 3 | MA %d |\n", window)
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			p.Month,
			p.CumulativeBTC.Decimal().StringFixed(8),
			p.BTCPrice,
			p.PortfolioValue,
			p.CostBasis,
			optional(p.MA3),
			optional(p.MADynamic),
		)
	}
	fmt.Fprintln(&b)
	return b.String()
}

func renderPerformance(w io.Writer, perf costbasis.Performance) bool {
	fmt.Fprint(w, "## Performance\n\n")
	fmt.Fprintf(w, "From %s to %s\n\n", perf.Start, perf.End)
	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| Value | %s |\n", perf.Value)
	fmt.Fprintf(w, "| Cost Basis | %s |\n", perf.CostBasis)
	fmt.Fprintf(w, "| Change | %s |\n", perf.Change().SignedString())
	fmt.Fprintf(w, "| Cumulative Return | %s |\n", perf.CumulativeReturn.SignedString())
	fmt.Fprintf(w, "| Annualized Return | %s |\n", perf.AnnualizedReturn.SignedString())
	fmt.Fprintf(w, "| All Time High | %s (%s) |\n", perf.AllTimeHigh, perf.AllTimeHighMonth)
	fmt.Fprintf(w, "| Max Drawdown | %s |\n", perf.MaxDrawdown)
	fmt.Fprintf(w, "| Current Drawdown | %s |\n", perf.CurrentDrawdown)
	fmt.Fprintln(w)
	return true
}

// YearlyMarkdown renders the activity and realized gains of each calendar year.
func YearlyMarkdown(method costbasis.CostBasisMethod, years []costbasis.YearlyPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Yearly Activity (%s)\n\n", method.Title())
	if len(years) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Year | Acquired | Invested | Disposed | Proceeds | Short-Term Gains | Long-Term Gains | Realized Gains |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, y := range years {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			y.Year,
			y.Acquired.Decimal().StringFixed(8),
			y.Invested,
			y.Disposed.Decimal().StringFixed(8),
			y.Proceeds,
			y.RealizedShortTerm.SignedString(),
			y.RealizedLongTerm.SignedString(),
			y.RealizedGains().SignedString(),
		)
	}
	fmt.Fprintln(&b)
	return b.String()
}
