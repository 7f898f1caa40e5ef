// Package renderer turns cost basis results into markdown reports.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/costbasis"
)

// Disclaimer labels every figure that depends on tax rates.
const Disclaimer = "> Tax estimates apply flat rates to unrealized gains. They are an approximation, not tax advice."

// BasisMarkdown renders the cost basis of a holding under one method.
func BasisMarkdown(r *costbasis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Cost Basis (%s)\n\n", r.Method.Title())
	fmt.Fprintf(&b, "As of %s, BTC at %s\n\n", r.AsOf.Format("2006-01-02 15:04 MST"), r.Price)

	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Holdings | %s |\n", btc(r.RemainingBTC))
	fmt.Fprintf(&b, "| Market Value | %s |\n", r.MarketValue())
	fmt.Fprintf(&b, "| Cost Basis | %s |\n", r.TotalCostBasis)
	fmt.Fprintf(&b, "| Average Cost | %s |\n", r.AverageCost)
	fmt.Fprintf(&b, "| Unrealized Gain | %s (%s) |\n", r.UnrealizedGain.SignedString(), r.UnrealizedGainPercent.SignedString())
	fmt.Fprintf(&b, "| Realized Gains | %s |\n", r.RealizedGains.SignedString())
	fmt.Fprintln(&b)

	renderHoldingPeriods(&b, r)
	ConditionalBlock(&b, func(w io.Writer) bool { return renderUncovered(w, r) })
	ConditionalBlock(&b, func(w io.Writer) bool { return renderDiagnostics(w, r.Diagnostics) })
	return b.String()
}

func renderHoldingPeriods(w io.Writer, r *costbasis.Result) {
	fmt.Fprint(w, "## Holding Periods\n\n")
	fmt.Fprintln(w, "| | Short-Term | Long-Term |")
	fmt.Fprintln(w, "|:---|---:|---:|")
	fmt.Fprintf(w, "| Realized | %s | %s |\n", r.RealizedShortTerm.SignedString(), r.RealizedLongTerm.SignedString())
	fmt.Fprintf(w, "| Unrealized | %s | %s |\n", r.UnrealizedShortTerm.SignedString(), r.UnrealizedLongTerm.SignedString())
	fmt.Fprintf(w, "| Potential Tax | %s | %s |\n", r.PotentialTaxLiabilityShortTerm, r.PotentialTaxLiabilityLongTerm)
	fmt.Fprintln(w)
	fmt.Fprintln(w, Disclaimer)
	fmt.Fprintln(w)
}

func renderUncovered(w io.Writer, r *costbasis.Result) bool {
	if r.UncoveredBTC.IsZero() {
		return false
	}
	fmt.Fprint(w, "## Missing History\n\n")
	fmt.Fprintf(w, "%s were disposed of without a recorded acquisition. They count with a zero cost basis and add %s to realized gains.\n\n",
		btc(r.UncoveredBTC), r.UncoveredGains)
	return true
}

func renderDiagnostics(w io.Writer, diags costbasis.Diagnostics) bool {
	if len(diags) == 0 {
		return false
	}
	fmt.Fprint(w, "## Warnings\n\n")
	fmt.Fprintln(w, "| Row | Date | Issue |")
	fmt.Fprintln(w, "|---:|:---|:---|")
	for _, d := range diags {
		date := "-"
		if !d.Date.IsZero() {
			date = d.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "| %d | %s | %s: %s |\n", d.Row, date, d.Kind, strings.ReplaceAll(d.Message, "|", "\\|"))
	}
	fmt.Fprintln(w)
	return true
}

// CompareMarkdown renders the same holding under several methods, side by side.
func CompareMarkdown(results []*costbasis.Result) string {
	var b strings.Builder
	if len(results) == 0 {
		return b.String()
	}

	fmt.Fprint(&b, "# Cost Basis Methods\n\n")
	fmt.Fprintf(&b, "As of %s, BTC at %s\n\n", results[0].AsOf.Format("2006-01-02 15:04 MST"), results[0].Price)

	header, align := "| |", "|:---|"
	for _, r := range results {
		header += " " + r.Method.Title() + " |"
		align += "---:|"
	}
	fmt.Fprintln(&b, header)
	fmt.Fprintln(&b, align)

	rows := []struct {
		label string
		cell  func(r *costbasis.Result) string
	}{
		{"Cost Basis", func(r *costbasis.Result) string { return r.TotalCostBasis.String() }},
		{"Average Cost", func(r *costbasis.Result) string { return r.AverageCost.String() }},
		{"Realized Gains", func(r *costbasis.Result) string { return r.RealizedGains.SignedString() }},
		{"Unrealized Gain", func(r *costbasis.Result) string { return r.UnrealizedGain.SignedString() }},
		{"Short-Term Tax", func(r *costbasis.Result) string { return r.PotentialTaxLiabilityShortTerm.String() }},
		{"Long-Term Tax", func(r *costbasis.Result) string { return r.PotentialTaxLiabilityLongTerm.String() }},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s |", row.label)
		for _, r := range results {
			fmt.Fprintf(&b, " %s |", row.cell(r))
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Holdings: %s under every method.\n\n", btc(results[0].RemainingBTC))
	fmt.Fprintln(&b, Disclaimer)
	fmt.Fprintln(&b)

	// normalization warnings are shared, coverage ones too.
	ConditionalBlock(&b, func(w io.Writer) bool { return renderDiagnostics(w, results[0].Diagnostics) })
	return b.String()
}
