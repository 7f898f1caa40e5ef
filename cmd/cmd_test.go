package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const testLedger = `{"date":"2024-01-01","type":"buy","sent_amount":10000,"sent_currency":"USD","received_amount":1,"received_currency":"BTC"}
{"date":"2024-01-02","type":"buy","sent_amount":30000,"sent_currency":"USD","received_amount":1,"received_currency":"BTC"}

{"date":"2024-01-03","type":"sell","sent_amount":1,"sent_currency":"BTC","received_amount":40000,"received_currency":"USD"}
`

// set overrides a global flag value for the duration of the test.
func set[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// setup points the global flags to a temporary ledger, a fixed price and a
// fixed date, and captures the reports.
func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	if err := os.WriteFile(path, []byte(testLedger), 0644); err != nil {
		t.Fatalf("Failed to write ledger: %v", err)
	}
	set(t, ledgerFile, path)
	set(t, dsn, "")
	set(t, userID, "me")
	set(t, currency, "USD")
	set(t, priceFixed, "50000")
	set(t, asOf, "2024-06-01")
	set(t, plain, true)
	set(t, shortTermRate, "0.15")
	set(t, longTermRate, "0.15")

	var out bytes.Buffer
	set[io.Writer](t, &stdout, &out)
	return &out
}

// run executes c with args.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%v) unexpected error: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestBasisCmd(t *testing.T) {
	testCases := []struct {
		method string
		wants  []string
	}{
		{"fifo", []string{"# Cost Basis (FIFO)", "| Realized Gains | +$30,000.00 |", "| Cost Basis | $30,000.00 |"}},
		{"lifo", []string{"# Cost Basis (LIFO)", "| Realized Gains | +$10,000.00 |", "| Cost Basis | $10,000.00 |"}},
		{"average", []string{"# Cost Basis (Average Cost)", "| Realized Gains | +$20,000.00 |"}},
		{"hifo", []string{"# Cost Basis (HIFO)", "| Realized Gains | +$10,000.00 |"}},
	}
	for _, tc := range testCases {
		t.Run(tc.method, func(t *testing.T) {
			out := setup(t)
			if got := run(t, &basisCmd{}, "-m", tc.method); got != subcommands.ExitSuccess {
				t.Fatalf("basis exit status = %v, want success", got)
			}
			assertContains(t, out.String(), tc.wants...)
		})
	}
}

func TestBasisCmd_UnknownMethod(t *testing.T) {
	setup(t)
	c := &basisCmd{}
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(&bytes.Buffer{})
	c.SetFlags(f)
	if err := f.Parse([]string{"-m", "random"}); err == nil {
		t.Error("Parse(-m random) expected an error")
	}
}

func TestBasisCmd_Errors(t *testing.T) {
	t.Run("missing ledger", func(t *testing.T) {
		setup(t)
		set(t, ledgerFile, filepath.Join(t.TempDir(), "missing.jsonl"))
		if got := run(t, &basisCmd{}); got != subcommands.ExitFailure {
			t.Errorf("basis exit status = %v, want failure", got)
		}
	})
	t.Run("no user", func(t *testing.T) {
		setup(t)
		set(t, userID, "")
		if got := run(t, &basisCmd{}); got != subcommands.ExitUsageError {
			t.Errorf("basis exit status = %v, want usage error", got)
		}
	})
	t.Run("invalid rate", func(t *testing.T) {
		setup(t)
		set(t, shortTermRate, "1.5")
		if got := run(t, &basisCmd{}); got != subcommands.ExitFailure {
			t.Errorf("basis exit status = %v, want failure", got)
		}
	})
	t.Run("zero price", func(t *testing.T) {
		setup(t)
		set(t, priceFixed, "0")
		if got := run(t, &basisCmd{}); got != subcommands.ExitFailure {
			t.Errorf("basis exit status = %v, want failure", got)
		}
	})
}

func TestCompareCmd_JSON(t *testing.T) {
	out := setup(t)
	if got := run(t, &compareCmd{}, "-json"); got != subcommands.ExitSuccess {
		t.Fatalf("compare exit status = %v, want success", got)
	}
	var results []struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("compare -json output is not JSON: %v\n%s", err, out)
	}
	var methods []string
	for _, r := range results {
		methods = append(methods, r.Method)
	}
	if got, want := strings.Join(methods, ","), "fifo,lifo,average,hifo"; got != want {
		t.Errorf("compare methods = %s, want %s", got, want)
	}
}

func TestLotsCmd_HTML(t *testing.T) {
	out := setup(t)
	page := filepath.Join(t.TempDir(), "lots.html")
	if got := run(t, &lotsCmd{}, "-m", "fifo", "-html", page); got != subcommands.ExitSuccess {
		t.Fatalf("lots exit status = %v, want success", got)
	}
	assertContains(t, out.String(), "# Lots (FIFO)")

	html, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("html report not written: %v", err)
	}
	assertContains(t, string(html), "<h1>Lots (FIFO)</h1>", "<table>")
}

func TestMonthlyCmd(t *testing.T) {
	out := setup(t)
	if got := run(t, &monthlyCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("monthly exit status = %v, want success", got)
	}
	assertContains(t, out.String(), "# Monthly Portfolio (FIFO)", "| 2024-01 |", "| 2024-06 |")
}

func TestYearlyCmd(t *testing.T) {
	out := setup(t)
	// the price endpoint is never called
	set(t, priceFixed, "")
	set(t, priceURL, "http://localhost:0/unreachable")
	if got := run(t, &yearlyCmd{}, "-m", "lifo"); got != subcommands.ExitSuccess {
		t.Fatalf("yearly exit status = %v, want success", got)
	}
	assertContains(t, out.String(), "# Yearly Activity (LIFO)", "| 2024 |")
}

func TestSpotCmd(t *testing.T) {
	out := setup(t)
	if got := run(t, &spotCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("spot exit status = %v, want success", got)
	}
	if got, want := out.String(), "BTC $50,000.00\n"; got != want {
		t.Errorf("spot output = %q, want %q", got, want)
	}
}

func TestImportCmd_Usage(t *testing.T) {
	setup(t)
	if got := run(t, &importCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("import without a file exit status = %v, want usage error", got)
	}
	if got := run(t, &importCmd{}, *ledgerFile); got != subcommands.ExitUsageError {
		t.Errorf("import without a dsn exit status = %v, want usage error", got)
	}
}

func TestTopicCmd(t *testing.T) {
	out := setup(t)
	if got := run(t, &topicCmd{}, "-l"); got != subcommands.ExitSuccess {
		t.Fatalf("topic -l exit status = %v, want success", got)
	}
	assertContains(t, out.String(), "methods")

	out.Reset()
	if got := run(t, &topicCmd{}, "methods"); got != subcommands.ExitSuccess {
		t.Fatalf("topic methods exit status = %v, want success", got)
	}
	assertContains(t, out.String(), "HIFO")

	if got := run(t, &topicCmd{}, "no-such-topic"); got != subcommands.ExitFailure {
		t.Errorf("topic no-such-topic exit status = %v, want failure", got)
	}
}
