// Package cmd implements the btcb command line tool: cost basis, gains and
// tax estimates of a bitcoin transaction history.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/postgres"
	"github.com/etnz/costbasis/spot"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Commands lists the subcommands, in help order.
var Commands = []subcommands.Command{
	&basisCmd{},
	&compareCmd{},
	&lotsCmd{},
	&monthlyCmd{},
	&yearlyCmd{},
	&spotCmd{},
	&importCmd{},
	&topicCmd{},
}

// EnvConfigFile overrides the default configuration file location.
const EnvConfigFile = "BTCB_CONFIG"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", defaultConfigFile(), "Path to the INI configuration file (env "+EnvConfigFile+")")
	ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the transaction history (JSONL format)")
	userID     = flag.String("user", "me", "User whose history is computed")
	currency   = flag.String("currency", "USD", "Reporting currency of fiat amounts")
	asOf       = flag.String("as-of", "", "Date used as now for holding periods, defaults to the current time")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

	dsn    = flag.String("postgres-dsn", "", "PostgreSQL connection string, reads the history from the database instead of the ledger file")
	legacy = flag.Bool("postgres-legacy", false, "Also read the legacy orders, sends and receives tables")

	priceURL   = flag.String("price-url", spot.CoinbaseURL, "Spot price endpoint, {currency} is replaced by the reporting currency")
	pricePath  = flag.String("price-path", spot.CoinbasePath, "JSONPath of the price in the endpoint answer")
	priceFixed = flag.String("price-fixed", "", "Fixed spot price, skips the price endpoint")
	priceCache = flag.Duration("price-cache", 5*time.Minute, "How long a fetched spot price is reused, 0 disables the cache")

	shortTermRate = flag.String("tax-short-term", "0.15", "Flat tax rate applied to short-term gains")
	longTermRate  = flag.String("tax-long-term", "0.15", "Flat tax rate applied to long-term gains")
)

// stdout receives the reports.
var stdout io.Writer = os.Stdout

func defaultConfigFile() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "btcb", "config.ini")
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// newCalculator returns the calculator configured by the global flags.
func newCalculator() (*costbasis.Calculator, error) {
	c := costbasis.NewCalculator(*currency)
	short, err := decimal.NewFromString(*shortTermRate)
	if err != nil {
		return nil, fmt.Errorf("invalid short-term tax rate %q: %w", *shortTermRate, err)
	}
	long, err := decimal.NewFromString(*longTermRate)
	if err != nil {
		return nil, fmt.Errorf("invalid long-term tax rate %q: %w", *longTermRate, err)
	}
	c.Rates = costbasis.TaxRates{ShortTerm: short, LongTerm: long}
	if err := c.Rates.Validate(); err != nil {
		return nil, err
	}
	if *asOf != "" {
		on, err := costbasis.ParseTime(*asOf)
		if err != nil {
			return nil, fmt.Errorf("invalid -as-of: %w", err)
		}
		c.AsOf = on
	}
	return c, nil
}

// newPriceSource returns the fixed price if any, the price endpoint otherwise.
func newPriceSource() (costbasis.PriceSource, error) {
	if *priceFixed != "" {
		v, err := decimal.NewFromString(*priceFixed)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed price %q: %w", *priceFixed, err)
		}
		return spot.Fixed(costbasis.M(v, *currency)), nil
	}
	src := &spot.JSONSource{URL: *priceURL, Path: *pricePath, Currency: *currency}
	if *priceCache > 0 {
		src.Client = spot.CachedClient(*priceCache)
	}
	return src, nil
}

// openTransactions returns the database store when a DSN is configured, the
// ledger file otherwise. The returned func releases it.
func openTransactions(ctx context.Context) (costbasis.TransactionSource, func(), error) {
	if *dsn != "" {
		pool, err := postgres.NewPool(ctx, *dsn)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool, *legacy), pool.Close, nil
	}
	rows, err := readLedger(*ledgerFile)
	if err != nil {
		return nil, nil, err
	}
	return costbasis.Rows(rows), func() {}, nil
}

func readLedger(path string) ([]costbasis.RawTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file: %w", err)
	}
	defer f.Close()
	rows, err := costbasis.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", path, err)
	}
	return rows, nil
}

// newService wires the sources and the calculator. The returned func
// releases the sources.
func newService(ctx context.Context) (*costbasis.Service, func(), error) {
	calc, err := newCalculator()
	if err != nil {
		return nil, nil, err
	}
	prices, err := newPriceSource()
	if err != nil {
		return nil, nil, err
	}
	txs, release, err := openTransactions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &costbasis.Service{Transactions: txs, Prices: prices, Calculator: calc}, release, nil
}

// failure reports err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, costbasis.ErrNoUser) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
