package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type spotCmd struct{}

func (*spotCmd) Name() string     { return "spot" }
func (*spotCmd) Synopsis() string { return "print the current bitcoin spot price" }
func (*spotCmd) Usage() string {
	return `btcb spot

  Prints the spot price used to value the holdings, in the reporting
  currency.
`
}

func (*spotCmd) SetFlags(*flag.FlagSet) {}

func (*spotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := newPriceSource()
	if err != nil {
		return failure(err)
	}
	price, err := src.Spot(ctx)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "BTC %s\n", price)
	return subcommands.ExitSuccess
}
