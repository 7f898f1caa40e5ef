package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type yearlyCmd struct {
	method methodValue
	output
}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "display the activity and realized gains of each year" }
func (*yearlyCmd) Usage() string {
	return `btcb yearly [-m <method>] [-json] [-html <file>]

  Displays per calendar year the bitcoin acquired and disposed of, the
  amount invested, the proceeds, and the realized gains split by holding
  period. It needs no spot price.
`
}

func (c *yearlyCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.method, "m", "Cost basis method: fifo, lifo, average or hifo")
	c.output.SetFlags(f)
}

func (c *yearlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, release, err := newService(ctx)
	if err != nil {
		return failure(err)
	}
	defer release()

	years, diags, err := svc.Yearly(ctx, *userID, c.method.method())
	if err != nil {
		return failure(err)
	}
	for _, d := range diags {
		log.Printf("warning: %v", d)
	}
	return c.print(renderer.YearlyMarkdown(c.method.method(), years), years)
}
