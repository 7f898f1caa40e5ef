package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type monthlyCmd struct {
	method methodValue
	output
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the month by month value of the holdings" }
func (*monthlyCmd) Usage() string {
	return `btcb monthly [-m <method>] [-json] [-html <file>]

  Displays one row per month since the first transaction: bitcoin held,
  last known price, value, cost basis and trailing averages of the value.
  The current month is valued at the current spot price.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.method, "m", "Cost basis method: fifo, lifo, average or hifo")
	c.output.SetFlags(f)
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, release, err := newService(ctx)
	if err != nil {
		return failure(err)
	}
	defer release()

	points, diags, err := svc.Monthly(ctx, *userID, c.method.method())
	if err != nil {
		return failure(err)
	}
	for _, d := range diags {
		log.Printf("warning: %v", d)
	}
	return c.print(renderer.MonthlyMarkdown(c.method.method(), points), points)
}
