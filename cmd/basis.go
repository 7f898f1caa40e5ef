package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type basisCmd struct {
	method methodValue
	output
}

func (*basisCmd) Name() string     { return "basis" }
func (*basisCmd) Synopsis() string { return "display the cost basis, gains and tax estimates of the holdings" }
func (*basisCmd) Usage() string {
	return `btcb basis [-m <method>] [-json] [-html <file>]

  Replays the whole transaction history with a cost basis method and
  values the remaining bitcoin at the current spot price.

  Methods are fifo, lifo, average and hifo.
`
}

func (c *basisCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.method, "m", "Cost basis method: fifo, lifo, average or hifo")
	c.output.SetFlags(f)
}

func (c *basisCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, release, err := newService(ctx)
	if err != nil {
		return failure(err)
	}
	defer release()

	res, err := svc.Calculate(ctx, *userID, c.method.method())
	if err != nil {
		return failure(err)
	}
	return c.print(renderer.BasisMarkdown(res), res)
}
