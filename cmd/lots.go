package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	method methodValue
	output
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list open lots and the disposals matched against them" }
func (*lotsCmd) Usage() string {
	return `btcb lots [-m <method>] [-json] [-html <file>]

  Lists the lots still held, their age, and every disposal slice with
  the lot it consumed.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.method, "m", "Cost basis method: fifo, lifo, average or hifo")
	c.output.SetFlags(f)
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, release, err := newService(ctx)
	if err != nil {
		return failure(err)
	}
	defer release()

	res, err := svc.Calculate(ctx, *userID, c.method.method())
	if err != nil {
		return failure(err)
	}
	return c.print(renderer.LotsMarkdown(res), res)
}
