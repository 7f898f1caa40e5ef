package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	output
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the cost basis under every method" }
func (*compareCmd) Usage() string {
	return `btcb compare [-json] [-html <file>]

  Computes the cost basis under fifo, lifo, average and hifo side by side,
  from the same history and the same spot price.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) { c.output.SetFlags(f) }

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, release, err := newService(ctx)
	if err != nil {
		return failure(err)
	}
	defer release()

	results, err := svc.Compare(ctx, *userID)
	if err != nil {
		return failure(err)
	}
	return c.print(renderer.CompareMarkdown(results), results)
}
