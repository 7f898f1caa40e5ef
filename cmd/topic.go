package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/costbasis/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `btcb topic [-l] [<topic>...]

  Shows documentation for the given topics, the overview by default.
  "*" shows every topic.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the available topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.Topics()
		if err != nil {
			return failure(err)
		}
		for _, t := range topics {
			fmt.Fprintf(stdout, "%-12s %s\n", t.Name, t.Title)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	doc, err := docs.GetTopics(names...)
	if err != nil {
		return failure(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
