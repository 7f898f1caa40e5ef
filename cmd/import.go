package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/postgres"
	"github.com/google/subcommands"
)

type importCmd struct {
	check bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSONL transaction history into the database" }
func (*importCmd) Usage() string {
	return `btcb -postgres-dsn <dsn> import [-check] <file.jsonl>

  Creates the database tables if needed, then inserts every transaction of
  the file for the -user, in a single database transaction.

  Rows are normalized first: with -check, malformed rows abort the import.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "Refuse to import a file with malformed rows")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import expects exactly one file")
		return subcommands.ExitUsageError
	}
	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "Error: import needs -postgres-dsn")
		return subcommands.ExitUsageError
	}
	if *userID == "" {
		return failure(costbasis.ErrNoUser)
	}

	rows, err := readLedger(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	if _, diags := costbasis.Normalize(rows, *currency); len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s: %v\n", f.Arg(0), d)
		}
		if c.check {
			return failure(errors.New("malformed rows, nothing imported"))
		}
	}

	pool, err := postgres.NewPool(ctx, *dsn)
	if err != nil {
		return failure(err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return failure(err)
	}
	if err := postgres.NewStore(pool, false).InsertBulk(ctx, *userID, rows); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Imported %d transactions for %q\n", len(rows), *userID)
	return subcommands.ExitSuccess
}
