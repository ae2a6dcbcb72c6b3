package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	periodFlags
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "capital gains of the disposals of a tax year" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-y <tax year>] [-s <date>] [-d <date>]

  Matches every sale with purchases, following the same day, 30 days (bed and
  breakfast) and section 104 pool rules, and reports the gain of each disposal
  made during the period.

  The period defaults to the current tax year.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := c.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	account, err := loadAccount(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading account: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.GainsMarkdown(account.CapitalGains(period))
	printMarkdown(md)

	return subcommands.ExitSuccess
}
