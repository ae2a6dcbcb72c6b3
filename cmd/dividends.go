package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

type dividendsCmd struct {
	periodFlags
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "dividends received during a tax year" }
func (*dividendsCmd) Usage() string {
	return `cgt dividends [-y <tax year>] [-s <date>] [-d <date>]

  Lists the cash dividends received during the period, per security, with
  their totals per currency.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
}

func (c *dividendsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.DividendsMarkdown(account.Dividends(period)))
	return subcommands.ExitSuccess
}
