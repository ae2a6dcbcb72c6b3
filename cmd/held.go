package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

type heldCmd struct {
	periodFlags
}

func (*heldCmd) Name() string     { return "held" }
func (*heldCmd) Synopsis() string { return "securities held at some point during a tax year" }
func (*heldCmd) Usage() string {
	return `cgt held [-y <tax year>] [-s <date>] [-d <date>]

  Lists the securities with a position at any point of the period.
`
}

func (c *heldCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
}

func (c *heldCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.HeldMarkdown(account.Name(), period, account.Held(period)))
	return subcommands.ExitSuccess
}
