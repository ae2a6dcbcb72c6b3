package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	ticker string
}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display the chronological log of a security and its section 104 pool"
}
func (*logCmd) Usage() string {
	return `cgt log [-security <ticker>]

  Displays every event of a security once its sales have been matched with
  purchases: purchases, sales, bed and breakfast matches and dividends, with
  the state of the pool after each of them.

  Without -security, the log of every security is displayed.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "security", "", "Ticker of the security to display.")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := loadAccount(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading account: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.ticker != "" {
		s := account.Security(c.ticker)
		if s == nil {
			fmt.Fprintf(os.Stderr, "Error: security %q not found in %q\n", c.ticker, account.Name())
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.EventsMarkdown(s))
		return subcommands.ExitSuccess
	}

	var md strings.Builder
	for _, s := range account.Securities() {
		md.WriteString(renderer.EventsMarkdown(s))
		md.WriteString("\n")
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
