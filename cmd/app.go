// Package cmd implements the CLI application to report UK capital gains.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile  = flag.String("ledger", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
	csvFile     = flag.String("csv", "", "Read transactions from a PortfolioPerformance CSV export instead of the ledger")
	accountName = flag.String("account", "", "Account to report on. Defaults to the ledger file name, or to the only account of a CSV export.")
	currency    = flag.String("currency", cgt.DefaultCurrency, "Currency of imported transactions that do not state one")
	Verbose     = flag.Bool("v", false, "Log how sales are matched with purchases")
)

// Commands lists every subcommand of the application.
var Commands = []subcommands.Command{
	&gainsCmd{},
	&dividendsCmd{},
	&heldCmd{},
	&logCmd{},
	&importCmd{},
	&formatLedgerCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands[:4] {
		c.Register(cmd, "reports")
	}
	for _, cmd := range Commands[4:6] {
		c.Register(cmd, "ledger")
	}
	c.Register(Commands[6], "help")
}

// IsCommand reports whether name is a builtin subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return slices.Contains(commandNames(), name)
}

// SetupLogging configures the default logger on stderr. Debug messages are
// printed only in verbose mode.
func SetupLogging() {
	level := slog.LevelWarn
	if *Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// defaultAccountName returns the account name derived from the ledger file name.
func defaultAccountName() string {
	if *accountName != "" {
		return *accountName
	}
	base := filepath.Base(*ledgerFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// selectAccount returns the account named name, or the only account when
// name is empty.
func selectAccount(accounts []*cgt.Account, name string) (*cgt.Account, error) {
	if name == "" {
		if len(accounts) == 1 {
			return accounts[0], nil
		}
		names := make([]string, 0, len(accounts))
		for _, a := range accounts {
			names = append(names, fmt.Sprintf("%q", a.Name()))
		}
		return nil, fmt.Errorf("%d accounts found, select one with -account: %s", len(accounts), strings.Join(names, ", "))
	}
	for _, a := range accounts {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %q not found", name)
}

// DecodeAccount decodes the account from the app ledger file, or from the
// CSV export when one is set. The account is not resolved.
func DecodeAccount() (*cgt.Account, error) {
	if *csvFile != "" {
		f, err := os.Open(*csvFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		accounts, err := cgt.ImportCSV(f, *currency)
		if err != nil {
			return nil, fmt.Errorf("cannot import %q: %w", *csvFile, err)
		}
		return selectAccount(accounts, *accountName)
	}

	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := cgt.DecodeAccount(defaultAccountName(), f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", *ledgerFile, err)
	}
	return a, nil
}

// loadAccount decodes and resolves the app account.
func loadAccount(ctx context.Context) (*cgt.Account, error) {
	a, err := DecodeAccount()
	if err != nil {
		return nil, err
	}
	if err := a.Resolve(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// periodFlags are the flags shared by reports to select a period.
type periodFlags struct {
	year  string
	start string
	end   string
}

func (p *periodFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.year, "y", "", "UK tax year of the report, e.g. 2023-24. Defaults to the current tax year.")
	f.StringVar(&p.start, "s", "", "Start date of a custom reporting period. Overrides -y.")
	f.StringVar(&p.end, "d", "", "End date of a custom reporting period (defaults to today).")
}

// Range returns the selected period.
func (p *periodFlags) Range() (date.Range, error) {
	if p.start != "" {
		from, err := date.Parse(p.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		to := date.Today()
		if p.end != "" {
			if to, err = date.Parse(p.end); err != nil {
				return date.Range{}, fmt.Errorf("invalid end date: %w", err)
			}
		}
		return date.NewRange(from, to), nil
	}
	if p.end != "" {
		return date.Range{}, errors.New("-d requires -s")
	}
	if p.year != "" {
		return date.ParseTaxYear(p.year)
	}
	return date.TaxYearOf(date.Today()), nil
}

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// printMarkdown renders md for the terminal, or prints it as is when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	slog.Debug("cannot render markdown", "error", err)
	fmt.Fprint(stdout, md)
}
