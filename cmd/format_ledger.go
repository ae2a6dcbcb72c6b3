package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
)

type formatLedgerCmd struct {
	output string
}

func (*formatLedgerCmd) Name() string     { return "fmt" }
func (*formatLedgerCmd) Synopsis() string { return "formats the ledger file into a canonical form" }
func (*formatLedgerCmd) Usage() string {
	return `cgt fmt [-o <file>]

  Rewrites the ledger with securities sorted by name, transactions in
  chronological order and keys in a fixed order. Use -o - to print the
  result instead of overwriting the ledger.
`
}

func (p *formatLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file, '-' for stdout. Defaults to the ledger file itself.")
}

func (p *formatLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// 1. Read the ledger
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// 2. Write it back
	output := p.output
	if output == "" {
		output = *ledgerFile
	}
	if err := writeAccount(output, account); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if output != "-" {
		fmt.Fprintf(os.Stderr, "Ledger file '%s' has been formatted.\n", output)
	}
	return subcommands.ExitSuccess
}

// writeAccount encodes a into the file named output, or to stdout when it
// is "-".
func writeAccount(output string, a *cgt.Account) error {
	var w io.Writer = stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error opening ledger file %q for writing: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	return cgt.EncodeAccount(w, a)
}
