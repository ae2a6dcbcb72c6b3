package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
)

type importCmd struct {
	xmlFile     string
	jsonFile    string
	mappingFile string
	output      string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "converts a broker export into a ledger" }
func (*importCmd) Usage() string {
	return `cgt import [-o <file>] <export.csv>
cgt import [-o <file>] -xml <portfolio.xml>
cgt import [-o <file>] -json <statement.json> -mapping <mapping.json>

  Reads a PortfolioPerformance CSV export or portfolio file, or a JSON
  statement whose fields are located with the JSONPath expressions of a
  mapping file, and writes the transactions of one account as a ledger.

  The mapping file is a JSON object with the keys records, date, type,
  security, symbol, shares, amount, fees, taxes, note, account and currency.

  When the export holds several accounts, select one with -account.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.xmlFile, "xml", "", "PortfolioPerformance XML portfolio file to import.")
	f.StringVar(&c.jsonFile, "json", "", "JSON statement to import.")
	f.StringVar(&c.mappingFile, "mapping", "", "JSONPath mapping of the JSON statement.")
	f.StringVar(&c.output, "o", "-", "Output ledger file, '-' for stdout.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var accounts []*cgt.Account
	var err error
	switch {
	case c.xmlFile != "" && c.jsonFile == "" && f.NArg() == 0:
		accounts, err = importXML(c.xmlFile)
	case c.jsonFile != "" && c.xmlFile == "" && f.NArg() == 0:
		if c.mappingFile == "" {
			fmt.Fprintln(os.Stderr, "-json requires -mapping")
			return subcommands.ExitUsageError
		}
		accounts, err = c.importJSON()
	case c.jsonFile == "" && c.xmlFile == "" && f.NArg() == 1:
		accounts, err = importCSV(f.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "import requires exactly one of a CSV file, -xml or -json")
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		return subcommands.ExitFailure
	}

	account, err := selectAccount(accounts, *accountName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeAccount(c.output, account); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func importCSV(path string) ([]*cgt.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cgt.ImportCSV(f, *currency)
}

func importXML(path string) ([]*cgt.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cgt.ImportXML(f, *currency)
}

func (c *importCmd) importJSON() ([]*cgt.Account, error) {
	data, err := os.ReadFile(c.mappingFile)
	if err != nil {
		return nil, err
	}
	var m cgt.JSONMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid mapping %q: %w", c.mappingFile, err)
	}

	f, err := os.Open(c.jsonFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cgt.ImportJSON(f, m, *currency)
}
