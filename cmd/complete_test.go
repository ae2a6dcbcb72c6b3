package cmd

import (
	"flag"
	"testing"

	"github.com/etnz/cgt/date"
)

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("cgt", flag.ContinueOnError)
	global.String("ledger", "", "")
	global.Bool("v", false, "")

	c := Completion(global)
	if _, ok := c.Flags["ledger"]; !ok {
		t.Errorf("Completion() global flags = %v, want ledger", c.Flags)
	}
	for _, name := range []string{"gains", "dividends", "held", "log", "import", "fmt"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q subcommand", name)
		}
	}
	if _, ok := c.Sub["gains"].Flags["y"]; !ok {
		t.Errorf("gains completion flags = %v, want y", c.Sub["gains"].Flags)
	}
	if _, ok := c.Sub["import"].Flags["mapping"]; !ok {
		t.Errorf("import completion flags = %v, want mapping", c.Sub["import"].Flags)
	}
}

func TestTaxYears(t *testing.T) {
	years := taxYears()
	if len(years) != 10 {
		t.Fatalf("taxYears() = %v, want 10 years", years)
	}
	current := date.TaxYearOf(date.Today()).Identifier()
	if years[0] != current {
		t.Errorf("taxYears() = %v, want it to start with %s", years, current)
	}
}
