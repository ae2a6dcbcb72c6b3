package cmd

import (
	"flag"

	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// taxYears predicts the identifiers of the recent tax years.
func taxYears() predict.Set {
	current := date.TaxYearOf(date.Today()).From.Year()
	var years predict.Set
	for y := current; y > current-10; y-- {
		years = append(years, date.TaxYear(y).Identifier())
	}
	return years
}

// predictFlag returns the completion of a flag value, by flag name.
func predictFlag(fl *flag.Flag) complete.Predictor {
	switch fl.Name {
	case "ledger", "o":
		return predict.Files("*.jsonl")
	case "csv":
		return predict.Files("*.csv")
	case "json", "mapping":
		return predict.Files("*.json")
	case "xml":
		return predict.Files("*.xml")
	case "y":
		return taxYears()
	case "currency":
		return predict.Set{"GBP", "USD", "EUR"}
	case "account", "security", "s", "d":
		return predict.Something
	}
	return predict.Nothing
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(fl *flag.Flag) { flags[fl.Name] = predictFlag(fl) })
	return flags
}

// Completion builds the shell completion of the application from the global
// flags and every subcommand.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(global),
	}
	for _, cmd := range Commands {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		switch cmd.Name() {
		case "import":
			sub.Args = predict.Files("*.csv")
		case "topic":
			sub.Args = topics()
		}
		c.Sub[cmd.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{Args: predict.Set(commandNames())}
	}
	return c
}

// topics predicts the topics of the user manual.
func topics() predict.Set {
	list, err := docs.List()
	if err != nil {
		return predict.Nothing
	}
	return predict.Set(list)
}

func commandNames() []string {
	names := make([]string, 0, len(Commands))
	for _, cmd := range Commands {
		names = append(names, cmd.Name())
	}
	return names
}
