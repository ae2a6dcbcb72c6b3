package renderer

import (
	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
)

// EventsMarkdown renders the full event log of a security, every disposal
// with its gain.
func EventsMarkdown(s *cgt.Security) string {
	var r mdRenderer
	r.Printf("# %s\n\n", securityTitle(s))
	events := s.Events()
	if len(events) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}
	r.eventsTable(events, nil)
	return r.String()
}

// HeldMarkdown renders the list of securities held during a period.
func HeldMarkdown(account string, period date.Range, held []*cgt.Security) string {
	var r mdRenderer
	r.Printf("# Securities Held in %s\n\n", period)
	if account != "" {
		r.Printf("Account: %s\n\n", account)
	}
	if len(held) == 0 {
		r.Printf("None.\n")
		return r.String()
	}
	r.Printf("| Ticker | Name | Currency | Shares Now |\n")
	r.Printf("|:---|:---|:---|---:|\n")
	for _, s := range held {
		r.Printf("| %s | %s | %s | %s |\n", s.Ticker(), s.Name(), s.Currency(), s.Pool().Units())
	}
	return r.String()
}
