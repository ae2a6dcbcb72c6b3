package renderer

import (
	"github.com/etnz/cgt"
)

// GainsMarkdown renders a capital gains report: for each security with a
// disposal in the period, its event log up to the end of the period, then
// the totals per currency.
func GainsMarkdown(report *cgt.GainsReport) string {
	var r mdRenderer
	r.Printf("# Capital Gains Report for %s\n\n", report.Range)
	if report.Account != "" {
		r.Printf("Account: %s\n\n", report.Account)
	}

	if len(report.Securities) == 0 {
		r.Printf("No disposals.\n")
		return r.String()
	}

	for _, sg := range report.Securities {
		r.Printf("## %s\n\n", securityTitle(sg.Security))
		r.eventsTable(sg.Events, &report.Range)
	}

	r.Printf("## Summary\n\n")
	r.Printf("| Currency | Disposals | Proceeds | Costs | Gains | Losses | Net |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, t := range report.Totals {
		r.Printf("| %s | %d | %s | %s | %s | %s | **%s** |\n",
			t.Currency, t.Disposals, t.Proceeds, t.Costs, t.Gains, t.Losses, t.Net().SignedString())
	}
	return r.String()
}
