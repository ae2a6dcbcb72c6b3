package renderer

import (
	"github.com/etnz/cgt"
)

// DividendsMarkdown renders the cash dividends received in a period.
func DividendsMarkdown(report *cgt.DividendsReport) string {
	var r mdRenderer
	r.Printf("# Dividends Report for %s\n\n", report.Range)
	if report.Account != "" {
		r.Printf("Account: %s\n\n", report.Account)
	}
	if len(report.Securities) == 0 {
		r.Printf("No dividends.\n")
		return r.String()
	}

	totals := make(map[string]cgt.Money)
	var currencies []string
	for _, sd := range report.Securities {
		r.Printf("## %s\n\n", securityTitle(sd.Security))
		r.Printf("| Date | Shares | Per Share | Fees | Taxes | Amount |\n")
		r.Printf("|:---|---:|---:|---:|---:|---:|\n")
		for _, d := range sd.Dividends {
			r.Printf("| %s | %s | %s | %s | %s | %s |\n", d.Date(), d.Units(), d.UnitPrice(), d.Fees(), d.Taxes(), d.Total())
		}
		r.Printf("| **Total** | | | | | **%s** |\n\n", sd.Total)

		c := sd.Security.Currency()
		if _, ok := totals[c]; !ok {
			currencies = append(currencies, c)
			totals[c] = cgt.Zero(c)
		}
		totals[c] = totals[c].Add(sd.Total)
	}

	r.Printf("## Summary\n\n")
	r.Printf("| Currency | Amount |\n")
	r.Printf("|:---|---:|\n")
	for _, c := range currencies {
		r.Printf("| %s | %s |\n", c, totals[c])
	}
	return r.String()
}
