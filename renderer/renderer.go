package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
)

// mdRenderer accumulates a markdown document.
type mdRenderer struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func (r *mdRenderer) row(day, event string, amount cgt.Money, pool string) {
	r.Printf("| %s | %s | %s | %s |\n", day, event, amount, pool)
}

// poolState describes the pool after an event.
func poolState(p cgt.Pool) string {
	if p.Units().IsZero() && p.Total().IsZero() {
		return "empty"
	}
	return fmt.Sprintf("%s shares @ %s, cost %s", p.Units(), p.UnitPriceInc(), p.Total())
}

// eventsTable prints an event log as a table, with the pool after each
// event. When period is set, only the gains of disposals inside it are
// stated.
func (r *mdRenderer) eventsTable(events []cgt.Event, period *date.Range) {
	r.Printf("| Date | Event | Amount | Pool |\n")
	r.Printf("|:---|:---|---:|:---|\n")
	for _, e := range events {
		day := e.Transaction.Date().String()
		pool := poolState(e.Pool)
		applies := period == nil || period.Contains(e.Transaction.Date())

		switch tx := e.Transaction.(type) {
		case cgt.ExcessReportableIncome:
			r.row(day, fmt.Sprintf("ERI of %s shares @ %s plus %s costs", tx.Units(), tx.Subtotal(), tx.Charges()), tx.Total(), pool)
		case cgt.ScripDividend:
			r.row(day, fmt.Sprintf("Scrip dividend of %s shares", tx.Units()), tx.Total(), pool)
		case cgt.Purchase:
			r.row(day, fmt.Sprintf("Bought %s shares for %s plus %s costs", tx.Units(), tx.Subtotal(), tx.Charges()), tx.Total(), pool)
		case cgt.Pool:
			r.row(day, fmt.Sprintf("Pool of %s shares", tx.Units()), tx.Total(), pool)
		case cgt.Sale:
			r.row(day, fmt.Sprintf("Sold %s shares for %s less %s costs", tx.Units(), tx.Subtotal(), tx.Charges()), tx.Total(), pool)
		case cgt.Dividend:
			r.row(day, fmt.Sprintf("Dividend for %s shares @ %s each", tx.Units(), tx.UnitPrice()), tx.Total(), pool)
		case cgt.BedAndBreakfast:
			r.row(day, fmt.Sprintf("B&B: bought %s shares @ %s", tx.Units(), tx.UnitPriceBought()), tx.PurchaseTotal(), "")
			r.row("", fmt.Sprintf("B&B: sold %s shares @ %s", tx.Units(), tx.UnitPriceSold()), tx.SaleTotal(), "")
			r.gainRow(tx.Gain(), applies, pool)
		case cgt.Disposal:
			r.row(day, fmt.Sprintf("Sold %s shares @ %s each", tx.Units(), tx.UnitPriceSold()), tx.SaleTotal(), "")
			if applies {
				r.row("", fmt.Sprintf("Cost of %s shares from pool @ %s each", tx.Units(), tx.UnitPriceBought()), tx.PurchaseTotal(), "")
			}
			r.gainRow(tx.Gain(), applies, pool)
		}
	}
	r.Printf("\n")
}

func (r *mdRenderer) gainRow(gain cgt.Money, applies bool, pool string) {
	if !applies {
		r.Printf("| | Resulting gain applies to another tax year | | %s |\n", pool)
		return
	}
	r.Printf("| | **Resulting gain** | **%s** | %s |\n", gain.SignedString(), pool)
}

// securityTitle is the heading text of a security.
func securityTitle(s *cgt.Security) string {
	if s.Name() == s.Ticker() {
		return s.Ticker()
	}
	return fmt.Sprintf("%s (%s)", s.Name(), s.Ticker())
}
