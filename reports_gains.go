package cgt

import (
	"slices"

	"github.com/etnz/cgt/date"
)

// Totals sums the disposals of one currency.
type Totals struct {
	Currency  string
	Disposals int
	Proceeds  Money // net proceeds of all disposals
	Costs     Money // allowable costs of all disposals
	Gains     Money // sum of the gains
	Losses    Money // sum of the losses, as a positive amount
}

func newTotals(currency string) Totals {
	z := Zero(currency)
	return Totals{Currency: currency, Proceeds: z, Costs: z, Gains: z, Losses: z}
}

// Net returns gains minus losses.
func (t Totals) Net() Money { return t.Gains.Sub(t.Losses) }

func (t *Totals) add(d Disposal) {
	t.Disposals++
	t.Proceeds = t.Proceeds.Add(d.SaleTotal())
	t.Costs = t.Costs.Add(d.PurchaseTotal())
	if g := d.Gain(); g.IsNegative() {
		t.Losses = t.Losses.Add(g.Neg())
	} else {
		t.Gains = t.Gains.Add(g)
	}
}

// SecurityGains is the capital gains section of a single security.
type SecurityGains struct {
	Security *Security
	Events   []Event // every event up to the end of the range
	Totals
}

// GainsReport contains the capital gains realized in an account over a range.
type GainsReport struct {
	Account    string
	Range      date.Range
	Securities []SecurityGains
	Totals     []Totals // one per currency, sorted by currency
}

// CapitalGains reports every security with at least one disposal inside r.
// The account must have been resolved.
func (a *Account) CapitalGains(r date.Range) *GainsReport {
	report := &GainsReport{Account: a.name, Range: r}
	totals := make(map[string]*Totals)

	for _, s := range a.Securities() {
		sg := SecurityGains{Security: s, Totals: newTotals(s.currency)}
		for _, e := range s.events {
			if e.Transaction.Date().After(r.To) {
				break
			}
			sg.Events = append(sg.Events, e)
			if !r.Contains(e.Transaction.Date()) {
				continue
			}
			switch v := e.Transaction.(type) {
			case Disposal:
				sg.add(v)
			case BedAndBreakfast:
				sg.add(v.Disposal)
			}
		}
		if sg.Disposals == 0 {
			continue
		}
		report.Securities = append(report.Securities, sg)

		t, ok := totals[s.currency]
		if !ok {
			nt := newTotals(s.currency)
			t = &nt
			totals[s.currency] = t
		}
		t.Disposals += sg.Disposals
		t.Proceeds = t.Proceeds.Add(sg.Proceeds)
		t.Costs = t.Costs.Add(sg.Costs)
		t.Gains = t.Gains.Add(sg.Gains)
		t.Losses = t.Losses.Add(sg.Losses)
	}

	for _, t := range totals {
		report.Totals = append(report.Totals, *t)
	}
	slices.SortFunc(report.Totals, func(a, b Totals) int {
		switch {
		case a.Currency < b.Currency:
			return -1
		case a.Currency > b.Currency:
			return 1
		}
		return 0
	})
	return report
}

// SecurityDividends lists the dividends of one security.
type SecurityDividends struct {
	Security  *Security
	Dividends []Dividend
	Total     Money
}

// DividendsReport contains the cash dividends received in an account over a range.
type DividendsReport struct {
	Account    string
	Range      date.Range
	Securities []SecurityDividends
}

// Dividends reports the cash dividends paid inside r.
func (a *Account) Dividends(r date.Range) *DividendsReport {
	report := &DividendsReport{Account: a.name, Range: r}
	for _, s := range a.Securities() {
		dividends := s.Dividends(r)
		if len(dividends) == 0 {
			continue
		}
		total := Zero(s.currency)
		for _, d := range dividends {
			total = total.Add(d.Total())
		}
		report.Securities = append(report.Securities, SecurityDividends{Security: s, Dividends: dividends, Total: total})
	}
	return report
}

// Held returns the securities that were held at some point in r.
func (a *Account) Held(r date.Range) []*Security {
	var held []*Security
	for _, s := range a.Securities() {
		if s.IsHeld(r) {
			held = append(held, s)
		}
	}
	return held
}
