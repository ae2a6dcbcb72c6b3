package cgt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/etnz/cgt/date"
)

// newTestAccount is a helper for test creating a resolved account with three
// securities.
func newTestAccount(t *testing.T) *Account {
	t.Helper()
	a := NewAccount("ISA")
	for _, d := range []struct{ ticker, name string }{
		{"VUSA", "Vanguard S&P 500"},
		{"ISF", "iShares Core FTSE 100"},
		{"IGLT", "iShares UK Gilts"},
	} {
		if _, err := a.Declare(d.ticker, d.name, "GBP"); err != nil {
			t.Fatalf("Declare() error = %v", err)
		}
	}
	appends := []struct {
		ticker string
		txs    []Transaction
	}{
		{"VUSA", []Transaction{
			buy(on("2021-05-10"), 100, 5000, 10),
			sell(on("2022-06-01"), 40, 2600, 10),
			NewDividend(on("2022-07-01"), Q(60), GBP(18), GBP(0), GBP(0), ""),
		}},
		{"ISF", []Transaction{
			buy(on("2020-01-02"), 200, 1400, 0),
			sell(on("2022-12-01"), 200, 1300, 0),
		}},
		{"IGLT", []Transaction{
			buy(on("2023-09-01"), 10, 100, 0),
		}},
	}
	for _, ap := range appends {
		if err := a.Append(ap.ticker, ap.txs...); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := a.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return a
}

func TestAccount_Declare(t *testing.T) {
	a := NewAccount("GIA")
	s1, err := a.Declare("VUSA", "Vanguard S&P 500", "GBP")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	s2, err := a.Declare("VUSA", "", "GBP")
	if err != nil {
		t.Fatalf("Declare() again error = %v", err)
	}
	if s1 != s2 {
		t.Errorf("Declare() again returned a different security")
	}
	if _, err := a.Declare("VUSA", "", "USD"); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Declare() with another currency error = %v, want %v", err, ErrCurrencyMismatch)
	}
	if err := a.Append("UNKNOWN", buy(on("2022-01-01"), 1, 1, 0)); err == nil {
		t.Errorf("Append() to an undeclared security: expected an error")
	}
}

func TestAccount_Securities(t *testing.T) {
	a := newTestAccount(t)
	var got []string
	for _, s := range a.Securities() {
		got = append(got, s.Ticker())
	}
	want := []string{"ISF", "IGLT", "VUSA"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Securities() = %v, want %v", got, want)
	}
}

func TestAccount_Resolve(t *testing.T) {
	a := NewAccount("ISA")
	for i := range 20 {
		ticker := fmt.Sprintf("S%02d", i)
		if _, err := a.Declare(ticker, "", "GBP"); err != nil {
			t.Fatalf("Declare() error = %v", err)
		}
		if err := a.Append(ticker, buy(on("2022-01-01"), 10, 100, 0), sell(on("2022-03-01"), 5, 60, 0)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := a.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range a.Securities() {
		if got := len(s.Disposals()); got != 1 {
			t.Errorf("%s: Disposals() got %d, want 1", s.Ticker(), got)
		}
	}

	// one faulty security fails the whole account
	if err := a.Append("S07", sell(on("2023-01-01"), 50, 600, 0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := a.Resolve(context.Background()); !errors.Is(err, ErrUnexpectedSale) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrUnexpectedSale)
	}
}

func TestAccount_Resolve_Canceled(t *testing.T) {
	a := newTestAccount(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Resolve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want %v", err, context.Canceled)
	}
}

func TestAccount_CapitalGains(t *testing.T) {
	a := newTestAccount(t)
	report := a.CapitalGains(date.TaxYear(2022))

	if len(report.Securities) != 2 {
		t.Fatalf("CapitalGains() got %d securities, want 2", len(report.Securities))
	}
	// sorted by name
	if got := report.Securities[0].Security.Ticker(); got != "ISF" {
		t.Errorf("first security = %s, want ISF", got)
	}
	isf, vusa := report.Securities[0], report.Securities[1]
	if !sameMoney(isf.Losses, GBP(100)) || !isf.Gains.IsZero() {
		t.Errorf("ISF gains, losses = %s, %s; want 0, 100", isf.Gains, isf.Losses)
	}
	// 40 units sold for 2590 net, bought at 50.1 each
	if !sameMoney(vusa.Gains, GBP(2590-2004)) {
		t.Errorf("VUSA gains = %s, want %v", vusa.Gains, 2590-2004)
	}
	if len(vusa.Events) != 3 {
		t.Errorf("VUSA events = %d, want 3", len(vusa.Events))
	}

	if len(report.Totals) != 1 {
		t.Fatalf("CapitalGains() got %d totals, want 1", len(report.Totals))
	}
	tot := report.Totals[0]
	if tot.Disposals != 2 {
		t.Errorf("total disposals = %d, want 2", tot.Disposals)
	}
	if !sameMoney(tot.Net(), GBP(586-100)) {
		t.Errorf("net gain = %s, want %v", tot.Net(), 586-100)
	}
	if !sameMoney(tot.Proceeds, GBP(2590+1300)) || !sameMoney(tot.Costs, GBP(2004+1400)) {
		t.Errorf("proceeds, costs = %s, %s; want 3890, 3404", tot.Proceeds, tot.Costs)
	}

	if got := a.CapitalGains(date.TaxYear(2023)); len(got.Securities) != 0 {
		t.Errorf("CapitalGains(2023-24) got %d securities, want none", len(got.Securities))
	}
}

func TestAccount_Dividends(t *testing.T) {
	a := newTestAccount(t)
	report := a.Dividends(date.TaxYear(2022))
	if len(report.Securities) != 1 {
		t.Fatalf("Dividends() got %d securities, want 1", len(report.Securities))
	}
	if got := report.Securities[0]; got.Security.Ticker() != "VUSA" || !sameMoney(got.Total, GBP(18)) {
		t.Errorf("Dividends() = %s %s, want VUSA 18", got.Security.Ticker(), got.Total)
	}
}

func TestAccount_Held(t *testing.T) {
	a := newTestAccount(t)
	tests := []struct {
		year int
		want []string
	}{
		{2020, []string{"ISF"}},
		{2022, []string{"ISF", "VUSA"}},
		{2023, []string{"IGLT", "VUSA"}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.year), func(t *testing.T) {
			var got []string
			for _, s := range a.Held(date.TaxYear(tc.year)) {
				got = append(got, s.Ticker())
			}
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Errorf("Held() = %v, want %v", got, tc.want)
			}
		})
	}
}
