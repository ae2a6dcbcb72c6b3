package cgt

import (
	"errors"
	"testing"

	"github.com/etnz/cgt/date"
)

func TestNewSecurity(t *testing.T) {
	tests := []struct {
		ticker, name, currency string
		wantErr                bool
		wantName               string
	}{
		{"VUSA", "Vanguard S&P 500", "GBP", false, "Vanguard S&P 500"},
		{"VUSA", "", "GBP", false, "VUSA"},
		{"", "Nameless", "GBP", true, ""},
		{"VUSA", "", "gbp", true, ""},
		{"VUSA", "", "XYZ", true, ""},
	}
	for _, tc := range tests {
		t.Run(tc.ticker+"/"+tc.currency, func(t *testing.T) {
			s, err := NewSecurity(tc.ticker, tc.name, tc.currency)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewSecurity() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && s.Name() != tc.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tc.wantName)
			}
		})
	}
}

func TestSecurity_Add(t *testing.T) {
	s, err := NewSecurity("VUSA", "", "GBP")
	if err != nil {
		t.Fatalf("NewSecurity() error = %v", err)
	}
	if err := s.Add(buy(on("2022-01-01"), 100, 1000, 0)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add(sell(on("2023-01-01"), 40, 600, 0)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := len(s.Disposals()); got != 1 {
		t.Errorf("Disposals() got %d, want 1", got)
	}

	// an oversell is rejected and leaves the security unchanged
	err = s.Add(sell(on("2023-06-01"), 100, 1500, 0))
	if !errors.Is(err, ErrUnexpectedSale) {
		t.Fatalf("Add() error = %v, want %v", err, ErrUnexpectedSale)
	}
	if got := len(s.Transactions()); got != 2 {
		t.Errorf("Transactions() got %d, want 2 after a rejected Add", got)
	}
	if got := len(s.Events()); got != 2 {
		t.Errorf("Events() got %d, want 2 after a rejected Add", got)
	}
	if !s.Pool().Units().Equal(Q(60)) {
		t.Errorf("Pool().Units() = %s, want 60", s.Pool().Units())
	}

	// the event log reflects the transactions added later in the past
	if err := s.Add(buy(on("2023-01-15"), 40, 560, 0)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	ds := s.Disposals()
	if len(ds) != 1 {
		t.Fatalf("Disposals() got %d, want 1", len(ds))
	}
	if _, ok := ds[0].Transaction.(BedAndBreakfast); !ok {
		t.Errorf("the sale is now matched as %s, want %s", ds[0].Transaction.Kind(), KindBedAndBreakfast)
	}
}

func TestSecurity_IsHeld(t *testing.T) {
	s, err := NewSecurity("VUSA", "", "GBP")
	if err != nil {
		t.Fatalf("NewSecurity() error = %v", err)
	}
	err = s.Add(
		buy(on("2020-05-01"), 10, 100, 0),
		sell(on("2021-03-01"), 10, 120, 0),
		buy(on("2023-02-01"), 5, 60, 0),
	)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	tests := []struct {
		year string
		want bool
	}{
		{"2019-20", false},
		{"2020-21", true}, // bought and sold in the year
		{"2021-22", false},
		{"2022-23", true}, // bought in the year
		{"2023-24", true}, // held at the start of the year
	}
	for _, tc := range tests {
		t.Run(tc.year, func(t *testing.T) {
			r, err := date.ParseTaxYear(tc.year)
			if err != nil {
				t.Fatalf("ParseTaxYear() error = %v", err)
			}
			if got := s.IsHeld(r); got != tc.want {
				t.Errorf("IsHeld(%s) = %v, want %v", r, got, tc.want)
			}
		})
	}
}

func TestSecurity_Dividends(t *testing.T) {
	s, err := NewSecurity("VUSA", "", "GBP")
	if err != nil {
		t.Fatalf("NewSecurity() error = %v", err)
	}
	err = s.Add(
		buy(on("2022-01-01"), 100, 1000, 0),
		NewDividend(on("2023-03-20"), Q(100), GBP(25), GBP(0), GBP(0), ""),
		NewDividend(on("2022-09-20"), Q(100), GBP(20), GBP(0), GBP(0), ""),
		NewDividend(on("2023-04-20"), Q(100), GBP(30), GBP(0), GBP(0), ""),
	)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	got := s.Dividends(date.TaxYear(2022))
	if len(got) != 2 {
		t.Fatalf("Dividends() got %d, want 2", len(got))
	}
	if !got[0].When().Before(got[1].When()) {
		t.Errorf("Dividends() are not in chronological order: %v", got)
	}
}
