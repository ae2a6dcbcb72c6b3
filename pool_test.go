package cgt

import (
	"errors"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	p := NewPool("GBP")
	if !p.Units().IsZero() || !p.Total().IsZero() {
		t.Errorf("NewPool() = %s, want an empty pool", p)
	}
	if !p.When().IsZero() {
		t.Errorf("NewPool().When() = %v, want the zero time", p.When())
	}
	if p.Kind() != KindPool {
		t.Errorf("NewPool().Kind() = %q, want %q", p.Kind(), KindPool)
	}
}

func TestPool_Snapshots(t *testing.T) {
	p0 := NewPool("GBP")
	p1, err := p0.AddPurchase(buy(on("2024-01-10"), 100, 990, 10))
	if err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	p2, err := p1.AddPurchase(buy(on("2024-02-10"), 50, 595, 5))
	if err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}

	if !p0.Units().IsZero() {
		t.Errorf("first snapshot changed: %s", p0)
	}
	if !p1.Units().Equal(Q(100)) || !sameMoney(p1.Total(), GBP(1000)) {
		t.Errorf("second snapshot = %s, want 100 units for 1000", p1)
	}
	if !p2.Units().Equal(Q(150)) || !sameMoney(p2.Total(), GBP(1600)) {
		t.Errorf("third snapshot = %s, want 150 units for 1600", p2)
	}
	if !p2.When().Equal(on("2024-02-10")) {
		t.Errorf("pool date = %v, want the latest transaction date", p2.When())
	}
}

func TestPool_AddDisposal(t *testing.T) {
	p, err := NewPool("GBP").AddPurchase(NewPurchase(on("2024-01-10"), Q(100), GBP(1000), GBP(20), GBP(5), ""))
	if err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	_, _, d, err := Reconcile(p, sell(on("2024-03-01"), 40, 800, 0))
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	got, err := p.AddDisposal(d)
	if err != nil {
		t.Fatalf("AddDisposal() error = %v", err)
	}
	if !got.Units().Equal(Q(60)) {
		t.Errorf("units = %s, want 60", got.Units())
	}
	if !sameMoney(got.Total(), GBP(615)) {
		t.Errorf("total = %s, want 615", got.Total())
	}
	if !sameMoney(got.Fees(), GBP(12)) || !sameMoney(got.Taxes(), GBP(3)) {
		t.Errorf("charges = %s, %s; want 12, 3", got.Fees(), got.Taxes())
	}
	// unit cost is unchanged by a disposal
	if !sameMoney(got.UnitPriceInc(), p.UnitPriceInc()) {
		t.Errorf("unit cost = %s, want %s", got.UnitPriceInc(), p.UnitPriceInc())
	}
}

func TestPool_AddBedAndBreakfast(t *testing.T) {
	p, err := NewPool("GBP").AddPurchase(buy(on("2024-01-10"), 50, 500, 0))
	if err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	_, _, d, err := Reconcile(buy(on("2024-02-04"), 50, 450, 0), sell(on("2024-01-20"), 50, 400, 0))
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	got, err := p.AddBedAndBreakfast(BedAndBreakfast{d})
	if err != nil {
		t.Fatalf("AddBedAndBreakfast() error = %v", err)
	}
	if !got.Units().Equal(Q(50)) {
		t.Errorf("units = %s, want 50", got.Units())
	}
	if !sameMoney(got.Total(), GBP(450)) {
		t.Errorf("total = %s, want 450", got.Total())
	}
}

func TestPool_CurrencyMismatch(t *testing.T) {
	p := NewPool("GBP")
	usd := NewPurchase(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Q(1), USD(10), USD(0), USD(0), "")
	got, err := p.AddPurchase(usd)
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("AddPurchase() error = %v, want %v", err, ErrCurrencyMismatch)
	}
	if !got.Units().IsZero() {
		t.Errorf("AddPurchase() changed the pool on error: %s", got)
	}
}
