package cgt

import (
	"fmt"
	"time"
)

// Pool is the Section 104 holding of a security: the running total of units
// and of their cost basis.
//
// A Pool is a value. Every mutation returns a new Pool and leaves the
// receiver untouched, so a Pool stored in an Event is a snapshot.
type Pool struct{ Purchase }

// NewPool returns an empty pool in the given currency, dated at the zero time.
func NewPool(currency string) Pool {
	return Pool{Purchase{trade{
		cur:      currency,
		subtotal: Zero(currency),
		fees:     Zero(currency),
		taxes:    Zero(currency),
	}}}
}

func (Pool) Kind() Kind       { return KindPool }
func (p Pool) String() string { return p.describe(p.Kind(), p.Subtotal(), p.Total()) }

// AddPurchase returns the pool with a adds to it.
func (p Pool) AddPurchase(a Acquisition) (Pool, error) {
	if err := p.check(a); err != nil {
		return p, err
	}
	p.on = later(p.on, a.When())
	p.units = p.units.Add(a.Units())
	p.subtotal = p.subtotal.Add(a.Subtotal())
	p.fees = p.fees.Add(a.Fees())
	p.taxes = p.taxes.Add(a.Taxes())
	return p, nil
}

// AddDisposal returns the pool with the units and the matched cost of d
// removed. The matched charges are removed from the pool charges so that
// the remaining units keep their share of them.
func (p Pool) AddDisposal(d Disposal) (Pool, error) {
	if err := p.check(d); err != nil {
		return p, err
	}
	p.on = later(p.on, d.When())
	p.units = p.units.Sub(d.Units())
	p.subtotal = p.subtotal.Sub(d.PurchaseTotal().Sub(d.PurchaseFees()).Sub(d.PurchaseTaxes()))
	p.fees = p.fees.Sub(d.PurchaseFees())
	p.taxes = p.taxes.Sub(d.PurchaseTaxes())
	return p, nil
}

// AddBedAndBreakfast returns the pool with the gain of b added to its cost.
// Units are unchanged: the matched purchase never entered the pool.
func (p Pool) AddBedAndBreakfast(b BedAndBreakfast) (Pool, error) {
	if err := p.check(b); err != nil {
		return p, err
	}
	p.on = later(p.on, b.When())
	p.subtotal = p.subtotal.Add(b.Gain())
	return p, nil
}

func (p Pool) check(tx Transaction) error {
	if tx.Currency() != p.cur {
		return fmt.Errorf("%w: cannot add %s in %s to a pool in %s", ErrCurrencyMismatch, tx.Kind(), tx.Currency(), p.cur)
	}
	return nil
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
