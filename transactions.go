package cgt

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/cgt/date"
)

// Kind identifies the variant of a Transaction.
type Kind string

// Transaction kinds, as they appear in reports.
const (
	KindPurchase               Kind = "Bought"
	KindSale                   Kind = "Sold"
	KindDisposal               Kind = "Disposal"
	KindBedAndBreakfast        Kind = "B&B"
	KindPool                   Kind = "Pool"
	KindExcessReportableIncome Kind = "ERI"
	KindScripDividend          Kind = "Scrip"
	KindDividend               Kind = "Dividend"
)

var (
	// ErrCurrencyMismatch is returned when two records of one security are not in the same currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidVariant is returned when an operation receives a transaction variant it cannot handle.
	ErrInvalidVariant = errors.New("invalid transaction variant")
	// ErrExchangeMismatch is returned when an exchange does not cover exactly all prior shares.
	ErrExchangeMismatch = errors.New("exchange does not match all prior shares")
	// ErrUnexpectedSale is returned when a sale exceeds the shares held.
	ErrUnexpectedSale = errors.New("found an unexpected sale")
	// ErrUndefined is returned when reading a single-sided amount of a disposal.
	ErrUndefined = errors.New("undefined for a disposal")
)

// Transaction is a dated record for a single security.
//
// The set of implementations is closed: Purchase, Sale, Disposal,
// BedAndBreakfast, Pool, ExcessReportableIncome, ScripDividend and Dividend.
// Records are values and are never modified once created.
type Transaction interface {
	Kind() Kind
	When() time.Time
	Date() date.Date
	Currency() string
	Units() Quantity
	Note() string
	IsNull() bool
	String() string

	transaction()
}

// Acquisition is a Transaction that brings shares (or cost) into a holding:
// Purchase, ScripDividend, ExcessReportableIncome and Pool.
type Acquisition interface {
	Transaction
	Subtotal() Money
	Fees() Money
	Taxes() Money
	Charges() Money
	Total() Money

	acquire()
}

// cashFlow is implemented by every single-sided transaction.
type cashFlow interface {
	Subtotal() Money
	Total() Money
}

// Subtotal returns the amount before charges of tx. It fails with ErrUndefined
// for Disposal and BedAndBreakfast.
func Subtotal(tx Transaction) (Money, error) {
	if c, ok := tx.(cashFlow); ok {
		return c.Subtotal(), nil
	}
	return Money{}, fmt.Errorf("subtotal %w: %s", ErrUndefined, tx.Kind())
}

// Total returns the amount including charges of tx. It fails with
// ErrUndefined for Disposal and BedAndBreakfast.
func Total(tx Transaction) (Money, error) {
	if c, ok := tx.(cashFlow); ok {
		return c.Total(), nil
	}
	return Money{}, fmt.Errorf("total %w: %s", ErrUndefined, tx.Kind())
}

// trade holds the fields common to single-sided transactions.
type trade struct {
	on       time.Time
	cur      string
	units    Quantity
	subtotal Money // signed, as stored
	fees     Money
	taxes    Money
	note     string
}

func newTrade(on time.Time, units Quantity, subtotal, fees, taxes Money, note string) trade {
	// any of the amounts may carry the currency
	c := cur(subtotal, fees.Add(taxes))
	return trade{
		on:       on,
		cur:      c,
		units:    units,
		subtotal: in(subtotal, c),
		fees:     in(fees, c),
		taxes:    in(taxes, c),
		note:     note,
	}
}

// in returns m with currency c when m has none.
func in(m Money, c string) Money {
	if m.cur == "" {
		m.cur = c
	}
	return m
}

func (t trade) When() time.Time   { return t.on }
func (t trade) Date() date.Date   { return date.FromTime(t.on) }
func (t trade) Currency() string  { return t.cur }
func (t trade) Units() Quantity   { return t.units }
func (t trade) Note() string      { return t.note }
func (t trade) Fees() Money       { return t.fees }
func (t trade) Taxes() Money      { return t.taxes }
func (t trade) Charges() Money    { return t.fees.Add(t.taxes) }
func (t trade) UnitFees() Money   { return t.fees.AbsDiv(t.units) }
func (t trade) UnitTaxes() Money  { return t.taxes.AbsDiv(t.units) }
func (trade) transaction()        {}
func (t trade) describe(k Kind, subtotal, total Money) string {
	return fmt.Sprintf("%-8s %s units=%s unit_price=%s subtotal=%s fees=%s taxes=%s total=%s",
		k, t.Date(), t.units, subtotal.AbsDiv(t.units), subtotal, t.fees, t.taxes, total)
}

// Purchase is a transaction where shares are bought. Its total is the cost
// including charges.
type Purchase struct{ trade }

// NewPurchase creates a purchase of units for subtotal before fees and taxes.
func NewPurchase(on time.Time, units Quantity, subtotal, fees, taxes Money, note string) Purchase {
	return Purchase{newTrade(on, units, subtotal, fees, taxes, note)}
}

func (Purchase) Kind() Kind              { return KindPurchase }
func (p Purchase) Subtotal() Money       { return p.subtotal }
func (p Purchase) Total() Money          { return p.subtotal.Add(p.Charges()) }
func (p Purchase) UnitPrice() Money      { return p.Subtotal().AbsDiv(p.units) }
func (p Purchase) UnitPriceInc() Money   { return p.Total().AbsDiv(p.units) }
func (p Purchase) IsNull() bool          { return p.Total().IsZero() && p.units.IsZero() }
func (p Purchase) String() string        { return p.describe(p.Kind(), p.Subtotal(), p.Total()) }
func (Purchase) acquire()                {}

// ScripDividend is a dividend paid in new shares, pooled like a purchase.
type ScripDividend struct{ Purchase }

// NewScripDividend creates a scrip dividend of units valued at subtotal.
func NewScripDividend(on time.Time, units Quantity, subtotal, fees, taxes Money, note string) ScripDividend {
	return ScripDividend{NewPurchase(on, units, subtotal, fees, taxes, note)}
}

func (ScripDividend) Kind() Kind         { return KindScripDividend }
func (s ScripDividend) String() string   { return s.describe(s.Kind(), s.Subtotal(), s.Total()) }

// ExcessReportableIncome is income reported by an accumulating fund. It is
// pooled as a purchase of no additional shares that raises the cost basis.
type ExcessReportableIncome struct{ Purchase }

// NewExcessReportableIncome creates an income of amount added to the cost basis.
func NewExcessReportableIncome(on time.Time, amount Money, note string) ExcessReportableIncome {
	return ExcessReportableIncome{NewPurchase(on, Q(0), amount, Zero(amount.cur), Zero(amount.cur), note)}
}

func (ExcessReportableIncome) Kind() Kind       { return KindExcessReportableIncome }
func (e ExcessReportableIncome) String() string { return e.describe(e.Kind(), e.Subtotal(), e.Total()) }

// Sale is a transaction where shares are sold.
//
// The stored subtotal is the signed cash amount, negative for a sale.
// Subtotal reports it as positive gross proceeds, and Total is the net
// proceeds after charges.
type Sale struct{ trade }

// NewSale creates a sale of units for gross proceeds before fees and taxes.
func NewSale(on time.Time, units Quantity, proceeds, fees, taxes Money, note string) Sale {
	return Sale{newTrade(on, units, proceeds.Neg(), fees, taxes, note)}
}

func (Sale) Kind() Kind                  { return KindSale }
func (s Sale) Subtotal() Money           { return s.subtotal.Neg() }
func (s Sale) Total() Money              { return s.Subtotal().Sub(s.Charges()) }
func (s Sale) UnitPrice() Money          { return s.Subtotal().AbsDiv(s.units) }
func (s Sale) UnitPriceInc() Money       { return s.Total().AbsDiv(s.units) }
func (s Sale) IsNull() bool              { return s.Total().IsZero() && s.units.IsZero() }
func (s Sale) String() string            { return s.describe(s.Kind(), s.Subtotal(), s.Total()) }

// Dividend is a cash dividend. It does not change the holding and is kept
// for income reporting.
type Dividend struct{ trade }

// NewDividend creates a dividend paid on units for amount before charges.
func NewDividend(on time.Time, units Quantity, amount, fees, taxes Money, note string) Dividend {
	return Dividend{newTrade(on, units, amount, fees, taxes, note)}
}

func (Dividend) Kind() Kind              { return KindDividend }
func (d Dividend) Subtotal() Money       { return d.subtotal }
func (d Dividend) Total() Money          { return d.subtotal.Sub(d.Charges()) }
func (d Dividend) UnitPrice() Money      { return d.Subtotal().AbsDiv(d.units) }
func (d Dividend) IsNull() bool          { return d.Total().IsZero() && d.units.IsZero() }
func (d Dividend) String() string        { return d.describe(d.Kind(), d.Subtotal(), d.Total()) }

// Disposal is a matched purchase and sale of the same units. It freezes both
// sides of the match; it has no single subtotal or total.
type Disposal struct {
	on    time.Time
	cur   string
	units Quantity

	purchaseTotal, purchaseFees, purchaseTaxes Money
	saleTotal, saleFees, saleTaxes             Money
}

func (d Disposal) Kind() Kind           { return KindDisposal }
func (d Disposal) When() time.Time      { return d.on }
func (d Disposal) Date() date.Date      { return date.FromTime(d.on) }
func (d Disposal) Currency() string     { return d.cur }
func (d Disposal) Units() Quantity      { return d.units }
func (d Disposal) Note() string         { return "" }
func (d Disposal) PurchaseTotal() Money { return d.purchaseTotal }
func (d Disposal) PurchaseFees() Money  { return d.purchaseFees }
func (d Disposal) PurchaseTaxes() Money { return d.purchaseTaxes }
func (d Disposal) SaleTotal() Money     { return d.saleTotal }
func (d Disposal) SaleFees() Money      { return d.saleFees }
func (d Disposal) SaleTaxes() Money     { return d.saleTaxes }
func (Disposal) transaction()           {}

// Gain is the realized gain, negative for a loss.
func (d Disposal) Gain() Money { return d.saleTotal.Sub(d.purchaseTotal) }

// UnitPriceSold is the net proceeds per unit.
func (d Disposal) UnitPriceSold() Money { return d.saleTotal.AbsDiv(d.units) }

// UnitPriceBought is the allowable cost per unit.
func (d Disposal) UnitPriceBought() Money { return d.purchaseTotal.AbsDiv(d.units) }

func (d Disposal) IsNull() bool {
	return d.units.IsZero() && d.saleTotal.IsZero() && d.purchaseTotal.IsZero()
}

func (d Disposal) String() string { return d.describe(d.Kind()) }

func (d Disposal) describe(k Kind) string {
	return fmt.Sprintf("%-8s %s units=%s purchase_total=%s sale_total=%s gain=%s",
		k, d.Date(), d.units, d.purchaseTotal, d.saleTotal, d.Gain())
}

// BedAndBreakfast is a Disposal matched under the same-day or 30-day rule.
type BedAndBreakfast struct{ Disposal }

func (BedAndBreakfast) Kind() Kind       { return KindBedAndBreakfast }
func (b BedAndBreakfast) String() string { return b.describe(b.Kind()) }
