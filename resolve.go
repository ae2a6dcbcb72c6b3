package cgt

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// bedAndBreakfastDays is the window after a sale in which a purchase is
// matched with it rather than with the pool.
const bedAndBreakfastDays = 30

// Event is a resolved transaction together with the state of the pool
// immediately after it.
type Event struct {
	Transaction Transaction
	Pool        Pool
}

// IsDisposal reports whether the event realized a gain or a loss.
func (e Event) IsDisposal() bool {
	switch e.Transaction.(type) {
	case Disposal, BedAndBreakfast:
		return true
	}
	return false
}

// Gain returns the realized gain of a disposal event, and false for any other event.
func (e Event) Gain() (Money, bool) {
	switch v := e.Transaction.(type) {
	case Disposal:
		return v.Gain(), true
	case BedAndBreakfast:
		return v.Gain(), true
	}
	return Money{}, false
}

// Resolver applies the share matching rules to the transactions of a single
// security.
//
// Its zero value is ready to use: the currency is then taken from the first
// transaction and logs go to slog.Default().
type Resolver struct {
	Currency string
	Logger   *slog.Logger
}

// Resolve is a shortcut for Resolver{}.Resolve.
func Resolve(transactions []Transaction) ([]Event, error) {
	return Resolver{}.Resolve(transactions)
}

// Resolve matches sales against purchases and returns the chronological
// event log of the security.
//
// Sales marked as an "exchange" are matched against every earlier purchase.
// Then each sale is matched against purchases of the same day and of the 30
// following days, in date order. Whatever remains is replayed in date order
// through the pool, where each sale is matched against the pool.
//
// Resolve is deterministic and does not modify transactions.
func (r Resolver) Resolve(transactions []Transaction) ([]Event, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	currency := r.Currency
	txs := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if currency == "" {
			currency = tx.Currency()
		}
		if tx.Currency() != currency {
			return nil, fmt.Errorf("%w: %s on %s is in %s, expected %s", ErrCurrencyMismatch, tx.Kind(), tx.Date(), tx.Currency(), currency)
		}
		if tx.IsNull() {
			continue
		}
		txs = append(txs, tx)
	}
	sortChronologically(txs)
	log.Debug("resolving transactions", "count", len(txs), "currency", currency)

	var (
		purchases []Acquisition
		sales     []Sale
		others    []Transaction
		pending   []Transaction
	)
	for _, tx := range txs {
		switch v := tx.(type) {
		case Acquisition:
			purchases = append(purchases, v)
		case Sale:
			sales = append(sales, v)
		case Dividend, Disposal, BedAndBreakfast:
			others = append(others, v)
		default:
			return nil, fmt.Errorf("%w: %T", ErrInvalidVariant, tx)
		}
	}

	// A share reorganisation exchanges all the shares held before it; the new
	// shares keep the acquisition date and cost of the old ones.
	for i := range sales {
		sale := sales[i]
		if !strings.Contains(strings.ToLower(sale.Note()), "exchange") {
			continue
		}
		var prior []Acquisition
		for _, p := range purchases {
			if p.Date().Before(sale.Date()) {
				prior = append(prior, p)
			}
		}
		_, residual, disposal, err := Exchange(prior, sale)
		if err != nil {
			return nil, fmt.Errorf("exchange on %s: %w", sale.Date(), err)
		}
		log.Debug("exchanged prior purchases", "sale", sale, "purchases", len(prior), "disposal", disposal)
		sales[i] = residual
		pending = append(pending, disposal)
	}

	// Same-day and 30-day rules: purchases are visited in date order so
	// same-day purchases are matched first.
	for i := range sales {
		for j := range purchases {
			sale, purchase := sales[i], purchases[j]
			if sale.Units().IsZero() {
				break
			}
			if purchase.Units().IsZero() {
				continue
			}
			days := purchase.Date().Sub(sale.Date())
			if days < 0 || days > bedAndBreakfastDays {
				continue
			}
			residualPurchase, residualSale, disposal, err := Reconcile(purchase, sale)
			if err != nil {
				return nil, fmt.Errorf("matching sale on %s with purchase on %s: %w", sale.Date(), purchase.Date(), err)
			}
			log.Debug("matched purchase and sale",
				"purchase", purchase, "sale", sale,
				"residual_purchase", residualPurchase, "residual_sale", residualSale, "disposal", disposal)
			purchases[j], sales[i] = residualPurchase, residualSale
			pending = append(pending, BedAndBreakfast{disposal})
		}
	}

	remaining := make([]Transaction, 0, len(purchases)+len(sales)+len(others)+len(pending))
	for _, p := range purchases {
		remaining = append(remaining, p)
	}
	for _, s := range sales {
		remaining = append(remaining, s)
	}
	remaining = append(remaining, others...)
	remaining = append(remaining, pending...)
	remaining = slices.DeleteFunc(remaining, Transaction.IsNull)
	sortChronologically(remaining)

	pool := NewPool(currency)
	events := make([]Event, 0, len(remaining))
	for _, tx := range remaining {
		var err error
		recorded := tx
		switch v := tx.(type) {
		case Acquisition:
			pool, err = pool.AddPurchase(v)
		case BedAndBreakfast:
			pool, err = pool.AddBedAndBreakfast(v)
		case Disposal:
			pool, err = pool.AddDisposal(v)
		case Sale:
			var residual Sale
			var disposal Disposal
			if _, residual, disposal, err = Reconcile(pool, v); err != nil {
				break
			}
			if !residual.IsNull() {
				err = fmt.Errorf("%w: %s", ErrUnexpectedSale, residual)
				break
			}
			log.Debug("matched sale with pool", "sale", v, "disposal", disposal)
			pool, err = pool.AddDisposal(disposal)
			recorded = disposal
		case Dividend:
			// no effect on the holding
		default:
			err = fmt.Errorf("%w: %T", ErrInvalidVariant, tx)
		}
		if err != nil {
			return nil, fmt.Errorf("%s on %s: %w", tx.Kind(), tx.Date(), err)
		}
		log.Debug("pooled", "event", recorded, "units", pool.Units(), "cost", pool.Total())
		events = append(events, Event{Transaction: recorded, Pool: pool})
	}
	return events, nil
}

// sortChronologically sorts txs by timestamp, keeping the relative order of
// simultaneous transactions.
func sortChronologically(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return a.When().Compare(b.When())
	})
}
