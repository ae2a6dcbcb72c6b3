package cgt

import "fmt"

// Reconcile matches the smaller of purchase.Units() and sale.Units() and
// splits both sides into residuals and a Disposal.
//
// The purchase side of the disposal carries the cost per unit of purchase,
// the sale side the net proceeds per unit of sale. A side that is fully
// consumed comes back as an empty (null) transaction at its own date.
// Residuals always satisfy:
//
//	residual purchase total + disposal purchase total == purchase total
//	residual sale total + disposal sale total == sale total
func Reconcile(purchase Acquisition, sale Sale) (Purchase, Sale, Disposal, error) {
	if purchase.Currency() != sale.Currency() {
		return Purchase{}, Sale{}, Disposal{}, fmt.Errorf("%w: purchase in %s, sale in %s", ErrCurrencyMismatch, purchase.Currency(), sale.Currency())
	}
	c := sale.Currency()
	pu, su := purchase.Units(), sale.Units()

	switch pu.Cmp(su) {
	case 1:
		// Part of the purchase is sold, the whole sale is consumed.
		d := Disposal{
			on:            sale.When(),
			cur:           c,
			units:         su,
			purchaseTotal: purchase.Total().Scale(su, pu),
			purchaseFees:  purchase.Fees().Scale(su, pu),
			purchaseTaxes: purchase.Taxes().Scale(su, pu),
			saleTotal:     sale.Total(),
			saleFees:      sale.Fees(),
			saleTaxes:     sale.Taxes(),
		}
		left := pu.Sub(su)
		fees := purchase.Fees().Scale(left, pu)
		taxes := purchase.Taxes().Scale(left, pu)
		cost := purchase.Total().Sub(d.purchaseTotal).Sub(fees).Sub(taxes)
		return NewPurchase(purchase.When(), left, cost, fees, taxes, purchase.Note()), emptySale(sale), d, nil

	case -1:
		// More than the purchase is sold, the whole purchase is consumed.
		d := Disposal{
			on:            sale.When(),
			cur:           c,
			units:         pu,
			purchaseTotal: purchase.Total(),
			purchaseFees:  purchase.Fees(),
			purchaseTaxes: purchase.Taxes(),
			saleTotal:     sale.Total().Scale(pu, su),
			saleFees:      sale.Fees().Scale(pu, su),
			saleTaxes:     sale.Taxes().Scale(pu, su),
		}
		left := su.Sub(pu)
		fees := sale.Fees().Scale(left, su)
		taxes := sale.Taxes().Scale(left, su)
		// Net proceeds left, plus the charges they bore, give back gross proceeds.
		proceeds := sale.Total().Sub(d.saleTotal).Add(fees).Add(taxes)
		return emptyPurchase(purchase), NewSale(sale.When(), left, proceeds, fees, taxes, sale.Note()), d, nil

	default:
		d := Disposal{
			on:            sale.When(),
			cur:           c,
			units:         pu,
			purchaseTotal: purchase.Total(),
			purchaseFees:  purchase.Fees(),
			purchaseTaxes: purchase.Taxes(),
			saleTotal:     sale.Total(),
			saleFees:      sale.Fees(),
			saleTaxes:     sale.Taxes(),
		}
		return emptyPurchase(purchase), emptySale(sale), d, nil
	}
}

// Exchange reconciles a sale marked as a share reorganisation against the
// combination of all purchases made before it. The sale must exchange
// exactly all those shares.
func Exchange(purchases []Acquisition, sale Sale) (Purchase, Sale, Disposal, error) {
	pool := NewPool(sale.Currency())
	for _, p := range purchases {
		var err error
		if pool, err = pool.AddPurchase(p); err != nil {
			return Purchase{}, Sale{}, Disposal{}, err
		}
	}
	if !pool.Units().Equal(sale.Units()) {
		return Purchase{}, Sale{}, Disposal{}, fmt.Errorf("%w: pool of %s shares against an exchange of %s", ErrExchangeMismatch, pool.Units(), sale.Units())
	}
	return Reconcile(pool, sale)
}

func emptyPurchase(p Acquisition) Purchase {
	z := Zero(p.Currency())
	return NewPurchase(p.When(), Q(0), z, z, z, "")
}

func emptySale(s Sale) Sale {
	z := Zero(s.Currency())
	return NewSale(s.When(), Q(0), z, z, z, "")
}
