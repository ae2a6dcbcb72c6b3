package cgt

import (
	"time"

	"github.com/etnz/cgt/date"
)

// GBP is a helper for test to create sterling money from const
func GBP(v float64) Money { return M(v, "GBP") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// on is a helper for test to create a timestamp at noon on a given day.
func on(day string) time.Time {
	return date.MustParse(day).Time().Add(12 * time.Hour)
}

// at is a helper for test to create a timestamp at a given time of a day.
func at(day string, hour, minute int) time.Time {
	return date.MustParse(day).Time().Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// buy is a helper for test to create a purchase in GBP.
func buy(when time.Time, units, subtotal, fees float64) Purchase {
	return NewPurchase(when, Q(units), GBP(subtotal), GBP(fees), GBP(0), "")
}

// sell is a helper for test to create a sale in GBP.
func sell(when time.Time, units, proceeds, fees float64) Sale {
	return NewSale(when, Q(units), GBP(proceeds), GBP(fees), GBP(0), "")
}

// sameMoney is a helper for test comparing amounts regardless of their scale.
func sameMoney(a, b Money) bool { return a.Decimal().Equal(b.Decimal()) && a.Currency() == b.Currency() }
