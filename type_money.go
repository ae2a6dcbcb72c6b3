package cgt

import (
	"fmt"
	"regexp"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value in a single currency.
//
// The zero value has no currency and behaves as a neutral element in
// additions: it takes the currency of the other operand.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any supported numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Zero returns the zero amount in the given currency.
func Zero(currency string) Money { return Money{cur: currency} }

// currency returns the go-money definition of the currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the money formatted according to its currency, rounded to
// the currency's minor unit.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but prefixes positive values with "+".
// A zero value is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && sameCurrency(m, n) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value), cur: m.cur} }

// Add and Sub panic when both operands carry a different, non-empty currency.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// AbsDiv returns |m/q|, or zero in m's currency when q is zero.
//
// Zero-unit transactions are routine (residuals, income adjustments) so a
// unit price of nothing is nothing.
func (m Money) AbsDiv(q Quantity) Money {
	if q.IsZero() {
		return Zero(m.cur)
	}
	return m.Div(q).Abs()
}

// Scale returns m*num/den computed in that order to keep as many exact digits
// as possible. It returns zero when den is zero.
func (m Money) Scale(num, den Quantity) Money {
	if den.IsZero() {
		return Zero(m.cur)
	}
	return m.Mul(num).Div(den)
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

func sameCurrency(A, B Money) bool {
	return A.cur == B.cur || A.cur == "" || B.cur == ""
}

// MarshalJSON writes the exact amount, currency is persisted by the owning object.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks that code is an ISO 4217 code known to go-money.
func ValidateCurrency(code string) error {
	if !currencyCodeRe.MatchString(code) {
		return fmt.Errorf("invalid currency code %q: must be 3 uppercase letters", code)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
