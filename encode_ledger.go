package cgt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Entry types, as written in the ledger.
const (
	entryBuy      = "buy"
	entrySell     = "sell"
	entryDividend = "dividend"
	entryERI      = "eri"
	entryScrip    = "scrip"
)

// entry is a single security record as read from any source, before it
// becomes a Transaction.
type entry struct {
	On       time.Time
	Type     string
	Ticker   string
	Name     string
	Currency string
	Shares   decimal.Decimal
	Amount   decimal.Decimal // gross, before fees and taxes
	Fees     decimal.Decimal
	Taxes    decimal.Decimal
	Note     string
}

// build creates the Transaction described by e.
func (e entry) build() (Transaction, error) {
	c := e.Currency
	units := Q(e.Shares)
	amount, fees, taxes := M(e.Amount, c), M(e.Fees, c), M(e.Taxes, c)
	switch e.Type {
	case entryBuy:
		return NewPurchase(e.On, units, amount, fees, taxes, e.Note), nil
	case entrySell:
		return NewSale(e.On, units, amount, fees, taxes, e.Note), nil
	case entryDividend:
		return NewDividend(e.On, units, amount, fees, taxes, e.Note), nil
	case entryERI:
		return NewExcessReportableIncome(e.On, amount, e.Note), nil
	case entryScrip:
		return NewScripDividend(e.On, units, amount, fees, taxes, e.Note), nil
	}
	return nil, fmt.Errorf("unknown transaction type %q", e.Type)
}

// addTo declares the security of e in a and appends the transaction.
func (e entry) addTo(a *Account) error {
	if e.Ticker == "" {
		return fmt.Errorf("missing security")
	}
	if _, err := a.Declare(e.Ticker, e.Name, e.Currency); err != nil {
		return err
	}
	tx, err := e.build()
	if err != nil {
		return err
	}
	return a.Append(e.Ticker, tx)
}

// entryOf is the reverse of build.
func entryOf(s *Security, tx Transaction) (entry, error) {
	e := entry{
		On:       tx.When(),
		Ticker:   s.Ticker(),
		Name:     s.Name(),
		Currency: s.Currency(),
		Shares:   tx.Units().value,
		Note:     tx.Note(),
	}
	var a Acquisition
	switch v := tx.(type) {
	case ExcessReportableIncome:
		e.Type, a = entryERI, v
	case ScripDividend:
		e.Type, a = entryScrip, v
	case Purchase:
		e.Type, a = entryBuy, v
	case Sale:
		e.Type = entrySell
		e.Amount, e.Fees, e.Taxes = v.Subtotal().value, v.Fees().value, v.Taxes().value
		return e, nil
	case Dividend:
		e.Type = entryDividend
		e.Amount, e.Fees, e.Taxes = v.Subtotal().value, v.Fees().value, v.Taxes().value
		return e, nil
	default:
		return e, fmt.Errorf("%w: cannot record a %s in a ledger", ErrInvalidVariant, tx.Kind())
	}
	e.Amount, e.Fees, e.Taxes = a.Subtotal().value, a.Fees().value, a.Taxes().value
	return e, nil
}

// timeLayouts are the accepted layouts for transaction timestamps, a plain
// date is also accepted.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTime parses a transaction timestamp. A plain date is at midnight UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return d.Time(), nil
}

// ledgerLine is the JSON form of an entry.
type ledgerLine struct {
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Security string          `json:"security"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Shares   decimal.Decimal `json:"shares"`
	Amount   decimal.Decimal `json:"amount"`
	Fees     decimal.Decimal `json:"fees"`
	Taxes    decimal.Decimal `json:"taxes"`
	Note     string          `json:"note"`
}

// DecodeAccount reads a JSONL ledger from r into a new account.
//
// Each line is a JSON object such as:
//
//	{"date":"2024-01-02T10:00:00Z","type":"buy","security":"VUSA","currency":"GBP","shares":100,"amount":990,"fees":10}
//
// where type is one of buy, sell, dividend, eri or scrip and amount is the
// gross amount before fees and taxes. The account is not resolved.
func DecodeAccount(name string, r io.Reader) (*Account, error) {
	a := NewAccount(name)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}
		var l ledgerLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("line %d: cannot parse %q: %w", n, string(line), err)
		}
		on, err := parseTime(l.Date)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		e := entry{
			On:       on,
			Type:     strings.ToLower(l.Type),
			Ticker:   l.Security,
			Name:     l.Name,
			Currency: l.Currency,
			Shares:   l.Shares,
			Amount:   l.Amount,
			Fees:     l.Fees,
			Taxes:    l.Taxes,
			Note:     l.Note,
		}
		if err := e.addTo(a); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return a, nil
}

// encodeEntry writes a single entry as a JSON line. Keys are always in the
// same order and zero charges and empty notes are omitted.
func encodeEntry(w io.Writer, e entry) error {
	var o jsonObjectWriter
	o.Append("date", e.On.Format(time.RFC3339)).
		Append("type", e.Type).
		Append("security", e.Ticker).
		Optional("name", nameIfDifferent(e.Name, e.Ticker)).
		Append("currency", e.Currency).
		Append("shares", e.Shares).
		Append("amount", e.Amount).
		OptionalMoney("fees", M(e.Fees, e.Currency)).
		OptionalMoney("taxes", M(e.Taxes, e.Currency)).
		Optional("note", e.Note)
	data, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

func nameIfDifferent(name, ticker string) string {
	if name == ticker {
		return ""
	}
	return name
}

// EncodeAccount writes every transaction of a as a JSONL ledger, security by
// security, each in chronological order.
func EncodeAccount(w io.Writer, a *Account) error {
	for _, s := range a.Securities() {
		txs := s.Transactions()
		sortChronologically(txs)
		for _, tx := range txs {
			e, err := entryOf(s, tx)
			if err != nil {
				return fmt.Errorf("security %q: %w", s.Ticker(), err)
			}
			if err := encodeEntry(w, e); err != nil {
				return err
			}
		}
	}
	return nil
}
