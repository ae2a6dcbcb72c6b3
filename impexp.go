package cgt

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains the importers of statements exported by other tools.
// Statements can mix several cash accounts, so they produce one Account per
// cash account.

// DefaultCurrency is the currency of imported records that do not state one.
const DefaultCurrency = "GBP"

// statementRow is a raw record of a statement, every field as text.
type statementRow struct {
	Date, Type, Security, Symbol string
	Shares, Amount, Fees, Taxes  string
	Note, Account, Currency      string
}

// classify maps a statement record type and note to an entry type. An empty
// type means the record does not concern capital gains and is skipped.
func classify(kind, note string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	note = strings.ToLower(strings.TrimSpace(note))
	switch {
	case kind == "buy" || kind == "delivery_inbound":
		if note == "scrip dividend" {
			return entryScrip, nil
		}
		return entryBuy, nil
	case kind == "sell" || kind == "delivery_outbound":
		return entrySell, nil
	case note == "excess reportable income":
		return entryERI, nil
	case kind == "dividend" || kind == "dividends":
		// the shares received are recorded by the matching delivery
		if note == "scrip dividend" {
			return "", nil
		}
		return entryDividend, nil
	case kind == "fees refund" || kind == "fees_refund":
		return "", nil
	}
	return "", fmt.Errorf("unknown transaction type %q", kind)
}

// parseNumber parses a statement number, thousands separators allowed. An
// empty field is zero.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// statement accumulates the accounts of an import.
type statement struct {
	currency string
	accounts map[string]*Account
}

func newStatement(currency string) *statement {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &statement{currency: currency, accounts: make(map[string]*Account)}
}

func (s *statement) add(r statementRow) error {
	if strings.TrimSpace(r.Symbol) == "" || strings.TrimSpace(r.Security) == "" {
		return nil
	}
	typ, err := classify(r.Type, r.Note)
	if err != nil || typ == "" {
		return err
	}
	on, err := parseTime(r.Date)
	if err != nil {
		return err
	}
	e := entry{
		On:       on,
		Type:     typ,
		Ticker:   strings.TrimSpace(r.Symbol),
		Name:     strings.TrimSpace(r.Security),
		Currency: strings.TrimSpace(r.Currency),
		Note:     strings.TrimSpace(r.Note),
	}
	if e.Currency == "" {
		e.Currency = s.currency
	}
	for _, f := range []struct {
		name string
		text string
		dst  *decimal.Decimal
	}{
		{"shares", r.Shares, &e.Shares},
		{"amount", r.Amount, &e.Amount},
		{"fees", r.Fees, &e.Fees},
		{"taxes", r.Taxes, &e.Taxes},
	} {
		v, err := parseNumber(f.text)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.name, f.text, err)
		}
		*f.dst = v.Abs()
	}

	a, ok := s.accounts[r.Account]
	if !ok {
		a = NewAccount(r.Account)
		s.accounts[r.Account] = a
	}
	return e.addTo(a)
}

// list returns the accounts sorted by name.
func (s *statement) list() []*Account {
	accounts := make([]*Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b *Account) int { return strings.Compare(a.Name(), b.Name()) })
	return accounts
}

// csvColumns are the columns read from a PortfolioPerformance export.
var csvColumns = []string{"Date", "Type", "Security", "Symbol", "Shares", "Amount", "Fees", "Taxes", "Note", "Cash Account"}

// ImportCSV reads the account transactions exported as CSV by
// PortfolioPerformance and returns one unresolved account per cash account.
//
// Records without a symbol or a security are ignored. The amounts are in the
// "Transaction Currency" column when there is one, in currency otherwise.
func ImportCSV(r io.Reader, currency string) ([]*Account, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := make(map[string]int)
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range csvColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", c)
		}
	}

	s := newStatement(currency)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}
		row := statementRow{
			Date:     field("Date"),
			Type:     field("Type"),
			Security: field("Security"),
			Symbol:   field("Symbol"),
			Shares:   field("Shares"),
			Amount:   field("Amount"),
			Fees:     field("Fees"),
			Taxes:    field("Taxes"),
			Note:     field("Note"),
			Account:  field("Cash Account"),
			Currency: field("Transaction Currency"),
		}
		if err := s.add(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return s.list(), nil
}

// JSONMapping locates the fields of a JSON statement using JSONPath
// expressions.
//
// Records is evaluated against the whole document and must yield an array.
// Every other expression is evaluated against each record. Date, Type,
// Symbol, Shares and Amount are required, the others may be left empty.
type JSONMapping struct {
	Records  string `json:"records"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Security string `json:"security"`
	Symbol   string `json:"symbol"`
	Shares   string `json:"shares"`
	Amount   string `json:"amount"`
	Fees     string `json:"fees"`
	Taxes    string `json:"taxes"`
	Note     string `json:"note"`
	Account  string `json:"account"`
	Currency string `json:"currency"`
}

// ImportJSON reads a JSON statement whose layout is described by m and
// returns one unresolved account per cash account.
//
// When m has no Security path, the symbol is used as the security name.
func ImportJSON(r io.Reader, m JSONMapping, currency string) ([]*Account, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON statement: %w", err)
	}
	v, err := jsonpath.Get(m.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot find records at %q: %w", m.Records, err)
	}
	records, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("records at %q are not an array", m.Records)
	}

	s := newStatement(currency)
	for i, rec := range records {
		var errs []error
		get := func(path string, required bool) string {
			if path == "" {
				if required {
					errs = append(errs, fmt.Errorf("missing required path"))
				}
				return ""
			}
			v, err := jsonpath.Get(path, rec)
			if err != nil || v == nil {
				if required {
					errs = append(errs, fmt.Errorf("no value at %q", path))
				}
				return ""
			}
			return fmt.Sprint(v)
		}
		row := statementRow{
			Date:     get(m.Date, true),
			Type:     get(m.Type, true),
			Security: get(m.Security, false),
			Symbol:   get(m.Symbol, true),
			Shares:   get(m.Shares, true),
			Amount:   get(m.Amount, true),
			Fees:     get(m.Fees, false),
			Taxes:    get(m.Taxes, false),
			Note:     get(m.Note, false),
			Account:  get(m.Account, false),
			Currency: get(m.Currency, false),
		}
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if row.Security == "" {
			row.Security = row.Symbol
		}
		if err := s.add(row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return s.list(), nil
}
