package cgt

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// xmlNode is any element of a PortfolioPerformance file.
//
// The file is an object graph serialized by XStream: an object is written in
// full where it first appears and as a relative "reference" attribute
// afterwards, so it is read as a generic tree.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// child returns the first child element called name, or nil.
func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// text returns the trimmed text of the first child called name.
func (n *xmlNode) text(name string) string {
	if c := n.child(name); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// walk calls fn on n and every element below it, in document order.
func (n *xmlNode) walk(fn func(*xmlNode)) {
	fn(n)
	for i := range n.Children {
		n.Children[i].walk(fn)
	}
}

// Scales of the integers stored by PortfolioPerformance.
const (
	xmlAmountScale = 2
	xmlSharesScale = 8
)

// xmlHolders are the elements owning transactions: cash accounts, the two
// sides of a transfer, and securities accounts.
var xmlHolders = map[string]string{
	"account":     "account-transaction",
	"accountFrom": "account-transaction",
	"accountTo":   "account-transaction",
	"portfolio":   "portfolio-transaction",
}

// securityRef matches the reference of a transaction to the securities list.
var securityRef = regexp.MustCompile(`securities/security(?:\[(\d+)\])?$`)

// xmlSecurity is a security of the securities list.
type xmlSecurity struct {
	name, symbol string
}

func newXMLSecurity(n *xmlNode) xmlSecurity {
	s := xmlSecurity{name: n.text("name"), symbol: n.text("tickerSymbol")}
	if s.symbol == "" {
		s.symbol = n.text("isin")
	}
	return s
}

// security resolves the security of a transaction, written in place or as a
// reference to the securities list. It returns false when there is none.
func security(tx *xmlNode, list []xmlSecurity) (xmlSecurity, bool) {
	n := tx.child("security")
	if n == nil {
		return xmlSecurity{}, false
	}
	if n.child("name") != nil {
		return newXMLSecurity(n), true
	}
	m := securityRef.FindStringSubmatch(n.attr("reference"))
	if m == nil {
		return xmlSecurity{}, false
	}
	i := 1
	if m[1] != "" {
		i, _ = strconv.Atoi(m[1])
	}
	if i < 1 || i > len(list) {
		return xmlSecurity{}, false
	}
	return list[i-1], true
}

// xmlNumber parses an integer field stored with scale decimals.
func xmlNumber(s string, scale int32) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return d, err
	}
	return d.Shift(-scale), nil
}

// xmlRow converts a transaction into a statement row. The amount stored by
// PortfolioPerformance is the cash movement: charges are added back to get
// the gross amount of credits, and removed from debits.
func xmlRow(tx *xmlNode, account string, sec xmlSecurity) (statementRow, error) {
	kind := tx.text("type")
	shares, err := xmlNumber(tx.text("shares"), xmlSharesScale)
	if err != nil {
		return statementRow{}, fmt.Errorf("invalid shares %q: %w", tx.text("shares"), err)
	}
	amount, err := xmlNumber(tx.text("amount"), xmlAmountScale)
	if err != nil {
		return statementRow{}, fmt.Errorf("invalid amount %q: %w", tx.text("amount"), err)
	}

	var fees, taxes decimal.Decimal
	if units := tx.child("units"); units != nil {
		for i := range units.Children {
			unit := &units.Children[i]
			a := unit.child("amount")
			if unit.XMLName.Local != "unit" || a == nil {
				continue
			}
			v, err := xmlNumber(a.attr("amount"), xmlAmountScale)
			if err != nil {
				return statementRow{}, fmt.Errorf("invalid %s unit %q: %w", unit.attr("type"), a.attr("amount"), err)
			}
			switch unit.attr("type") {
			case "FEE":
				fees = fees.Add(v)
			case "TAX":
				taxes = taxes.Add(v)
			}
		}
	}
	switch kind {
	case "SELL", "DELIVERY_OUTBOUND", "DIVIDENDS":
		amount = amount.Add(fees).Add(taxes)
	default:
		amount = amount.Sub(fees).Sub(taxes)
	}

	return statementRow{
		Date:     tx.text("date"),
		Type:     kind,
		Security: sec.name,
		Symbol:   sec.symbol,
		Shares:   shares.String(),
		Amount:   amount.String(),
		Fees:     fees.String(),
		Taxes:    taxes.String(),
		Note:     tx.text("note"),
		Account:  account,
		Currency: tx.text("currencyCode"),
	}, nil
}

// ImportXML reads a PortfolioPerformance portfolio file and returns one
// unresolved account per cash or securities account, by name.
//
// Securities are identified by their ticker symbol, or their ISIN when they
// have none. From cash accounts only dividends are read: purchases and sales
// are read from the securities accounts, which record the shares.
// Transactions only written as references are skipped.
func ImportXML(r io.Reader, currency string) ([]*Account, error) {
	var root xmlNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("cannot parse XML file: %w", err)
	}

	var securities []xmlSecurity
	if list := root.child("securities"); list != nil {
		for i := range list.Children {
			if list.Children[i].XMLName.Local == "security" {
				securities = append(securities, newXMLSecurity(&list.Children[i]))
			}
		}
	}

	s := newStatement(currency)
	var err error
	root.walk(func(n *xmlNode) {
		txName, ok := xmlHolders[n.XMLName.Local]
		name, transactions := n.text("name"), n.child("transactions")
		if err != nil || !ok || name == "" || transactions == nil {
			return
		}
		for i := range transactions.Children {
			tx := &transactions.Children[i]
			if tx.XMLName.Local != txName || tx.text("date") == "" {
				continue
			}
			if txName == "account-transaction" && tx.text("type") != "DIVIDENDS" {
				continue
			}
			sec, ok := security(tx, securities)
			if !ok {
				continue
			}
			row, rerr := xmlRow(tx, name, sec)
			if rerr == nil {
				rerr = s.add(row)
			}
			if rerr != nil {
				err = fmt.Errorf("%s %q, transaction %d: %w", n.XMLName.Local, name, i+1, rerr)
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return s.list(), nil
}
