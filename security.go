package cgt

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/etnz/cgt/date"
)

// Security holds every transaction of a single security in one account and
// the event log they resolve to.
type Security struct {
	ticker   string
	name     string
	currency string

	transactions []Transaction
	events       []Event
}

// NewSecurity declares a security. Its currency must be a valid ISO 4217 code.
func NewSecurity(ticker, name, currency string) (*Security, error) {
	if ticker == "" {
		return nil, fmt.Errorf("security ticker is missing")
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid currency for security %q: %w", ticker, err)
	}
	if name == "" {
		name = ticker
	}
	return &Security{ticker: ticker, name: name, currency: currency}, nil
}

func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Name() string     { return s.name }
func (s *Security) Currency() string { return s.currency }

// Transactions returns the transactions in the order they were added.
func (s *Security) Transactions() []Transaction { return slices.Clone(s.transactions) }

// Add appends transactions and resolves the whole history again. On error
// the security is left as it was before the call.
func (s *Security) Add(txs ...Transaction) error {
	s.append(txs...)
	if err := s.resolve(); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-len(txs)]
		return err
	}
	return nil
}

// append adds transactions without resolving.
func (s *Security) append(txs ...Transaction) {
	s.transactions = append(s.transactions, txs...)
}

func (s *Security) resolve() error {
	r := Resolver{
		Currency: s.currency,
		Logger:   slog.Default().With("security", s.ticker),
	}
	events, err := r.Resolve(s.transactions)
	if err != nil {
		return fmt.Errorf("security %q: %w", s.ticker, err)
	}
	s.events = events
	return nil
}

// Events returns the resolved event log in chronological order.
func (s *Security) Events() []Event { return slices.Clone(s.events) }

// Disposals returns the events that realized a gain or a loss.
func (s *Security) Disposals() []Event {
	var disposals []Event
	for _, e := range s.events {
		if e.IsDisposal() {
			disposals = append(disposals, e)
		}
	}
	return disposals
}

// Pool returns the pool after the last event.
func (s *Security) Pool() Pool {
	if len(s.events) == 0 {
		return NewPool(s.currency)
	}
	return s.events[len(s.events)-1].Pool
}

// IsHeld reports whether units were held at some point in r: either at the
// start of r, or after any event inside r.
func (s *Security) IsHeld(r date.Range) bool {
	held := false
	for _, e := range s.events {
		on := e.Transaction.Date()
		if on.Before(r.From) {
			held = e.Pool.Units().IsPositive()
			continue
		}
		if held || on.After(r.To) {
			break
		}
		held = e.Pool.Units().IsPositive()
	}
	return held
}

// Dividends returns the cash dividends paid inside r, in chronological order.
func (s *Security) Dividends(r date.Range) []Dividend {
	var dividends []Dividend
	for _, tx := range s.transactions {
		if d, ok := tx.(Dividend); ok && r.Contains(d.Date()) {
			dividends = append(dividends, d)
		}
	}
	slices.SortStableFunc(dividends, func(a, b Dividend) int { return a.When().Compare(b.When()) })
	return dividends
}
