package cgt

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Account groups the securities held in one brokerage or cash account.
//
// Securities are independent from each other: each one owns its pool and
// is resolved on its own.
type Account struct {
	name       string
	securities map[string]*Security // indexed by ticker
}

// NewAccount creates an empty account.
func NewAccount(name string) *Account {
	return &Account{name: name, securities: make(map[string]*Security)}
}

// Name returns the account name.
func (a *Account) Name() string { return a.name }

// Security returns the security declared under ticker, or nil.
func (a *Account) Security(ticker string) *Security { return a.securities[ticker] }

// Declare registers a security in the account. Declaring an existing ticker
// again returns it, provided its currency is the same.
func (a *Account) Declare(ticker, name, currency string) (*Security, error) {
	if s, ok := a.securities[ticker]; ok {
		if s.currency != currency {
			return nil, fmt.Errorf("%w: security %q is in %s, not %s", ErrCurrencyMismatch, ticker, s.currency, currency)
		}
		return s, nil
	}
	s, err := NewSecurity(ticker, name, currency)
	if err != nil {
		return nil, err
	}
	a.securities[ticker] = s
	return s, nil
}

// Append adds transactions to a declared security without resolving it.
// Call Resolve once all transactions are loaded.
func (a *Account) Append(ticker string, txs ...Transaction) error {
	s, ok := a.securities[ticker]
	if !ok {
		return fmt.Errorf("security %q not declared in account %q", ticker, a.name)
	}
	s.append(txs...)
	return nil
}

// Securities returns the securities sorted by name, case insensitive.
func (a *Account) Securities() []*Security {
	list := make([]*Security, 0, len(a.securities))
	for _, s := range a.securities {
		list = append(list, s)
	}
	slices.SortFunc(list, func(x, y *Security) int {
		if c := strings.Compare(strings.ToLower(x.name), strings.ToLower(y.name)); c != 0 {
			return c
		}
		return strings.Compare(x.ticker, y.ticker)
	})
	return list
}

// Resolve resolves every security of the account concurrently. It returns
// the first error encountered.
func (a *Account) Resolve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, s := range a.Securities() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.resolve()
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("account %q: %w", a.name, err)
	}
	return nil
}
