package alere

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// catalog is the reference data of one request.
type catalog struct {
	kinds       map[KindID]AccountKind
	accounts    map[AccountID]Account
	commodities map[CommodityID]Commodity
	payees      map[PayeeID]Payee
}

func loadCatalog(ctx context.Context, r Reader) (*catalog, error) {
	kinds, err := r.AccountKinds(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading account kinds: %w", err)
	}
	accounts, err := r.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	commodities, err := r.Commodities(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading commodities: %w", err)
	}
	payees, err := r.Payees(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading payees: %w", err)
	}
	c := &catalog{
		kinds:       make(map[KindID]AccountKind, len(kinds)),
		accounts:    make(map[AccountID]Account, len(accounts)),
		commodities: make(map[CommodityID]Commodity, len(commodities)),
		payees:      make(map[PayeeID]Payee, len(payees)),
	}
	for _, k := range kinds {
		c.kinds[k.ID] = k
	}
	for _, a := range accounts {
		c.accounts[a.ID] = a
	}
	for _, m := range commodities {
		c.commodities[m.ID] = m
	}
	for _, p := range payees {
		c.payees[p.ID] = p
	}
	return c, nil
}

// kind returns the kind of an account, the zero kind (an expense that
// counts nowhere) for unknown accounts.
func (c *catalog) kind(a AccountID) AccountKind {
	return c.kinds[c.accounts[a].Kind]
}

// shares returns the split quantity in shares of its account.
func (c *catalog) shares(s Split) decimal.Decimal {
	return c.accounts[s.Account].Shares(s.ScaledQty)
}

// value returns the split value in its value commodity.
func (c *catalog) value(s Split) decimal.Decimal {
	return c.commodities[s.ValueCommodity].Value(s.ScaledValue)
}

// code returns the display code of a commodity.
func (c *catalog) code(id CommodityID) string {
	if m, ok := c.commodities[id]; ok {
		return m.Code()
	}
	return ""
}

// money returns v as an amount of commodity id.
func (c *catalog) money(v decimal.Decimal, id CommodityID) Money {
	return M(v, c.code(id))
}
