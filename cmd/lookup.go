package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/alere"
)

// lookup resolves the names given on the command line.
type lookup struct {
	accounts    []alere.Account
	commodities []alere.Commodity
	scenarios   []alere.Scenario
}

func loadLookup(ctx context.Context, s alere.Store) (_ *lookup, err error) {
	r, err := s.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open the ledger: %w", err)
	}
	defer r.Close()
	l := &lookup{}
	if l.accounts, err = r.Accounts(ctx); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if l.commodities, err = r.Commodities(ctx); err != nil {
		return nil, fmt.Errorf("failed to read commodities: %w", err)
	}
	if l.scenarios, err = r.Scenarios(ctx); err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	return l, nil
}

// find returns the id of the only item whose id or one of its names is
// key, case is ignored.
func find[T any, ID ~int64](items []T, key string, id func(T) ID, names func(T) []string) (ID, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		for _, it := range items {
			if id(it) == ID(n) {
				return ID(n), nil
			}
		}
		return 0, fmt.Errorf("unknown id %d", n)
	}
	var found []ID
	for _, it := range items {
		for _, name := range names(it) {
			if name != "" && strings.EqualFold(name, key) {
				found = append(found, id(it))
				break
			}
		}
	}
	switch len(found) {
	case 0:
		return 0, fmt.Errorf("unknown name %q", key)
	case 1:
		return found[0], nil
	default:
		return 0, fmt.Errorf("ambiguous name %q matches ids %v", key, found)
	}
}

func list[ID ~int64](csv string, one func(string) (ID, error)) ([]ID, error) {
	var res []ID
	for _, s := range strings.Split(csv, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		id, err := one(s)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

// currency resolves an ISO code or a commodity id. Only currencies qualify.
func (l *lookup) currency(code string) (alere.CommodityID, error) {
	var currencies []alere.Commodity
	for _, c := range l.commodities {
		if c.IsCurrency {
			currencies = append(currencies, c)
		}
	}
	id, err := find(currencies, code,
		func(c alere.Commodity) alere.CommodityID { return c.ID },
		func(c alere.Commodity) []string { return []string{c.ISOCode} })
	if err != nil {
		return 0, fmt.Errorf("reporting currency: %w", err)
	}
	return id, nil
}

// commodityIDs resolves a comma separated list of tickers, codes or ids.
func (l *lookup) commodityIDs(csv string) ([]alere.CommodityID, error) {
	return list(csv, func(s string) (alere.CommodityID, error) {
		id, err := find(l.commodities, s,
			func(c alere.Commodity) alere.CommodityID { return c.ID },
			func(c alere.Commodity) []string { return []string{c.Symbol, c.ISOCode, c.Name} })
		if err != nil {
			return 0, fmt.Errorf("commodity: %w", err)
		}
		return id, nil
	})
}

// accountIDs resolves a comma separated list of account names or ids.
func (l *lookup) accountIDs(csv string) ([]alere.AccountID, error) {
	return list(csv, func(s string) (alere.AccountID, error) {
		id, err := find(l.accounts, s,
			func(a alere.Account) alere.AccountID { return a.ID },
			func(a alere.Account) []string { return []string{a.Name} })
		if err != nil {
			return 0, fmt.Errorf("account: %w", err)
		}
		return id, nil
	})
}

// scenario resolves a scenario name or id. Empty and 0 are the actuals.
func (l *lookup) scenario(s string) (alere.ScenarioID, error) {
	if s = strings.TrimSpace(s); s == "" || s == "0" {
		return alere.NoScenario, nil
	}
	id, err := find(l.scenarios, s,
		func(v alere.Scenario) alere.ScenarioID { return v.ID },
		func(v alere.Scenario) []string { return []string{v.Name} })
	if err != nil {
		return 0, fmt.Errorf("scenario: %w", err)
	}
	return id, nil
}
