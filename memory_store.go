package alere

import (
	"context"
	"slices"

	"github.com/etnz/alere/date"
)

// MemoryStore is a Store over in-memory slices. It must not be modified once
// readers are open.
type MemoryStore struct {
	Kinds         []AccountKind
	AccountList   []Account
	CommodityList []Commodity
	PayeeList     []Payee
	ScenarioList  []Scenario
	Quotes        []PriceQuote
	Ledger        []Transaction // with their splits
}

// Open implements Store.
func (m *MemoryStore) Open(ctx context.Context) (Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return memoryReader{m}, nil
}

type memoryReader struct{ m *MemoryStore }

func (r memoryReader) AccountKinds(ctx context.Context) ([]AccountKind, error) {
	return slices.Clone(r.m.Kinds), ctx.Err()
}

func (r memoryReader) Accounts(ctx context.Context) ([]Account, error) {
	return slices.Clone(r.m.AccountList), ctx.Err()
}

func (r memoryReader) Commodities(ctx context.Context) ([]Commodity, error) {
	return slices.Clone(r.m.CommodityList), ctx.Err()
}

func (r memoryReader) Payees(ctx context.Context) ([]Payee, error) {
	return slices.Clone(r.m.PayeeList), ctx.Err()
}

func (r memoryReader) Scenarios(ctx context.Context) ([]Scenario, error) {
	return slices.Clone(r.m.ScenarioList), ctx.Err()
}

func (r memoryReader) Prices(ctx context.Context, q PriceQuery) ([]PriceQuote, error) {
	var res []PriceQuote
	for _, p := range r.m.Quotes {
		if q.Match(p) {
			res = append(res, p)
		}
	}
	slices.SortStableFunc(res, func(a, b PriceQuote) int { return a.Date.Compare(b.Date) })
	return res, ctx.Err()
}

func (r memoryReader) Splits(ctx context.Context, q SplitQuery) ([]Split, error) {
	var res []Split
	for _, tx := range r.m.Ledger {
		if tx.IsRecurring() {
			continue
		}
		for _, s := range tx.Splits {
			if q.Match(tx, s) {
				res = append(res, s)
			}
		}
	}
	slices.SortStableFunc(res, func(a, b Split) int {
		if c := a.PostDate.Compare(b.PostDate); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return res, ctx.Err()
}

func (r memoryReader) Scheduled(ctx context.Context, scenario ScenarioID) ([]Transaction, error) {
	var res []Transaction
	for _, tx := range r.m.Ledger {
		if tx.IsRecurring() && tx.VisibleIn(scenario) {
			tx.Splits = slices.Clone(tx.Splits)
			res = append(res, tx)
		}
	}
	return res, ctx.Err()
}

func (r memoryReader) Transactions(ctx context.Context, ids []TransactionID) ([]Transaction, error) {
	var res []Transaction
	for _, tx := range r.m.Ledger {
		if slices.Contains(ids, tx.ID) {
			tx.Splits = nil
			res = append(res, tx)
		}
	}
	return res, ctx.Err()
}

func (r memoryReader) SplitBounds(ctx context.Context, q SplitQuery) (date.Range, bool, error) {
	splits, err := r.Splits(ctx, q)
	if err != nil || len(splits) == 0 {
		return date.Range{}, false, err
	}
	return date.Range{From: splits[0].PostDate, To: splits[len(splits)-1].PostDate}, true, nil
}

func (r memoryReader) Close() error { return nil }
