package alere

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/alere/date"
)

// Store gives read access to the persisted ledger.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mock_alere -source=store.go Store,Reader
type Store interface {
	// Open acquires a reader. The caller must Close it.
	Open(ctx context.Context) (Reader, error)
}

// Reader reads the persisted entities. A Reader is used by a single request
// and is not safe for concurrent use.
type Reader interface {
	AccountKinds(ctx context.Context) ([]AccountKind, error)
	Accounts(ctx context.Context) ([]Account, error)
	Commodities(ctx context.Context) ([]Commodity, error)
	Payees(ctx context.Context) ([]Payee, error)
	Scenarios(ctx context.Context) ([]Scenario, error)
	// Prices returns the quotes ordered by date.
	Prices(ctx context.Context, q PriceQuery) ([]PriceQuote, error)
	// Splits returns the splits of non recurring transactions.
	Splits(ctx context.Context, q SplitQuery) ([]Split, error)
	// Scheduled returns the recurring transactions visible in a scenario,
	// with their splits.
	Scheduled(ctx context.Context, scenario ScenarioID) ([]Transaction, error)
	// Transactions returns transaction headers, without splits.
	Transactions(ctx context.Context, ids []TransactionID) ([]Transaction, error)
	// SplitBounds returns the earliest and latest post dates of the splits
	// matching q, and false if there are none.
	SplitBounds(ctx context.Context, q SplitQuery) (date.Range, bool, error)
	Close() error
}

// SplitQuery selects splits of non recurring transactions.
type SplitQuery struct {
	From, To date.Date  // post date, both included
	Scenario ScenarioID // transactions of NoScenario and of Scenario
	Accounts []AccountID
}

// Match reports whether a split of transaction tx matches the query.
func (q SplitQuery) Match(tx Transaction, s Split) bool {
	if !tx.VisibleIn(q.Scenario) || s.PostDate.Before(q.From) || s.PostDate.After(q.To) {
		return false
	}
	return len(q.Accounts) == 0 || slices.Contains(q.Accounts, s.Account)
}

// PriceQuery selects quotes.
type PriceQuery struct {
	Origins []CommodityID // empty for all
	Target  CommodityID   // 0 for all
}

// Match reports whether a quote matches the query.
func (q PriceQuery) Match(p PriceQuote) bool {
	if q.Target != 0 && p.Target != q.Target {
		return false
	}
	return len(q.Origins) == 0 || slices.Contains(q.Origins, p.Origin)
}

// DataAccessError reports a failure of the store. The operation that
// encountered it returns no report.
type DataAccessError struct {
	Op     string
	Params map[string]any
	Err    error
}

func (e *DataAccessError) Error() string {
	var params []string
	for _, k := range slices.Sorted(maps.Keys(e.Params)) {
		params = append(params, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	return fmt.Sprintf("%s(%s): data access failed: %v", e.Op, strings.Join(params, ", "), e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }
