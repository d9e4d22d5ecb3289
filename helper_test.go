package alere

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// quiet returns a context whose logger discards everything.
func quiet() context.Context {
	return logging.WithContext(context.Background(), logging.NewWithWriter(io.Discard))
}

const (
	eur CommodityID = iota + 1
	usd
	acme
	gold
)

const (
	checking AccountID = iota + 1
	groceries
	salary
	opening
	acmeShares
	dividends
	goldBars
	usdChecking
	capitalGains
)

// fixture is a MemoryStore with a chart of accounts and helpers to record
// transactions. Every account uses an SCU of 100 and every commodity a price
// scale of 100.
type fixture struct {
	MemoryStore
	nextSplit SplitID
}

func newFixture() *fixture {
	f := &fixture{}
	f.CommodityList = []Commodity{
		{ID: eur, Name: "Euro", ISOCode: "EUR", IsCurrency: true, PriceScale: 100},
		{ID: usd, Name: "US Dollar", ISOCode: "USD", IsCurrency: true, PriceScale: 100},
		{ID: acme, Name: "Acme Corp", Symbol: "ACME", PriceScale: 100, QuoteSource: "yahoo"},
		{ID: gold, Name: "Gold", Symbol: "XAU", PriceScale: 100},
	}
	f.Kinds = []AccountKind{
		{ID: 1, Name: "Checking", Category: Equity, IsNetworth: true},
		{ID: 2, Name: "Expense", Category: Expense},
		{ID: 3, Name: "Salary", Category: Income, IsWorkIncome: true},
		{ID: 4, Name: "Opening", Category: Equity},
		{ID: 5, Name: "Stock", Category: Asset, IsNetworth: true, IsTrading: true, IsStock: true},
		{ID: 6, Name: "Dividends", Category: Income, IsPassiveIncome: true},
		{ID: 7, Name: "Unrealized", Category: Income, IsUnrealized: true},
	}
	f.AccountList = []Account{
		{ID: checking, Name: "Checking", Commodity: eur, SCU: 100, Kind: 1},
		{ID: groceries, Name: "Groceries", Commodity: eur, SCU: 100, Kind: 2},
		{ID: salary, Name: "Salary", Commodity: eur, SCU: 100, Kind: 3},
		{ID: opening, Name: "Opening balances", Commodity: eur, SCU: 100, Kind: 4},
		{ID: acmeShares, Name: "ACME shares", Commodity: acme, SCU: 100, Kind: 5},
		{ID: dividends, Name: "Dividends", Commodity: eur, SCU: 100, Kind: 6},
		{ID: goldBars, Name: "Gold", Commodity: gold, SCU: 100, Kind: 5},
		{ID: usdChecking, Name: "US Checking", Commodity: usd, SCU: 100, Kind: 1},
		{ID: capitalGains, Name: "Capital gains", Commodity: eur, SCU: 100, Kind: 7},
	}
	f.PayeeList = []Payee{{ID: 1, Name: "Grocer"}}
	f.ScenarioList = []Scenario{{ID: 7, Name: "what if"}, {ID: 8, Name: "other"}}
	return f
}

// leg is one split to be recorded.
type leg struct {
	account  AccountID
	qty      float64
	value    float64
	currency CommodityID
}

// cash is a leg where quantity and value are the same euro amount.
func cash(a AccountID, amount float64) leg { return leg{a, amount, amount, eur} }

// shares is a leg buying (or selling) n shares for a euro amount.
func shares(a AccountID, n, amount float64) leg { return leg{a, n, amount, eur} }

func scale(v float64) int64 { return int64(math.Round(v * 100)) }

// add records tx with the given legs, all posted on tx.Timestamp.
func (f *fixture) add(tx Transaction, legs ...leg) *fixture {
	for _, l := range legs {
		f.nextSplit++
		cur := l.currency
		if cur == 0 {
			cur = eur
		}
		tx.Splits = append(tx.Splits, Split{
			ID:             f.nextSplit,
			Transaction:    tx.ID,
			Account:        l.account,
			ScaledQty:      scale(l.qty),
			ScaledValue:    scale(l.value),
			ValueCommodity: cur,
			PostDate:       tx.Timestamp,
			Reconcile:      "n",
		})
	}
	f.Ledger = append(f.Ledger, tx)
	return f
}

// quote records the price of origin in target.
func (f *fixture) quote(origin, target CommodityID, on string, price float64) *fixture {
	f.Quotes = append(f.Quotes, PriceQuote{Origin: origin, Target: target, Date: date.MustParse(on), ScaledPrice: scale(price)})
	return f
}

// basic is the ledger of an account opened with 1000 EUR on 2023-01-01 that
// pays 50 EUR of groceries on 2023-01-15.
func basic() *fixture {
	return newFixture().
		add(Transaction{ID: 1, Timestamp: date.New(2023, 1, 1), Memo: "opening"}, cash(checking, 1000), cash(opening, -1000)).
		add(Transaction{ID: 2, Timestamp: date.New(2023, 1, 15), Memo: "groceries"}, cash(checking, -50), cash(groceries, 50))
}

// rent adds a monthly rent of 500 EUR starting on 2023-02-01.
func (f *fixture) rent() *fixture {
	return f.add(Transaction{ID: 100, Timestamp: date.New(2023, 2, 1), Memo: "rent", Recurrence: "FREQ=MONTHLY"},
		cash(checking, -500), cash(groceries, 500))
}

// salary adds a 2000 EUR salary paid on 2023-01-25.
func (f *fixture) salary() *fixture {
	return f.add(Transaction{ID: 3, Timestamp: date.New(2023, 1, 25), Memo: "salary"}, cash(salary, -2000), cash(checking, 2000))
}

func engine(f *fixture) *Engine { return NewEngine(&f.MemoryStore, nil) }

// assertMoney fails if got is not the amount want.
func assertMoney(t testing.TB, what string, got Money, want float64) {
	t.Helper()
	if !got.Decimal().Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %v, want %v", what, got.Decimal(), want)
	}
}
