package alere

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// LedgerRequest asks for the transactions of [From, To].
type LedgerRequest struct {
	From, To date.Date
	Accounts []AccountID // transactions touching any of them, empty for all
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
	// Currency of the running balance. When 0, the commodity of the account
	// if it is a currency, else the value commodity of its first split.
	Currency CommodityID
}

// SplitRecord is a split as displayed in a ledger.
type SplitRecord struct {
	Split       SplitID   `json:"split"`
	Account     AccountID `json:"account"`
	AccountName string    `json:"accountName"`
	PostDate    date.Date `json:"postDate"`
	Amount      Money     `json:"amount"` // in the value commodity
	Shares      Quantity  `json:"shares"`
	Price       Money     `json:"price"` // amount per share, zero without shares
	Reconcile   string    `json:"reconcile,omitempty"`
	Payee       string    `json:"payee,omitempty"`
}

// TransactionRecord is one transaction, or one occurrence of a recurring
// transaction.
type TransactionRecord struct {
	Transaction TransactionID `json:"transaction"`
	Occurrence  int           `json:"occurrence"`
	Date        date.Date     `json:"date"`
	Memo        string        `json:"memo,omitempty"`
	CheckNumber string        `json:"checkNumber,omitempty"`
	Recurring   bool          `json:"recurring"`
	// Balance and BalanceShares are the running totals of the account when
	// the request names exactly one, zero otherwise.
	Balance       Money         `json:"balance"`
	BalanceShares Quantity      `json:"balanceShares"`
	Splits        []SplitRecord `json:"splits"`
}

type LedgerReport struct {
	From     date.Date           `json:"from"`
	To       date.Date           `json:"to"`
	Currency string              `json:"currency,omitempty"` // of the running balance
	Records  []TransactionRecord `json:"records"`
	// Unconverted counts splits of the account left out of the running
	// balance for lack of a quote.
	Unconverted int `json:"unconverted,omitempty"`
}

// Ledger lists the transactions of [From, To] in order. The next occurrence
// of every recurring transaction is always listed, whatever its date.
func (e *Engine) Ledger(ctx context.Context, req LedgerRequest) (*LedgerReport, error) {
	ctx, _ = logging.Operation(ctx, "ledger")
	req.From, req.To = date.Clamp(req.From), date.Clamp(req.To)
	params := map[string]any{"from": req.From, "to": req.To, "accounts": req.Accounts, "scenario": req.Scenario, "occurrences": req.Ceiling}
	var (
		cat      *catalog
		events   []Event
		currency CommodityID
		prices   PriceTable
	)
	err := e.read(ctx, "ledger", params, func(ctx context.Context, r Reader) (err error) {
		if cat, err = loadCatalog(ctx, r); err != nil {
			return err
		}
		// running balances start with the first split.
		events, err = collector{r: r, exp: e.exp}.collect(ctx, CollectRequest{
			From:          date.Min,
			To:            req.To,
			Scenario:      req.Scenario,
			Ceiling:       req.Ceiling,
			PendingAlways: true,
		})
		if err != nil || len(req.Accounts) != 1 {
			return err
		}
		currency = balanceCurrency(cat, events, req)
		quotes, err := r.Prices(ctx, PriceQuery{Target: currency})
		if err != nil {
			return err
		}
		prices = PriceHistory(quotes, cat.commodities)
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Currency = currency
	return buildLedger(cat, events, prices, req), nil
}

// balanceCurrency returns the currency of the running balance of the only
// account of req.
func balanceCurrency(cat *catalog, events []Event, req LedgerRequest) CommodityID {
	if req.Currency != 0 {
		return req.Currency
	}
	acc := cat.accounts[req.Accounts[0]]
	if cat.commodities[acc.Commodity].IsCurrency {
		return acc.Commodity
	}
	for _, e := range events {
		if e.Account == acc.ID {
			return e.ValueCommodity
		}
	}
	return acc.Commodity
}

func buildLedger(cat *catalog, events []Event, prices PriceTable, req LedgerRequest) *LedgerReport {
	rep := &LedgerReport{From: req.From, To: req.To}
	var (
		tracked  AccountID
		tracking = len(req.Accounts) == 1
		balance  decimal.Decimal
		shares   = Quantity{}
	)
	if tracking {
		tracked = req.Accounts[0]
		rep.Currency = cat.code(req.Currency)
	}

	for start := 0; start < len(events); {
		end := start + 1
		for end < len(events) && events[end].Transaction == events[start].Transaction && events[end].Occurrence == events[start].Occurrence {
			end++
		}
		group := slices.Clone(events[start:end])
		start = end

		visible, touches := false, len(req.Accounts) == 0
		for _, e := range group {
			if !e.PostDate.Before(req.From) || (e.Recurring && e.Occurrence == 1) {
				visible = true
			}
			if slices.Contains(req.Accounts, e.Account) {
				touches = true
			}
			if tracking && e.Account == tracked {
				if p, ok := prices.At(e.ValueCommodity, req.Currency, e.PostDate); ok {
					balance = balance.Add(cat.value(e.Split).Mul(p))
				} else {
					rep.Unconverted++
				}
				shares = shares.Add(Q(cat.shares(e.Split)))
			}
		}
		if !visible || !touches {
			continue
		}

		first := group[0]
		rec := TransactionRecord{
			Transaction: first.Transaction,
			Occurrence:  first.Occurrence,
			Date:        first.Timestamp,
			Memo:        first.Tx.Memo,
			CheckNumber: first.Tx.CheckNumber,
			Recurring:   first.Recurring,
		}
		if tracking {
			rec.Balance, rec.BalanceShares = cat.money(balance, req.Currency), shares
		}
		slices.SortFunc(group, func(a, b Event) int { return cmp.Compare(a.ID, b.ID) })
		for _, e := range group {
			rec.Splits = append(rec.Splits, cat.splitRecord(e.Split))
		}
		rep.Records = append(rep.Records, rec)
	}
	return rep
}

func (c *catalog) splitRecord(s Split) SplitRecord {
	value, qty := c.value(s), c.shares(s)
	rec := SplitRecord{
		Split:       s.ID,
		Account:     s.Account,
		AccountName: c.accounts[s.Account].Name,
		PostDate:    s.PostDate,
		Amount:      c.money(value, s.ValueCommodity),
		Shares:      Q(qty),
		Price:       M(0, c.code(s.ValueCommodity)),
		Reconcile:   s.Reconcile,
		Payee:       c.payees[s.Payee].Name,
	}
	if !qty.IsZero() {
		rec.Price = c.money(value.Div(qty).Abs(), s.ValueCommodity)
	}
	return rec
}
