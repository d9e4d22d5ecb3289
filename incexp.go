package alere

import (
	"cmp"
	"context"
	"slices"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// IncomeExpenseRequest asks for the realized income and expense of each
// account over [From, To].
type IncomeExpenseRequest struct {
	From, To date.Date
	Currency CommodityID
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
	Income   bool // include income accounts
	Expense  bool // include expense accounts
}

// AccountTotal is the flow through one account. Income is positive, expense
// negative.
type AccountTotal struct {
	Account AccountID `json:"account"`
	Name    string    `json:"name"`
	Value   Money     `json:"value"`
}

type IncomeExpenseReport struct {
	Currency    string         `json:"currency"`
	From        date.Date      `json:"from"`
	To          date.Date      `json:"to"`
	Accounts    []AccountTotal `json:"accounts"` // largest income first
	Total       Money          `json:"total"`
	Unconverted int            `json:"unconverted,omitempty"`
}

// IncomeExpense totals, per account, the realized income and the expenses
// of [From, To].
func (e *Engine) IncomeExpense(ctx context.Context, req IncomeExpenseRequest) (*IncomeExpenseReport, error) {
	ctx, _ = logging.Operation(ctx, "incexp")
	params := map[string]any{"from": req.From, "to": req.To, "currency": req.Currency, "income": req.Income, "expense": req.Expense}
	var st *state
	err := e.read(ctx, "incexp", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: req.From, To: req.To, Scenario: req.Scenario, Ceiling: req.Ceiling}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	cur := st.cat.code(req.Currency)
	rep := &IncomeExpenseReport{Currency: cur, From: req.From, To: req.To, Total: M(0, cur)}
	totals := make(map[AccountID]Money)
	for _, e := range st.events {
		kind := st.cat.kind(e.Account)
		switch {
		case kind.Category == Income && req.Income && !kind.IsUnrealized:
		case kind.Category == Expense && req.Expense:
		default:
			continue
		}
		v, ok := st.valueIn(e.Split, req.Currency)
		if !ok {
			rep.Unconverted++
			continue
		}
		t, ok := totals[e.Account]
		if !ok {
			t = M(0, cur)
		}
		totals[e.Account] = t.Sub(M(v, cur))
	}
	for id, v := range totals {
		rep.Accounts = append(rep.Accounts, AccountTotal{Account: id, Name: st.cat.accounts[id].Name, Value: v})
		rep.Total = rep.Total.Add(v)
	}
	slices.SortFunc(rep.Accounts, func(a, b AccountTotal) int {
		if c := b.Value.Decimal().Cmp(a.Value.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rep, nil
}

// MeanRequest asks for monthly flows and net worth changes over [From, To].
type MeanRequest struct {
	From, To     date.Date
	Currency     CommodityID
	Prior, After int  // months averaged with each value
	Unrealized   bool // count unrealized income as income
}

// MeanPoint is one month of a MeanReport. Values are positive when income
// is earned, expenses paid or net worth grows.
type MeanPoint struct {
	Date           date.Date `json:"date"`
	Income         Money     `json:"income"`
	IncomeAverage  Money     `json:"incomeAverage"`
	Expense        Money     `json:"expense"`
	ExpenseAverage Money     `json:"expenseAverage"`
	Delta          Money     `json:"networthDelta"`
	DeltaAverage   Money     `json:"networthDeltaAverage"`
}

type MeanReport struct {
	Currency string      `json:"currency"`
	Points   []MeanPoint `json:"points"`
}

// Mean combines, month by month, the cashflow and the change of net worth,
// with their rolling averages. The months without any split are skipped at
// both ends of the window.
func (e *Engine) Mean(ctx context.Context, req MeanRequest) (*MeanReport, error) {
	ctx, _ = logging.Operation(ctx, "mean")
	params := map[string]any{"from": req.From, "to": req.To, "currency": req.Currency, "prior": req.Prior, "after": req.After}
	window := date.NewRegular(req.From, req.To, date.Monthly)
	var st *state
	err := e.read(ctx, "mean", params, func(ctx context.Context, r Reader) (err error) {
		window, err = e.restrict(ctx, r, window, NoScenario, recurrence.None)
		if err != nil || window.Len() == 0 {
			return err
		}
		st, err = e.load(ctx, r, CollectRequest{From: date.Min, To: window.MostRecent(), Scenario: NoScenario}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	periods := window.Periods()
	if st == nil || len(periods) == 0 {
		return &MeanReport{}, nil
	}
	rep := &MeanReport{Currency: st.cat.code(req.Currency)}
	income, unrealized, expense, _ := st.flows(periods, req.Currency)
	if req.Unrealized {
		for i := range income {
			income[i] = income[i].Add(unrealized[i])
		}
	}
	hist := st.history(HistoryRequest{Window: window, Currency: req.Currency})
	deltas := make([]Money, len(hist.Points))
	for i, p := range hist.Points {
		deltas[i] = p.Delta
	}
	incomeAvg := rollingMoney(income, req.Prior, req.After)
	expenseAvg := rollingMoney(expense, req.Prior, req.After)
	deltaAvg := rollingMoney(deltas, req.Prior, req.After)
	for i, p := range periods {
		rep.Points = append(rep.Points, MeanPoint{
			Date:           p.To,
			Income:         income[i],
			IncomeAverage:  incomeAvg[i],
			Expense:        expense[i],
			ExpenseAverage: expenseAvg[i],
			Delta:          deltas[i],
			DeltaAverage:   deltaAvg[i],
		})
	}
	return rep, nil
}
