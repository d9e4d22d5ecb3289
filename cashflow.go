package alere

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// valueIn returns the value of a split in currency, converted at its post
// date. A split whose value commodity has no quote in currency at that date
// has no value and false is returned.
func (st *state) valueIn(s Split, currency CommodityID) (decimal.Decimal, bool) {
	v := st.cat.value(s)
	p, ok := st.prices.At(s.ValueCommodity, currency, s.PostDate)
	if !ok {
		return decimal.Decimal{}, false
	}
	return v.Mul(p), true
}

// CashflowRequest asks for income and expenses per period.
type CashflowRequest struct {
	Window   date.Set
	Currency CommodityID
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
	// Prior and After are the number of periods averaged with each value.
	Prior, After int
}

// CashflowPoint holds the flows of one period. Income is positive.
type CashflowPoint struct {
	Period            date.Range `json:"period"`
	Date              date.Date  `json:"date"`
	Income            Money      `json:"income"` // realized
	IncomeAverage     Money      `json:"incomeAverage"`
	Unrealized        Money      `json:"unrealized"`
	UnrealizedAverage Money      `json:"unrealizedAverage"`
	Expense           Money      `json:"expense"`
	ExpenseAverage    Money      `json:"expenseAverage"`
}

type CashflowReport struct {
	Currency  string          `json:"currency"`
	Truncated bool            `json:"truncated,omitempty"`
	Points    []CashflowPoint `json:"points"`
	// Unconverted counts splits whose value could not be converted.
	Unconverted int `json:"unconverted,omitempty"`
}

// Cashflow sums, per period of the window, the values of income and expense
// splits. Averages are computed over neighbouring periods, including periods
// just outside the window.
func (e *Engine) Cashflow(ctx context.Context, req CashflowRequest) (*CashflowReport, error) {
	ctx, _ = logging.Operation(ctx, "cashflow")
	params := map[string]any{"window": req.Window, "currency": req.Currency, "scenario": req.Scenario, "occurrences": req.Ceiling, "prior": req.Prior, "after": req.After}
	ext := req.Window.Extend(req.Prior, req.After)
	periods := ext.Periods()
	rep := &CashflowReport{Truncated: req.Window.Truncated()}
	if len(periods) == 0 {
		return rep, nil
	}
	var st *state
	err := e.read(ctx, "cashflow", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: periods[0].From, To: ext.MostRecent(), Scenario: req.Scenario, Ceiling: req.Ceiling}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	rep.Currency = st.cat.code(req.Currency)
	income, unrealized, expense, unconverted := st.flows(periods, req.Currency)
	rep.Unconverted = unconverted
	incomeAvg := rollingMoney(income, req.Prior, req.After)
	unrealizedAvg := rollingMoney(unrealized, req.Prior, req.After)
	expenseAvg := rollingMoney(expense, req.Prior, req.After)

	keep := req.Window.Dates()
	for i, p := range periods {
		if _, found := slices.BinarySearchFunc(keep, p.To, date.Date.Compare); !found {
			continue
		}
		rep.Points = append(rep.Points, CashflowPoint{
			Period:            p,
			Date:              p.To,
			Income:            income[i],
			IncomeAverage:     incomeAvg[i],
			Unrealized:        unrealized[i],
			UnrealizedAverage: unrealizedAvg[i],
			Expense:           expense[i],
			ExpenseAverage:    expenseAvg[i],
		})
	}
	return rep, nil
}

// flows buckets the income and expense of events into periods. Income is
// negated so that earning is positive.
func (st *state) flows(periods []date.Range, currency CommodityID) (income, unrealized, expense []Money, unconverted int) {
	cur := st.cat.code(currency)
	income = make([]Money, len(periods))
	unrealized = make([]Money, len(periods))
	expense = make([]Money, len(periods))
	for i := range periods {
		income[i], unrealized[i], expense[i] = M(0, cur), M(0, cur), M(0, cur)
	}
	for _, e := range st.events {
		kind := st.cat.kind(e.Account)
		if kind.Category != Income && kind.Category != Expense {
			continue
		}
		i, ok := periodOf(periods, e.PostDate)
		if !ok {
			continue
		}
		v, ok := st.valueIn(e.Split, currency)
		if !ok {
			unconverted++
			continue
		}
		m := M(v, cur)
		switch {
		case kind.Category == Expense:
			expense[i] = expense[i].Add(m)
		case kind.IsUnrealized:
			unrealized[i] = unrealized[i].Sub(m)
		default:
			income[i] = income[i].Sub(m)
		}
	}
	return income, unrealized, expense, unconverted
}

// periodOf returns the index of the period containing day.
func periodOf(periods []date.Range, day date.Date) (int, bool) {
	i, _ := slices.BinarySearchFunc(periods, day, func(p date.Range, d date.Date) int { return p.To.Compare(d) })
	if i == len(periods) || !periods[i].Contains(day) {
		return 0, false
	}
	return i, true
}
