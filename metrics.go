package alere

import (
	"context"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// MetricsRequest asks for the summary of [From, To).
type MetricsRequest struct {
	From, To date.Date
	Currency CommodityID
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
}

// MetricsReport summarizes a window. Every figure is positive when it is
// what its name says: income earned, expenses paid.
type MetricsReport struct {
	Currency      string    `json:"currency"`
	From          date.Date `json:"from"`
	To            date.Date `json:"to"`
	Income        Money     `json:"income"` // realized
	PassiveIncome Money     `json:"passiveIncome"`
	WorkIncome    Money     `json:"workIncome"`
	Expenses      Money     `json:"expenses"`
	IncomeTaxes   Money     `json:"incomeTaxes"`
	OtherTaxes    Money     `json:"otherTaxes"`
	// Net worth and liquid assets on From and on To.
	NetWorthStart Money       `json:"networthStart"`
	NetWorth      Money       `json:"networth"`
	LiquidStart   Money       `json:"liquidStart"`
	Liquid        Money       `json:"liquid"`
	Unpriced      []AccountID `json:"unpriced,omitempty"`
	Unconverted   int         `json:"unconverted,omitempty"`
}

// SavingRate is the share of income not spent, Undefined without income.
func (m *MetricsReport) SavingRate() Ratio {
	inc := m.Income.Decimal().InexactFloat64()
	return ratio(inc-m.Expenses.Decimal().InexactFloat64(), inc)
}

// Metrics computes the summary of [From, To).
func (e *Engine) Metrics(ctx context.Context, req MetricsRequest) (*MetricsReport, error) {
	ctx, _ = logging.Operation(ctx, "metrics")
	req.From, req.To = date.Clamp(req.From), date.Clamp(req.To)
	params := map[string]any{"from": req.From, "to": req.To, "currency": req.Currency, "scenario": req.Scenario}
	var st *state
	err := e.read(ctx, "metrics", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: date.Min, To: req.To, Scenario: req.Scenario, Ceiling: req.Ceiling}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st.metrics(req), nil
}

func (st *state) metrics(req MetricsRequest) *MetricsReport {
	cur := st.cat.code(req.Currency)
	zero := M(0, cur)
	rep := &MetricsReport{
		Currency: cur, From: req.From, To: req.To,
		Income: zero, PassiveIncome: zero, WorkIncome: zero,
		Expenses: zero, IncomeTaxes: zero, OtherTaxes: zero,
	}
	for _, e := range st.events {
		if e.PostDate.Before(req.From) || !e.PostDate.Before(req.To) {
			continue
		}
		kind := st.cat.kind(e.Account)
		v, ok := st.valueIn(e.Split, req.Currency)
		if !ok {
			if kind.Category == Income || kind.Category == Expense {
				rep.Unconverted++
			}
			continue
		}
		m := M(v, cur)
		if kind.IsRealizedIncome() {
			rep.Income = rep.Income.Sub(m)
		}
		if kind.IsPassiveIncome {
			rep.PassiveIncome = rep.PassiveIncome.Sub(m)
		}
		if kind.IsWorkIncome {
			rep.WorkIncome = rep.WorkIncome.Sub(m)
		}
		if kind.Category == Expense {
			rep.Expenses = rep.Expenses.Add(m)
		}
		if kind.IsIncomeTax {
			rep.IncomeTaxes = rep.IncomeTaxes.Add(m)
		}
		if kind.IsMiscTax {
			rep.OtherTaxes = rep.OtherTaxes.Add(m)
		}
	}

	nw := st.valuate(req.Currency, []date.Date{req.From, req.To})
	rep.NetWorthStart, rep.NetWorth = nw.Totals[0], nw.Totals[1]
	rep.LiquidStart, rep.Liquid = nw.Liquid[0], nw.Liquid[1]
	rep.Unpriced = nw.Unpriced
	return rep
}
