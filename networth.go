package alere

import (
	"cmp"
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// NetWorthRequest asks for the value of every account at some dates.
type NetWorthRequest struct {
	Dates    date.Set
	Currency CommodityID
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
}

// Holding is the position of an account at one date.
type Holding struct {
	Shares Quantity `json:"shares"`
	Price  Money    `json:"price"`
	Value  Money    `json:"value"`
	// Priced is false when shares are held but no quote values them.
	Priced bool `json:"priced"`
}

// AccountNetWorth is the valuation of one account.
type AccountNetWorth struct {
	Account    AccountID         `json:"account"`
	Name       string            `json:"name"`
	Commodity  string            `json:"commodity"`
	IsNetworth bool              `json:"isNetworth"`
	IsLiquid   bool              `json:"isLiquid"`
	Holdings   []Holding         `json:"holdings"` // one per date
	Intervals  []CurrencyBalance `json:"intervals"`
}

// NetWorthReport values accounts at each date of a set.
type NetWorthReport struct {
	Currency  string            `json:"currency"`
	Dates     []date.Date       `json:"dates"`
	Truncated bool              `json:"truncated,omitempty"`
	Accounts  []AccountNetWorth `json:"accounts"`
	Totals    []Money           `json:"totals"` // accounts counting in net worth
	Liquid    []Money           `json:"liquid"` // liquid accounts
	// Unpriced lists accounts holding shares no quote values. They count
	// for nothing in the totals.
	Unpriced []AccountID `json:"unpriced,omitempty"`
}

// NetWorth values every account at each date of req.Dates.
func (e *Engine) NetWorth(ctx context.Context, req NetWorthRequest) (*NetWorthReport, error) {
	ctx, log := logging.Operation(ctx, "networth")
	params := map[string]any{"dates": req.Dates, "currency": req.Currency, "scenario": req.Scenario, "occurrences": req.Ceiling}
	var st *state
	err := e.read(ctx, "networth", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: date.Min, To: req.Dates.MostRecent(), Scenario: req.Scenario, Ceiling: req.Ceiling}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	if log.GetLevel() <= zerolog.DebugLevel {
		for id, intervals := range BuildBalances(st.events, st.cat.accounts) {
			if err := CheckPartition(intervals); err != nil {
				log.Warn().Err(err).Int64("account", int64(id)).Msg("inconsistent balance intervals")
			}
		}
	}
	rep := st.valuate(req.Currency, req.Dates.Dates())
	rep.Truncated = req.Dates.Truncated()
	log.Debug().Int("accounts", len(rep.Accounts)).Msg("net worth computed")
	return rep, nil
}

// valuate computes the net worth report at dates.
func (st *state) valuate(currency CommodityID, dates []date.Date) *NetWorthReport {
	cur := st.cat.code(currency)
	rep := &NetWorthReport{
		Currency: cur,
		Dates:    dates,
		Totals:   make([]Money, len(dates)),
		Liquid:   make([]Money, len(dates)),
	}
	for i := range dates {
		rep.Totals[i], rep.Liquid[i] = M(0, cur), M(0, cur)
	}
	var bounds date.Range
	if len(dates) > 0 {
		bounds = date.Range{From: dates[0], To: dates[len(dates)-1]}
	}

	balances := BuildBalances(st.events, st.cat.accounts)
	ids := make([]AccountID, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b AccountID) int {
		if c := cmp.Compare(st.cat.accounts[a].Name, st.cat.accounts[b].Name); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for _, id := range ids {
		acc, kind := st.cat.accounts[id], st.cat.kind(id)
		valued := JoinPrices(balances[id], st.prices, currency)
		anw := AccountNetWorth{
			Account:    id,
			Name:       acc.Name,
			Commodity:  st.cat.code(acc.Commodity),
			IsNetworth: kind.IsNetworth,
			IsLiquid:   kind.IsLiquid(),
			Holdings:   make([]Holding, len(dates)),
		}
		for _, cb := range valued {
			if len(dates) > 0 && cb.From.Compare(bounds.To) <= 0 && bounds.From.Before(cb.To) {
				anw.Intervals = append(anw.Intervals, cb)
			}
		}
		unpriced := false
		for i, d := range dates {
			h := Holding{Price: M(0, cur), Value: M(0, cur), Priced: true}
			if b, ok := balanceAt(balances[id], d); ok {
				h.Shares = Q(b.Shares)
			}
			if j := slices.IndexFunc(valued, func(cb CurrencyBalance) bool { return cb.Covers(d) }); j >= 0 {
				h.Price, h.Value = M(valued[j].Price, cur), M(valued[j].Balance, cur)
			} else if !h.Shares.IsZero() {
				h.Priced, unpriced = false, true
			}
			anw.Holdings[i] = h
			if kind.IsNetworth {
				rep.Totals[i] = rep.Totals[i].Add(h.Value)
			}
			if kind.IsLiquid() {
				rep.Liquid[i] = rep.Liquid[i].Add(h.Value)
			}
		}
		if unpriced {
			rep.Unpriced = append(rep.Unpriced, id)
		}
		rep.Accounts = append(rep.Accounts, anw)
	}
	return rep
}

// HistoryRequest asks for the evolution of net worth over a window.
type HistoryRequest struct {
	Window   date.Set
	Currency CommodityID
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences
	// Prior and After are the number of periods averaged with each delta.
	Prior, After int
}

// HistoryPoint is the net worth at the end of a period.
type HistoryPoint struct {
	Date     date.Date `json:"date"`
	NetWorth Money     `json:"networth"`
	Delta    Money     `json:"delta"`   // change since the previous point
	Average  Money     `json:"average"` // rolling average of Delta
}

type NetWorthHistoryReport struct {
	Currency  string         `json:"currency"`
	Truncated bool           `json:"truncated,omitempty"`
	Points    []HistoryPoint `json:"points"`
	Unpriced  []AccountID    `json:"unpriced,omitempty"`
}

// NetWorthHistory computes the net worth at each date of the window, its
// change since the previous date and the rolling average of that change.
// The change of the first date is relative to the day before its period.
func (e *Engine) NetWorthHistory(ctx context.Context, req HistoryRequest) (*NetWorthHistoryReport, error) {
	ctx, _ = logging.Operation(ctx, "history")
	params := map[string]any{"window": req.Window, "currency": req.Currency, "scenario": req.Scenario, "prior": req.Prior, "after": req.After}
	var st *state
	err := e.read(ctx, "history", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: date.Min, To: req.Window.MostRecent(), Scenario: req.Scenario, Ceiling: req.Ceiling}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st.history(req), nil
}

func (st *state) history(req HistoryRequest) *NetWorthHistoryReport {
	rep := &NetWorthHistoryReport{Currency: st.cat.code(req.Currency), Truncated: req.Window.Truncated()}
	periods := req.Window.Periods()
	if len(periods) == 0 {
		return rep
	}
	dates := append([]date.Date{periods[0].From.Add(-1)}, req.Window.Dates()...)
	nw := st.valuate(req.Currency, dates)
	rep.Unpriced = nw.Unpriced

	deltas := make([]Money, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		deltas[i-1] = nw.Totals[i].Sub(nw.Totals[i-1])
	}
	averages := rollingMoney(deltas, req.Prior, req.After)
	for i, d := range dates[1:] {
		rep.Points = append(rep.Points, HistoryPoint{Date: d, NetWorth: nw.Totals[i+1], Delta: deltas[i], Average: averages[i]})
	}
	return rep
}
