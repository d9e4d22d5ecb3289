package alere

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
)

// QuotesRequest asks for the quotes of symbols and the return of the
// trading accounts holding them.
type QuotesRequest struct {
	From, To    date.Date
	Currency    CommodityID
	Commodities []CommodityID // empty for all
	Accounts    []AccountID   // empty for all trading accounts
	Today       date.Date     // zero for date.Today()
}

// PricePoint is a quote of a symbol.
type PricePoint struct {
	Date  date.Date `json:"date"`
	Price Money     `json:"price"`
}

// Symbol describes a quoted commodity.
type Symbol struct {
	Commodity  CommodityID  `json:"commodity"`
	Name       string       `json:"name"`
	Ticker     string       `json:"ticker"`
	Source     string       `json:"source,omitempty"`
	IsCurrency bool         `json:"isCurrency"`
	PriceScale int64        `json:"priceScale"`
	Accounts   []AccountID  `json:"accounts"`
	Prices     []PricePoint `json:"prices"` // inside the window
}

// Position is the state of an investment at a date.
type Position struct {
	Shares   Quantity `json:"shares"`
	Invested Money    `json:"invested"` // bought minus sold
	Gains    Money    `json:"gains"`    // dividends and other realized income
	Equity   Money    `json:"equity"`   // market value
	PL       Money    `json:"pl"`       // equity - invested + gains
	ROI      Ratio    `json:"roi"`      // (equity + gains) / invested
	// AverageCost is invested / shares, WeightedAverage the average price
	// of every buy.
	AverageCost     Money `json:"averageCost"`
	WeightedAverage Money `json:"weightedAverage"`
	Priced          bool  `json:"priced"`
}

// AccountPoint is the position of an account on a quote date.
type AccountPoint struct {
	Date   date.Date `json:"date"`
	Price  Money     `json:"price"`
	Shares Quantity  `json:"shares"`
	ROI    Ratio     `json:"roi"`
}

// ForAccount is the return of one trading account.
type ForAccount struct {
	Account       AccountID      `json:"account"`
	Name          string         `json:"name"`
	Commodity     CommodityID    `json:"commodity"`
	Start         Position       `json:"start"` // the day before From
	End           Position       `json:"end"`   // on To
	Oldest        date.Date      `json:"oldest"`     // zero without moves
	MostRecent    date.Date      `json:"mostRecent"` // last move up to To
	Prices        []AccountPoint `json:"prices"`
	PeriodROI     Ratio          `json:"periodRoi"`
	AnnualizedROI Ratio          `json:"annualizedRoi"`
}

type QuotesReport struct {
	Currency string       `json:"currency"`
	From     date.Date    `json:"from"`
	To       date.Date    `json:"to"`
	Symbols  []Symbol     `json:"symbols"`
	Accounts []ForAccount `json:"accounts"` // every trading account, moved or not
	// Unconverted counts the trading and income splits without a quote to
	// Currency. Their value is left out of Invested and Gains.
	Unconverted int `json:"unconverted,omitempty"`
}

// Quotes reports the quotes of symbols in currency and the return on
// investment of the trading accounts holding them.
func (e *Engine) Quotes(ctx context.Context, req QuotesRequest) (*QuotesReport, error) {
	ctx, _ = logging.Operation(ctx, "quotes")
	req.From, req.To = date.Clamp(req.From), date.Clamp(req.To)
	if req.Today.IsZero() {
		req.Today = date.Today()
	}
	params := map[string]any{"from": req.From, "to": req.To, "currency": req.Currency, "commodities": req.Commodities, "accounts": req.Accounts}
	var st *state
	err := e.read(ctx, "quotes", params, func(ctx context.Context, r Reader) (err error) {
		st, err = e.load(ctx, r, CollectRequest{From: date.Min, To: req.To, Scenario: NoScenario}, req.Currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st.quotes(req), nil
}

// move is the effect of one transaction on a trading account.
type move struct {
	on     date.Date
	shares decimal.Decimal
	value  decimal.Decimal // in the reporting currency
	gains  decimal.Decimal
}

// totals accumulates the moves of a trading account.
type totals struct {
	shares, invested, gains, bought, boughtShares decimal.Decimal
}

// tracker replays the moves of one trading account.
type tracker struct {
	running  date.History[totals]
	prices   PriceTable
	origin   CommodityID
	currency CommodityID
	cur      string
}

// newTracker accumulates moves, sorted by date, into a running history.
func newTracker(moves []move) tracker {
	var t tracker
	var acc totals
	for _, m := range moves {
		acc.shares = acc.shares.Add(m.shares)
		acc.invested = acc.invested.Add(m.value)
		acc.gains = acc.gains.Add(m.gains)
		if m.shares.IsPositive() {
			acc.bought, acc.boughtShares = acc.bought.Add(m.value), acc.boughtShares.Add(m.shares)
		}
		t.running.Append(m.on, acc)
	}
	return t
}

// at returns the position after every move up to day included.
func (t tracker) at(day date.Date) Position {
	acc, _ := t.running.ValueAsOf(day)
	shares, invested, gains := acc.shares, acc.invested, acc.gains
	bought, boughtShares := acc.bought, acc.boughtShares
	p := Position{
		Shares:          Q(shares),
		Invested:        M(invested, t.cur),
		Gains:           M(gains, t.cur),
		Equity:          M(0, t.cur),
		AverageCost:     M(0, t.cur),
		WeightedAverage: M(0, t.cur),
		Priced:          true,
	}
	if price, ok := t.prices.At(t.origin, t.currency, day); ok {
		p.Equity = M(shares.Mul(price), t.cur)
	} else if !shares.IsZero() {
		p.Priced = false
	}
	p.PL = p.Equity.Sub(p.Invested).Add(p.Gains)
	p.ROI = ratio(p.Equity.Add(p.Gains).Decimal().InexactFloat64(), invested.InexactFloat64())
	if !p.Priced {
		p.ROI = Undefined()
	}
	if !shares.IsZero() {
		p.AverageCost = M(invested.Div(shares), t.cur)
	}
	if !boughtShares.IsZero() {
		p.WeightedAverage = M(bought.Div(boughtShares), t.cur)
	}
	return p
}

// periodROI is the return over a period: what the period ends with, over
// what it started with plus what was invested in between.
func periodROI(start, end Position) Ratio {
	num := end.Equity.Add(end.Gains).Sub(start.Gains)
	den := start.Equity.Add(end.Invested).Sub(start.Invested)
	return ratio(num.Decimal().InexactFloat64(), den.Decimal().InexactFloat64())
}

// annualizedROI scales roi, earned since oldest, to a yearly return.
func annualizedROI(roi Ratio, oldest, asOf date.Date) Ratio {
	days := asOf.DaysSince(oldest)
	if roi.IsUndefined() || days <= 0 {
		return Undefined()
	}
	return Ratio(math.Pow(float64(roi), 365/float64(days)))
}

func (st *state) quotes(req QuotesRequest) *QuotesReport {
	cur := st.cat.code(req.Currency)
	rep := &QuotesReport{Currency: cur, From: req.From, To: req.To}

	// moves of the trading accounts, per account.
	type key struct {
		tx  TransactionID
		occ int
	}
	groups := make(map[key][]Event)
	var order []key
	for _, e := range st.events {
		k := key{e.Transaction, e.Occurrence}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}
	moves := make(map[AccountID][]move)
	for _, k := range order {
		evs := groups[k]
		for _, e := range evs {
			if !st.cat.kind(e.Account).IsTrading || !wanted(req.Accounts, e.Account) {
				continue
			}
			m := move{on: e.PostDate, shares: st.cat.shares(e.Split)}
			if !m.shares.IsZero() {
				v, ok := st.valueIn(e.Split, req.Currency)
				if !ok {
					rep.Unconverted++
				}
				m.value = v
			} else {
				// dividends: the income of a transaction that does not trade.
				for _, o := range evs {
					if st.cat.kind(o.Account).Category != Income {
						continue
					}
					v, ok := st.valueIn(o.Split, req.Currency)
					if !ok {
						rep.Unconverted++
					}
					m.gains = m.gains.Sub(v)
				}
			}
			moves[e.Account] = append(moves[e.Account], m)
		}
	}

	symbols := make(map[CommodityID]*Symbol)
	var ids []AccountID
	for id, acc := range st.cat.accounts {
		if st.cat.kind(id).IsTrading && wanted(req.Accounts, id) && wanted(req.Commodities, acc.Commodity) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		acc := st.cat.accounts[id]
		ms := moves[id]
		slices.SortStableFunc(ms, func(a, b move) int { return a.on.Compare(b.on) })
		t := newTracker(ms)
		t.prices, t.origin, t.currency, t.cur = st.prices, acc.Commodity, req.Currency, cur
		fa := ForAccount{
			Account:   id,
			Name:      acc.Name,
			Commodity: acc.Commodity,
			Start:     t.at(req.From.Add(-1)),
			End:       t.at(req.To),
		}
		if len(ms) > 0 {
			fa.Oldest = ms[0].on
		}
		for _, m := range ms {
			if !m.on.After(req.To) {
				fa.MostRecent = m.on
			}
		}
		for _, p := range st.prices.Intervals(acc.Commodity, req.Currency) {
			if p.From.Before(req.From) || p.From.After(req.To) {
				continue
			}
			pos := t.at(p.From)
			fa.Prices = append(fa.Prices, AccountPoint{Date: p.From, Price: M(p.Price, cur), Shares: pos.Shares, ROI: pos.ROI})
		}
		fa.PeriodROI = periodROI(fa.Start, fa.End)
		fa.AnnualizedROI = annualizedROI(fa.End.ROI, fa.Oldest, date.Earliest(req.To, req.Today))
		rep.Accounts = append(rep.Accounts, fa)

		if s, ok := symbols[acc.Commodity]; ok {
			s.Accounts = append(s.Accounts, id)
		} else {
			symbols[acc.Commodity] = st.symbol(acc.Commodity, req, id)
		}
	}
	for _, id := range req.Commodities {
		if _, ok := symbols[id]; !ok {
			if _, known := st.cat.commodities[id]; known {
				symbols[id] = st.symbol(id, req)
			}
		}
	}
	for _, s := range symbols {
		rep.Symbols = append(rep.Symbols, *s)
	}
	slices.SortFunc(rep.Symbols, func(a, b Symbol) int { return cmp.Compare(a.Ticker+a.Name, b.Ticker+b.Name) })
	return rep
}

func (st *state) symbol(id CommodityID, req QuotesRequest, accounts ...AccountID) *Symbol {
	c := st.cat.commodities[id]
	s := &Symbol{
		Commodity:  id,
		Name:       c.Name,
		Ticker:     c.Symbol,
		Source:     c.QuoteSource,
		IsCurrency: c.IsCurrency,
		PriceScale: c.PriceScale,
		Accounts:   accounts,
	}
	for _, p := range st.prices.Intervals(id, req.Currency) {
		if !p.From.Before(req.From) && !p.From.After(req.To) {
			s.Prices = append(s.Prices, PricePoint{Date: p.From, Price: M(p.Price, st.cat.code(req.Currency))})
		}
	}
	return s
}

// wanted reports whether id passes a filter, an empty filter passing all.
func wanted[T comparable](filter []T, id T) bool {
	return len(filter) == 0 || slices.Contains(filter, id)
}
