package alere

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
)

// PriceInterval is the price of one Origin in Target over [From, To).
type PriceInterval struct {
	Origin, Target CommodityID
	Price          decimal.Decimal
	From, To       date.Date
}

type pair struct{ origin, target CommodityID }

// PriceTable holds the price intervals of every (origin, target) pair, sorted.
type PriceTable map[pair][]PriceInterval

// PriceHistory turns quotes into validity intervals: a quote is valid from
// its date to the date of the next quote of the same pair, the last one
// until date.EndOfTime. Of several quotes on the same date, the last one
// wins.
func PriceHistory(quotes []PriceQuote, commodities map[CommodityID]Commodity) PriceTable {
	byPair := make(map[pair][]PriceQuote)
	for _, q := range quotes {
		k := pair{q.Origin, q.Target}
		byPair[k] = append(byPair[k], q)
	}
	t := make(PriceTable, len(byPair))
	for k, qs := range byPair {
		sort.SliceStable(qs, func(i, j int) bool { return qs[i].Date.Before(qs[j].Date) })
		origin := commodities[k.origin]
		var intervals []PriceInterval
		for i, q := range qs {
			if i+1 < len(qs) && qs[i+1].Date == q.Date {
				continue
			}
			end := date.EndOfTime
			if i+1 < len(qs) {
				end = qs[i+1].Date
			}
			intervals = append(intervals, PriceInterval{
				Origin: k.origin,
				Target: k.target,
				Price:  origin.Value(q.ScaledPrice),
				From:   q.Date,
				To:     end,
			})
		}
		t[k] = intervals
	}
	return t
}

// Intervals returns the price intervals of origin in target.
func (t PriceTable) Intervals(origin, target CommodityID) []PriceInterval {
	return t[pair{origin, target}]
}

// At returns the price of origin in target on day. The price of a commodity
// in itself is 1.
func (t PriceTable) At(origin, target CommodityID, day date.Date) (decimal.Decimal, bool) {
	if origin == target {
		return decimal.NewFromInt(1), true
	}
	ps := t.Intervals(origin, target)
	i := sort.Search(len(ps), func(i int) bool { return ps[i].To.After(day) })
	if i == len(ps) || day.Before(ps[i].From) {
		return decimal.Decimal{}, false
	}
	return ps[i].Price, true
}

// CurrencyBalance is an IntervalBalance valued in a currency over [From, To).
type CurrencyBalance struct {
	Account  AccountID
	Currency CommodityID
	Shares   decimal.Decimal
	Price    decimal.Decimal
	Balance  decimal.Decimal
	From, To date.Date
}

// Covers reports whether day is in [From, To).
func (b CurrencyBalance) Covers(day date.Date) bool {
	return !day.Before(b.From) && day.Before(b.To)
}

// JoinPrices values balances in currency.
//
// Each balance is intersected with the price intervals of its commodity in
// currency: [a0, a1) and [b0, b1) overlap iff a0 < b1 and b0 < a1, and yield
// [max(a0, b0), min(a1, b1)). A part of a balance no quote covers produces
// nothing. A balance already in currency is kept as is, at price 1.
func JoinPrices(balances []IntervalBalance, prices PriceTable, currency CommodityID) []CurrencyBalance {
	var res []CurrencyBalance
	for _, b := range balances {
		if b.Commodity == currency {
			one := decimal.NewFromInt(1)
			res = append(res, CurrencyBalance{b.Account, currency, b.Shares, one, b.Shares, b.From, b.To})
			continue
		}
		ps := prices.Intervals(b.Commodity, currency)
		// first price interval ending after the balance starts.
		i := sort.Search(len(ps), func(i int) bool { return ps[i].To.After(b.From) })
		for ; i < len(ps) && ps[i].From.Before(b.To); i++ {
			from, to := date.Latest(b.From, ps[i].From), date.Earliest(b.To, ps[i].To)
			if !from.Before(to) {
				continue
			}
			res = append(res, CurrencyBalance{
				Account:  b.Account,
				Currency: currency,
				Shares:   b.Shares,
				Price:    ps[i].Price,
				Balance:  b.Shares.Mul(ps[i].Price),
				From:     from,
				To:       to,
			})
		}
	}
	return res
}
