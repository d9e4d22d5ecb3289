package alere

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
)

// IntervalBalance is the number of shares an account holds over [From, To).
type IntervalBalance struct {
	Account   AccountID
	Commodity CommodityID
	Shares    decimal.Decimal
	From, To  date.Date
}

// Covers reports whether day is in [From, To).
func (b IntervalBalance) Covers(day date.Date) bool {
	return !day.Before(b.From) && day.Before(b.To)
}

// BuildBalances folds events into per account balance intervals.
//
// Each distinct post date of an account opens an interval holding the
// running total after every split of that date; it lasts until the next post
// date, the last one until date.EndOfTime. Events of unknown accounts are
// ignored.
func BuildBalances(events []Event, accounts map[AccountID]Account) map[AccountID][]IntervalBalance {
	per := make(map[AccountID][]Event)
	for _, e := range events {
		if _, ok := accounts[e.Account]; ok {
			per[e.Account] = append(per[e.Account], e)
		}
	}
	res := make(map[AccountID][]IntervalBalance, len(per))
	for id, evs := range per {
		acc := accounts[id]
		slices.SortStableFunc(evs, func(a, b Event) int {
			if c := a.PostDate.Compare(b.PostDate); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		var (
			intervals []IntervalBalance
			total     int64
		)
		for i, e := range evs {
			total += e.ScaledQty
			if i+1 < len(evs) && evs[i+1].PostDate == e.PostDate {
				continue // splits of the same date make a single step
			}
			end := date.EndOfTime
			if i+1 < len(evs) {
				end = evs[i+1].PostDate
			}
			intervals = append(intervals, IntervalBalance{
				Account:   id,
				Commodity: acc.Commodity,
				Shares:    acc.Shares(total),
				From:      e.PostDate,
				To:        end,
			})
		}
		res[id] = intervals
	}
	return res
}

// CheckPartition verifies that the intervals of one account follow each
// other without gap nor overlap up to date.EndOfTime.
func CheckPartition(intervals []IntervalBalance) error {
	for i, b := range intervals {
		if !b.From.Before(b.To) {
			return fmt.Errorf("interval %d of account %d is empty: [%s, %s)", i, b.Account, b.From, b.To)
		}
		if i > 0 && intervals[i-1].To != b.From {
			return fmt.Errorf("account %d: interval %d ends on %s but interval %d starts on %s", b.Account, i-1, intervals[i-1].To, i, b.From)
		}
	}
	if n := len(intervals); n > 0 && intervals[n-1].To != date.EndOfTime {
		return fmt.Errorf("account %d: last interval ends on %s", intervals[n-1].Account, intervals[n-1].To)
	}
	return nil
}

// balanceAt returns the interval covering day, if any.
func balanceAt(intervals []IntervalBalance, day date.Date) (IntervalBalance, bool) {
	i, found := slices.BinarySearchFunc(intervals, day, func(b IntervalBalance, d date.Date) int {
		return b.From.Compare(d)
	})
	if !found {
		i--
	}
	if i < 0 || !intervals[i].Covers(day) {
		return IntervalBalance{}, false
	}
	return intervals[i], true
}
