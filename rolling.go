package alere

import "github.com/shopspring/decimal"

// Rolling returns the centered moving average of values: each point is the
// mean of the values from 'prior' points before to 'after' points after it.
// The window shrinks near both ends of the series. Rolling(v, 0, 0) is v.
func Rolling(values []decimal.Decimal, prior, after int) []decimal.Decimal {
	prior, after = max(prior, 0), max(after, 0)
	res := make([]decimal.Decimal, len(values))
	for i := range values {
		lo, hi := max(i-prior, 0), min(i+after, len(values)-1)
		if lo == hi {
			res[i] = values[i]
			continue
		}
		sum := decimal.Zero
		for _, v := range values[lo : hi+1] {
			sum = sum.Add(v)
		}
		res[i] = sum.Div(decimal.NewFromInt(int64(hi - lo + 1)))
	}
	return res
}

// rollingMoney is Rolling over amounts of a single currency.
func rollingMoney(values []Money, prior, after int) []Money {
	ds := make([]decimal.Decimal, len(values))
	for i, v := range values {
		ds[i] = v.value
	}
	res := make([]Money, len(values))
	for i, d := range Rolling(ds, prior, after) {
		res[i] = Money{value: d, cur: values[i].cur}
	}
	return res
}
