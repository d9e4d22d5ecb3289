package alere

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a reporting currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// fraction returns the number of decimals of the currency, and false for
// codes that are not ISO 4217 currencies.
func (m Money) fraction() (int, bool) {
	c := money.GetCurrency(m.cur)
	if c == nil {
		return 0, false
	}
	return c.Fraction, true
}

// String returns the string representation of the money value.
func (m Money) String() string {
	c := money.GetCurrency(m.cur)
	if c == nil {
		// instruments and non ISO currencies.
		s := m.value.StringFixed(2)
		if m.cur != "" {
			s += " " + m.cur
		}
		return s
	}
	dec := m.value.Shift(int32(c.Fraction)).Round(0)
	return money.New(dec.IntPart(), m.cur).Display()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }

// Add sums amounts. The empty currency is neutral, amounts of the reporting
// currency are never added to amounts of another one.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	rounded := m.value
	if f, ok := m.fraction(); ok {
		rounded = m.value.Round(int32(f))
	}
	w.Append("amount", rounded)
	return w.MarshalJSON()
}
