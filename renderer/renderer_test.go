package renderer

import (
	"bytes"
	"html"
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/etnz/alere"
	"github.com/etnz/alere/date"
)

// toHTML converts a rendered document with the GitHub flavor, so that a
// malformed table shows up as a paragraph.
func toHTML(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(src), &buf); err != nil {
		t.Fatalf("goldmark.Convert() failed: %v", err)
	}
	return buf.String()
}

// hasCell reports whether text is the whole content of an element.
func hasCell(doc, text string) bool {
	return strings.Contains(doc, ">"+html.EscapeString(text)+"<")
}

func eur(v float64) alere.Money { return alere.M(v, "EUR") }

var (
	jan = date.New(2023, time.January, 31)
	feb = date.New(2023, time.February, 28)
)

func TestNetWorthMarkdown(t *testing.T) {
	r := &alere.NetWorthReport{
		Currency: "EUR",
		Dates:    []date.Date{jan, feb},
		Accounts: []alere.AccountNetWorth{
			{Account: 1, Name: "Checking", IsNetworth: true, IsLiquid: true, Holdings: []alere.Holding{
				{Value: eur(950), Priced: true}, {Value: eur(450), Priced: true},
			}},
			{Account: 2, Name: "Groceries", Holdings: []alere.Holding{{Value: eur(50), Priced: true}, {Value: eur(550), Priced: true}}},
			{Account: 3, Name: "Gold bars", IsNetworth: true, Holdings: []alere.Holding{
				{Shares: alere.Q(2), Value: eur(0)}, {Shares: alere.Q(2), Value: eur(0)},
			}},
		},
		Totals:   []alere.Money{eur(950), eur(450)},
		Liquid:   []alere.Money{eur(950), eur(450)},
		Unpriced: []alere.AccountID{3},
	}
	doc := toHTML(t, NetWorthMarkdown(r))

	if n := strings.Count(doc, "<table>"); n != 1 {
		t.Errorf("NetWorthMarkdown() has %d tables, want 1", n)
	}
	for _, cell := range []string{"2023-01-31", "2023-02-28", "Checking", eur(950).String(), eur(450).String(), "n/a"} {
		if !hasCell(doc, cell) {
			t.Errorf("NetWorthMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if strings.Contains(doc, "Groceries") {
		t.Errorf("NetWorthMarkdown() lists an account outside net worth:\n%s", doc)
	}
	if !strings.Contains(doc, "<h2>Unpriced</h2>") || !hasCell(doc, "Gold bars") {
		t.Errorf("NetWorthMarkdown() does not list the unpriced account:\n%s", doc)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	r := &alere.NetWorthHistoryReport{
		Currency:  "EUR",
		Truncated: true,
		Points: []alere.HistoryPoint{
			{Date: jan, NetWorth: eur(950), Delta: eur(950), Average: eur(950)},
			{Date: feb, NetWorth: eur(450), Delta: eur(-500), Average: eur(225)},
		},
	}
	doc := toHTML(t, HistoryMarkdown(r))
	for _, cell := range []string{"2023-02-28", eur(-500).String(), "+" + eur(225).String()} {
		if !hasCell(doc, cell) {
			t.Errorf("HistoryMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if !strings.Contains(doc, "<blockquote>") {
		t.Errorf("HistoryMarkdown() does not warn about the truncated window:\n%s", doc)
	}
	if strings.Contains(doc, "Unpriced") {
		t.Errorf("HistoryMarkdown() has an empty unpriced section:\n%s", doc)
	}
}

func TestCashflowMarkdown(t *testing.T) {
	r := &alere.CashflowReport{
		Currency: "EUR",
		Points: []alere.CashflowPoint{{
			Period: date.Range{From: date.New(2023, time.January, 1), To: jan},
			Date:   jan,
			Income: eur(2000), IncomeAverage: eur(1000),
			Unrealized: eur(0), UnrealizedAverage: eur(0),
			Expense: eur(50), ExpenseAverage: eur(25),
		}},
		Unconverted: 3,
	}
	doc := toHTML(t, CashflowMarkdown(r))
	for _, cell := range []string{"2023-01", eur(2000).String(), eur(25).String()} {
		if !hasCell(doc, cell) {
			t.Errorf("CashflowMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if !strings.Contains(doc, "3 splits could not be converted to EUR") {
		t.Errorf("CashflowMarkdown() does not report the unconverted splits:\n%s", doc)
	}
}

func TestMetricsMarkdown(t *testing.T) {
	r := &alere.MetricsReport{
		Currency: "EUR",
		From:     date.New(2023, time.January, 1),
		To:       jan,
		Income:   eur(2000), WorkIncome: eur(2000), PassiveIncome: eur(0),
		Expenses: eur(50), IncomeTaxes: eur(0), OtherTaxes: eur(0),
		NetWorthStart: eur(1000), NetWorth: eur(2950),
		LiquidStart: eur(1000), Liquid: eur(2950),
	}
	src := MetricsMarkdown(r)
	if strings.HasPrefix(src, "error") {
		t.Fatalf("MetricsMarkdown() failed: %s", src)
	}
	doc := toHTML(t, src)
	if !strings.Contains(doc, "<h1>Metrics from 2023-01-01 to 2023-01-31</h1>") {
		t.Errorf("MetricsMarkdown() has no title:\n%s", doc)
	}
	if n := strings.Count(doc, "<table>"); n != 2 {
		t.Errorf("MetricsMarkdown() has %d tables, want 2", n)
	}
	for _, cell := range []string{"97.5%", eur(2950).String(), "+" + eur(1950).String()} {
		if !hasCell(doc, cell) {
			t.Errorf("MetricsMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
}

func TestMetricsMarkdown_NoIncome(t *testing.T) {
	r := &alere.MetricsReport{Currency: "EUR", Income: eur(0), Expenses: eur(50)}
	doc := toHTML(t, MetricsMarkdown(r))
	if !hasCell(doc, "n/a") {
		t.Errorf("MetricsMarkdown() shows a saving rate without income:\n%s", doc)
	}
}

func TestIncomeExpenseMarkdown(t *testing.T) {
	r := &alere.IncomeExpenseReport{
		Currency: "EUR",
		From:     date.New(2023, time.January, 1),
		To:       jan,
		Accounts: []alere.AccountTotal{
			{Account: 3, Name: "Salary", Value: eur(2000)},
			{Account: 2, Name: "Groceries", Value: eur(-50)},
		},
		Total: eur(1950),
	}
	doc := toHTML(t, IncomeExpenseMarkdown(r))
	for _, cell := range []string{"Salary", "+" + eur(2000).String(), eur(-50).String(), "+" + eur(1950).String()} {
		if !hasCell(doc, cell) {
			t.Errorf("IncomeExpenseMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if !strings.Contains(doc, "<strong>Total</strong>") {
		t.Errorf("IncomeExpenseMarkdown() has no total:\n%s", doc)
	}
}

func TestMeanMarkdown(t *testing.T) {
	r := &alere.MeanReport{Currency: "EUR", Points: []alere.MeanPoint{
		{Date: jan, Income: eur(2000), IncomeAverage: eur(2000), Expense: eur(50), ExpenseAverage: eur(50), Delta: eur(1950), DeltaAverage: eur(1950)},
	}}
	doc := toHTML(t, MeanMarkdown(r))
	if !hasCell(doc, "2023-01") || !hasCell(doc, "+"+eur(1950).String()) {
		t.Errorf("MeanMarkdown() is missing the month:\n%s", doc)
	}
}

func TestQuotesMarkdown(t *testing.T) {
	r := &alere.QuotesReport{
		Currency: "EUR",
		From:     date.New(2023, time.January, 1),
		To:       date.New(2023, time.December, 31),
		Symbols: []alere.Symbol{
			{Commodity: 3, Name: "Acme", Ticker: "ACME", Source: "yahoo", Prices: []alere.PricePoint{{Date: jan, Price: eur(12)}}},
			{Commodity: 4, Name: "Gold", Ticker: "XAU"},
		},
		Accounts: []alere.ForAccount{{
			Account: 5, Name: "Acme shares",
			End: alere.Position{
				Shares: alere.Q(10), Invested: eur(100), Gains: eur(50), Equity: eur(120), PL: eur(70),
				ROI: 1.7, Priced: true,
			},
			PeriodROI:     1.7,
			AnnualizedROI: alere.Undefined(),
		}},
	}
	doc := toHTML(t, QuotesMarkdown(r))
	if n := strings.Count(doc, "<table>"); n != 2 {
		t.Errorf("QuotesMarkdown() has %d tables, want 2", n)
	}
	for _, cell := range []string{"ACME", "yahoo", eur(12).String(), "Acme shares", "+" + eur(70).String(), "+70.00%", "n/a"} {
		if !hasCell(doc, cell) {
			t.Errorf("QuotesMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if strings.Contains(doc, "could not be converted") {
		t.Errorf("QuotesMarkdown() warns without unconverted splits:\n%s", doc)
	}

	r.Unconverted = 1
	if doc := QuotesMarkdown(r); !strings.Contains(doc, "1 splits could not be converted to EUR") {
		t.Errorf("QuotesMarkdown() does not warn about unconverted splits:\n%s", doc)
	}
}

func TestLedgerMarkdown(t *testing.T) {
	r := &alere.LedgerReport{
		From: date.New(2023, time.January, 1),
		To:   jan,
		Records: []alere.TransactionRecord{
			{Transaction: 2, Date: date.New(2023, time.January, 15), Memo: "groceries", CheckNumber: "42", Balance: eur(950), Splits: []alere.SplitRecord{
				{Split: 3, Account: 1, AccountName: "Checking", PostDate: date.New(2023, time.January, 15), Amount: eur(-50), Shares: alere.Q(-50)},
				{Split: 4, Account: 2, AccountName: "Groceries", PostDate: date.New(2023, time.January, 16), Amount: eur(50), Shares: alere.Q(50)},
			}},
			{Transaction: 100, Occurrence: 1, Recurring: true, Date: date.New(2023, time.February, 1), Memo: "rent", Balance: eur(450), Splits: []alere.SplitRecord{
				{Split: 5, Account: 1, AccountName: "Checking", PostDate: date.New(2023, time.February, 1), Amount: eur(-500), Shares: alere.Q(-500)},
			}},
		},
	}

	doc := toHTML(t, LedgerMarkdown(r, true))
	for _, cell := range []string{"groceries #42", "Groceries (2023-01-16)", "rent (occurrence 1)", eur(950).String(), eur(450).String()} {
		if !hasCell(doc, cell) {
			t.Errorf("LedgerMarkdown() has no cell %q:\n%s", cell, doc)
		}
	}
	if hasCell(doc, "-50") {
		t.Errorf("LedgerMarkdown() shows the shares of a currency account:\n%s", doc)
	}

	doc = toHTML(t, LedgerMarkdown(r, false))
	if strings.Contains(doc, "Balance") {
		t.Errorf("LedgerMarkdown() shows a balance without a single account:\n%s", doc)
	}

	r.Currency, r.Unconverted = "EUR", 2
	if got := LedgerMarkdown(r, true); !strings.Contains(got, "2 splits could not be converted to EUR") {
		t.Errorf("LedgerMarkdown() does not warn about unconverted splits:\n%s", got)
	}
}
