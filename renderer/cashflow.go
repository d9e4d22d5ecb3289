package renderer

import (
	"bytes"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

// CashflowMarkdown renders the income and expenses of each period with
// their rolling averages.
func CashflowMarkdown(r *alere.CashflowReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Cashflow in %s", r.Currency))

	table := columns("Period", "Income", "Average", "Unrealized", "Average", "Expense", "Average")
	for _, p := range r.Points {
		table.Rows = append(table.Rows, []string{
			p.Period.Identifier(),
			p.Income.String(), p.IncomeAverage.String(),
			p.Unrealized.String(), p.UnrealizedAverage.String(),
			p.Expense.String(), p.ExpenseAverage.String(),
		})
	}
	doc.Table(table)

	return footer(doc.String(),
		func(w io.Writer) bool { return truncated(w, r.Truncated) },
		func(w io.Writer) bool { return unconverted(w, r.Unconverted, r.Currency) },
	)
}

// MetricsMarkdown renders the summary of a window.
func MetricsMarkdown(r *alere.MetricsReport) string {
	partials := map[string]string{
		"metrics_title": "metrics_title.md",
	}
	doc := renderTemplate("metrics", "metrics.md", partials, r)
	return footer(doc,
		func(w io.Writer) bool { return unpriced(w, nil, r.Unpriced) },
		func(w io.Writer) bool { return unconverted(w, r.Unconverted, r.Currency) },
	)
}

// IncomeExpenseMarkdown renders the flow through each income and expense
// account.
func IncomeExpenseMarkdown(r *alere.IncomeExpenseReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Income and expenses from %s to %s", r.From, r.To))

	table := columns("Account", r.Currency)
	for _, a := range r.Accounts {
		table.Rows = append(table.Rows, []string{a.Name, a.Value.SignedString()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), r.Total.SignedString()})
	doc.Table(table)

	return footer(doc.String(),
		func(w io.Writer) bool { return unconverted(w, r.Unconverted, r.Currency) },
	)
}

// MeanMarkdown renders the monthly income, expenses and net worth change
// with their rolling averages.
func MeanMarkdown(r *alere.MeanReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Monthly means in %s", r.Currency))

	table := columns("Month", "Income", "Average", "Expense", "Average", "Net worth change", "Average")
	for _, p := range r.Points {
		table.Rows = append(table.Rows, []string{
			p.Date.Format("2006-01"),
			p.Income.String(), p.IncomeAverage.String(),
			p.Expense.String(), p.ExpenseAverage.String(),
			p.Delta.SignedString(), p.DeltaAverage.SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}
