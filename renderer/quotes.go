package renderer

import (
	"bytes"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

// QuotesMarkdown renders the quoted commodities and the performance of the
// trading accounts.
func QuotesMarkdown(r *alere.QuotesReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Quotes from %s to %s", r.From, r.To))

	if len(r.Symbols) > 0 {
		doc.H2("Symbols")
		table := columns("Name", "Ticker", "Source", "Date", "Price")
		for _, s := range r.Symbols {
			row := []string{s.Name, s.Ticker, s.Source, "", "n/a"}
			if n := len(s.Prices); n > 0 {
				row[3], row[4] = s.Prices[n-1].Date.String(), s.Prices[n-1].Price.String()
			}
			table.Rows = append(table.Rows, row)
		}
		doc.Table(table)
	}

	if len(r.Accounts) > 0 {
		doc.H2(fmt.Sprintf("Performance in %s", r.Currency))
		table := columns("Account", "Shares", "Invested", "Gains", "Equity", "P&L", "ROI", "Period", "Annualized")
		for _, a := range r.Accounts {
			end := a.End
			equity, pl := end.Equity.String(), end.PL.SignedString()
			if !end.Priced {
				equity, pl = "n/a", "n/a"
			}
			table.Rows = append(table.Rows, []string{
				a.Name,
				end.Shares.String(),
				end.Invested.String(),
				end.Gains.String(),
				equity,
				pl,
				end.ROI.String(),
				a.PeriodROI.String(),
				a.AnnualizedROI.String(),
			})
		}
		doc.Table(table)
	}
	return footer(doc.String(), func(w io.Writer) bool { return unconverted(w, r.Unconverted, r.Currency) })
}
