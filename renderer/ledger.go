package renderer

import (
	"bytes"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

// LedgerMarkdown renders the transactions of a ledger, one row per split.
// With running set, the balance of the single requested account is shown
// on the first row of each transaction.
func LedgerMarkdown(r *alere.LedgerReport, running bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Ledger from %s to %s", r.From, r.To))

	header := []string{"Date", "Memo", "Account", "Amount", "Shares", "Price"}
	if running {
		header = append(header, "Balance")
	}
	table := columns(header...)
	for _, rec := range r.Records {
		memo := rec.Memo
		if rec.Recurring {
			memo = fmt.Sprintf("%s (occurrence %d)", memo, rec.Occurrence)
		}
		if rec.CheckNumber != "" {
			memo = fmt.Sprintf("%s #%s", memo, rec.CheckNumber)
		}
		for i, s := range rec.Splits {
			row := []string{"", "", s.AccountName, s.Amount.SignedString(), "", ""}
			if i == 0 {
				row[0], row[1] = rec.Date.String(), memo
			}
			if s.PostDate != rec.Date {
				row[2] = fmt.Sprintf("%s (%s)", s.AccountName, s.PostDate)
			}
			// shares of currency accounts are their amount.
			if !s.Shares.IsZero() && !s.Shares.Decimal().Equal(s.Amount.Decimal()) {
				row[4], row[5] = s.Shares.String(), s.Price.String()
			}
			if running {
				cell := ""
				if i == 0 {
					cell = rec.Balance.String()
				}
				row = append(row, cell)
			}
			table.Rows = append(table.Rows, row)
		}
	}
	doc.Table(table)
	return footer(doc.String(),
		func(w io.Writer) bool { return running && unconverted(w, r.Unconverted, r.Currency) },
	)
}
