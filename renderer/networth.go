package renderer

import (
	"bytes"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

// NetWorthMarkdown renders the value of every net worth account at each
// date, with the totals.
func NetWorthMarkdown(r *alere.NetWorthReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Net worth in %s", r.Currency))

	table := columns(append([]string{"Account"}, strs(r.Dates...)...)...)
	names := make(map[alere.AccountID]string, len(r.Accounts))
	for _, a := range r.Accounts {
		names[a.Account] = a.Name
		if !a.IsNetworth {
			continue
		}
		row := []string{a.Name}
		for _, h := range a.Holdings {
			cell := h.Value.String()
			if !h.Priced {
				cell = "n/a"
			}
			row = append(row, cell)
		}
		table.Rows = append(table.Rows, row)
	}
	table.Rows = append(table.Rows,
		append([]string{md.Bold("Total")}, strs(r.Totals...)...),
		append([]string{md.Bold("Liquid")}, strs(r.Liquid...)...),
	)
	doc.Table(table)

	return footer(doc.String(),
		func(w io.Writer) bool { return truncated(w, r.Truncated) },
		func(w io.Writer) bool { return unpriced(w, names, r.Unpriced) },
	)
}
