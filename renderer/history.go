package renderer

import (
	"bytes"
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

// HistoryMarkdown renders the net worth at the end of each period, its
// change and the rolling average of the change.
func HistoryMarkdown(r *alere.NetWorthHistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Net worth history in %s", r.Currency))

	table := columns("Date", "Net worth", "Change", "Average change")
	for _, p := range r.Points {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			p.NetWorth.String(),
			p.Delta.SignedString(),
			p.Average.SignedString(),
		})
	}
	doc.Table(table)

	return footer(doc.String(),
		func(w io.Writer) bool { return truncated(w, r.Truncated) },
		func(w io.Writer) bool { return unpriced(w, nil, r.Unpriced) },
	)
}
