package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/alere"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// unpriced writes the list of accounts holding shares without a quote.
func unpriced(w io.Writer, names map[alere.AccountID]string, ids []alere.AccountID) bool {
	if len(ids) == 0 {
		return false
	}
	fmt.Fprintf(w, "\n\n## Unpriced\n\nNo quote values these accounts, they count for nothing in the totals:\n\n")
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("account %d", id)
		}
		fmt.Fprintf(w, "- %s\n", name)
	}
	return true
}

// unconverted writes a warning about the splits a report had to skip.
func unconverted(w io.Writer, n int, currency string) bool {
	if n == 0 {
		return false
	}
	fmt.Fprintf(w, "\n\n> %d splits could not be converted to %s and were skipped.\n", n, currency)
	return true
}

// truncated writes a note when a window had too many dates.
func truncated(w io.Writer, yes bool) bool {
	if !yes {
		return false
	}
	fmt.Fprintf(w, "\n\n> The window was too long, only its most recent dates are shown.\n")
	return true
}

// footer appends the optional sections to a rendered document.
func footer(doc string, blocks ...func(io.Writer) bool) string {
	var b strings.Builder
	b.WriteString(doc)
	for _, block := range blocks {
		ConditionalBlock(&b, block)
	}
	return b.String()
}
