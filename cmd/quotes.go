package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/alere"
	"github.com/etnz/alere/date"
	"github.com/etnz/alere/renderer"
)

type quotesCmd struct {
	window      window
	commodities string
	accounts    string
	today       string
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "display quotes and the performance of investments" }
func (*quotesCmd) Usage() string {
	return `alr quotes [-from <date>] [-to <date>] [-commodities <ticker>,...] [-accounts <account>,...]

  Lists the quotes of the commodities over the window, and for every trading
  account its position, its gains and its return on investment.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetRangeFlags(f)
	f.StringVar(&c.commodities, "commodities", "", "Comma separated tickers, codes or ids. Defaults to all.")
	f.StringVar(&c.accounts, "accounts", "", "Comma separated account names or ids. Defaults to all trading accounts.")
	f.StringVar(&c.today, "today", "", "Date the annualized returns are computed on. Defaults to today.")
}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return usage(fmt.Errorf("no arguments expected"))
	}
	from, to, err := c.window.bounds()
	if err != nil {
		return usage(err)
	}
	var today date.Date
	if c.today != "" {
		if today, err = date.Parse(c.today); err != nil {
			return usage(fmt.Errorf("invalid -today: %w", err))
		}
	}
	s, err := start(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	commodities, err := s.lookup.commodityIDs(c.commodities)
	if err != nil {
		return usage(err)
	}
	accounts, err := s.lookup.accountIDs(c.accounts)
	if err != nil {
		return usage(err)
	}
	rep, err := s.engine.Quotes(s.ctx, alere.QuotesRequest{
		From:        from,
		To:          to,
		Currency:    s.currency,
		Commodities: commodities,
		Accounts:    accounts,
		Today:       today,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.QuotesMarkdown(rep) })
}
