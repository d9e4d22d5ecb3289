package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/alere"
	"github.com/etnz/alere/renderer"
)

type ledgerCmd struct {
	window   window
	accounts string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "list transactions" }
func (*ledgerCmd) Usage() string {
	return `alr ledger [-from <date>] [-to <date>] [-accounts <account>,...]

  Lists the transactions of the window with their splits, scheduled
  occurrences included. With a single account, its running balance is
  shown.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetRangeFlags(f)
	f.StringVar(&c.accounts, "accounts", "", "Comma separated account names or ids. Defaults to all.")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return usage(fmt.Errorf("no arguments expected"))
	}
	from, to, err := c.window.bounds()
	if err != nil {
		return usage(err)
	}
	s, err := start(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	accounts, err := s.lookup.accountIDs(c.accounts)
	if err != nil {
		return usage(err)
	}
	rep, err := s.engine.Ledger(s.ctx, alere.LedgerRequest{
		From:     from,
		To:       to,
		Accounts: accounts,
		Scenario: s.scenario,
		Ceiling:  occurrences,
		Currency: s.currency,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.LedgerMarkdown(rep, len(accounts) == 1) })
}
