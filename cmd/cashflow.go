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

type cashflowCmd struct {
	window       window
	prior, after int
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "display income and expenses per period" }
func (*cashflowCmd) Usage() string {
	return `alr cashflow [-from <date>] [-to <date>] [-period <period>] [-prior <n>] [-after <n>]

  Sums the realized income, the unrealized gains and the expenses of each
  period, with their average over -prior periods before and -after periods
  after.
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetFlags(f, date.Monthly)
	f.IntVar(&c.prior, "prior", 2, "Number of periods before each date in the average.")
	f.IntVar(&c.after, "after", 0, "Number of periods after each date in the average.")
}

func (c *cashflowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return usage(fmt.Errorf("no arguments expected"))
	}
	dates, err := c.window.set()
	if err != nil {
		return usage(err)
	}
	s, err := start(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	rep, err := s.engine.Cashflow(s.ctx, alere.CashflowRequest{
		Window:   dates,
		Currency: s.currency,
		Scenario: s.scenario,
		Ceiling:  occurrences,
		Prior:    c.prior,
		After:    c.after,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.CashflowMarkdown(rep) })
}
