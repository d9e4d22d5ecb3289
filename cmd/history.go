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

type historyCmd struct {
	window       window
	prior, after int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the evolution of net worth" }
func (*historyCmd) Usage() string {
	return `alr history [-from <date>] [-to <date>] [-period <period>] [-prior <n>] [-after <n>]

  Displays the net worth at the end of each period, its change since the
  previous period and the average change over -prior periods before and
  -after periods after.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetFlags(f, date.Monthly)
	f.IntVar(&c.prior, "prior", 2, "Number of periods before each date in the average.")
	f.IntVar(&c.after, "after", 0, "Number of periods after each date in the average.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rep, err := s.engine.NetWorthHistory(s.ctx, alere.HistoryRequest{
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
	return report(rep, func() string { return renderer.HistoryMarkdown(rep) })
}
