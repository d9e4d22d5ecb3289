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

type networthCmd struct {
	window window
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display the value of every account" }
func (*networthCmd) Usage() string {
	return `alr networth [-from <date>] [-to <date>] [-period <period>] [-dates <date>,...]

  Values every account at the end of each period of the window, or at the
  explicit -dates, in the reporting currency. Accounts holding shares
  without a quote are listed apart.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetFlags(f, date.Monthly)
}

func (c *networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rep, err := s.engine.NetWorth(s.ctx, alere.NetWorthRequest{
		Dates:    dates,
		Currency: s.currency,
		Scenario: s.scenario,
		Ceiling:  occurrences,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.NetWorthMarkdown(rep) })
}
