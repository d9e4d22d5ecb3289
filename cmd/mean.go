package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/alere"
	"github.com/etnz/alere/renderer"
)

type meanCmd struct {
	window       window
	prior, after int
	unrealized   bool
}

func (*meanCmd) Name() string     { return "mean" }
func (*meanCmd) Synopsis() string { return "display monthly income, expenses and their averages" }
func (*meanCmd) Usage() string {
	return `alr mean [-from <date>] [-to <date>] [-prior <n>] [-after <n>] [-unrealized]

  Displays, for each month, the income, the expenses and the change of net
  worth of the actuals, with their average over -prior months before and
  -after months after.
`
}

func (c *meanCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetRangeFlags(f)
	f.IntVar(&c.prior, "prior", 2, "Number of months before each month in the average.")
	f.IntVar(&c.after, "after", 0, "Number of months after each month in the average.")
	f.BoolVar(&c.unrealized, "unrealized", false, "Count unrealized gains as income.")
}

func (c *meanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rep, err := s.engine.Mean(s.ctx, alere.MeanRequest{
		From:       from,
		To:         to,
		Currency:   s.currency,
		Prior:      c.prior,
		After:      c.after,
		Unrealized: c.unrealized,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.MeanMarkdown(rep) })
}
