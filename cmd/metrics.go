package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/alere"
	"github.com/etnz/alere/renderer"
)

type metricsCmd struct {
	window window
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "summarize income, expenses and net worth" }
func (*metricsCmd) Usage() string {
	return `alr metrics [-from <date>] [-to <date>]

  Summarizes the income, expenses and taxes of [from, to), the saving rate,
  and the net worth and liquid assets on both dates.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) { c.window.SetRangeFlags(f) }

func (c *metricsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rep, err := s.engine.Metrics(s.ctx, alere.MetricsRequest{
		From:     from,
		To:       to,
		Currency: s.currency,
		Scenario: s.scenario,
		Ceiling:  occurrences,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.MetricsMarkdown(rep) })
}
