package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/alere"
	"github.com/etnz/alere/renderer"
)

type incexpCmd struct {
	window          window
	income, expense bool
}

func (*incexpCmd) Name() string     { return "incexp" }
func (*incexpCmd) Synopsis() string { return "display the total of each income and expense account" }
func (*incexpCmd) Usage() string {
	return `alr incexp [-from <date>] [-to <date>] [-income=false] [-expense=false]

  Totals the flows through each income and expense account over the window,
  largest income first. Income is positive, expenses negative.
`
}

func (c *incexpCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetRangeFlags(f)
	f.BoolVar(&c.income, "income", true, "Include income accounts.")
	f.BoolVar(&c.expense, "expense", true, "Include expense accounts.")
}

func (c *incexpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rep, err := s.engine.IncomeExpense(s.ctx, alere.IncomeExpenseRequest{
		From:     from,
		To:       to,
		Currency: s.currency,
		Scenario: s.scenario,
		Ceiling:  occurrences,
		Income:   c.income,
		Expense:  c.expense,
	})
	if err != nil {
		return fail(err)
	}
	return report(rep, func() string { return renderer.IncomeExpenseMarkdown(rep) })
}
