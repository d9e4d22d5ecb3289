// Package alere computes the reports of a personal bookkeeping ledger.
//
// The ledger is a read-only Store of double-entry transactions, some of
// them scheduled with a recurrence rule. For each request, the Engine:
//   - collects the splits visible in a scenario over a window, materializing
//     the occurrences of recurring transactions up to a ceiling;
//   - folds them into per account balance intervals that partition time;
//   - values the intervals in a currency by intersecting them with the
//     validity intervals of price quotes;
//   - aggregates the result into ledgers, net worth, cashflow, metrics and
//     returns on investment, optionally smoothed by rolling averages.
//
// Nothing is cached between requests except compiled recurrence rules.
package alere
