package alere

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// Event is a split as seen by a report: either a concrete split of a one-off
// transaction, or a synthetic split materializing one occurrence of a
// recurring transaction.
type Event struct {
	Split                   // PostDate is the occurrence date of synthetic splits
	Timestamp  date.Date    // transaction timestamp, occurrence date of synthetic splits
	Occurrence int          // 1 for concrete splits
	Recurring  bool         // true for synthetic splits
	Tx         *Transaction // header, without splits
}

// CollectRequest selects the events of one request.
type CollectRequest struct {
	From, To date.Date // post date, both included
	Scenario ScenarioID
	Ceiling  recurrence.Occurrences // per recurring transaction
	// PendingAlways keeps the next occurrence of every recurring transaction
	// whatever its date.
	PendingAlways bool
}

// collector merges concrete and synthetic splits into one event stream.
type collector struct {
	r   Reader
	exp *recurrence.Expander
}

func (c collector) collect(ctx context.Context, req CollectRequest) ([]Event, error) {
	req.From, req.To = date.Clamp(req.From), date.Clamp(req.To)
	splits, err := c.r.Splits(ctx, SplitQuery{From: req.From, To: req.To, Scenario: req.Scenario})
	if err != nil {
		return nil, fmt.Errorf("reading splits in %s: %w", date.Range{From: req.From, To: req.To}, err)
	}
	var ids []TransactionID
	for _, s := range splits {
		ids = append(ids, s.Transaction)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	headers := make(map[TransactionID]*Transaction, len(ids))
	if len(ids) > 0 {
		txs, err := c.r.Transactions(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("reading %d transactions: %w", len(ids), err)
		}
		for i := range txs {
			headers[txs[i].ID] = &txs[i]
		}
	}

	events := make([]Event, 0, len(splits))
	for _, s := range splits {
		tx, ok := headers[s.Transaction]
		if !ok {
			// the store returned a split without its transaction.
			tx = &Transaction{ID: s.Transaction, Timestamp: s.PostDate}
		}
		events = append(events, Event{Split: s, Timestamp: tx.Timestamp, Occurrence: 1, Tx: tx})
	}

	scheduled, err := c.r.Scheduled(ctx, req.Scenario)
	if err != nil {
		return nil, fmt.Errorf("reading scheduled transactions: %w", err)
	}
	for i := range scheduled {
		events = append(events, c.occurrences(ctx, &scheduled[i], req)...)
	}
	SortEvents(events)
	return events, nil
}

// occurrences materializes the visible occurrences of a recurring transaction.
func (c collector) occurrences(ctx context.Context, tx *Transaction, req CollectRequest) []Event {
	var occ []recurrence.Occurrence
	for _, o := range c.exp.Expand(ctx, tx.Recurrence, tx.Timestamp, tx.LastOccurrence, req.To, req.Ceiling) {
		if !o.Date.Before(req.From) {
			occ = append(occ, o)
		}
	}
	if req.PendingAlways && (len(occ) == 0 || occ[0].Index != 1) {
		next, ok, err := c.exp.Next(tx.Recurrence, tx.Timestamp, tx.LastOccurrence)
		if err != nil {
			if req.Ceiling == recurrence.None {
				// otherwise Expand has already reported it.
				log := logging.FromContext(ctx)
				log.Warn().Err(err).Int64("transaction", int64(tx.ID)).Msg("recurrence expansion skipped")
			}
			return nil
		}
		if ok {
			occ = slices.Insert(occ, 0, recurrence.Occurrence{Index: 1, Date: next})
		}
	}

	header := *tx
	header.Splits = nil
	var events []Event
	for _, o := range occ {
		for _, s := range tx.Splits {
			s.PostDate = o.Date
			events = append(events, Event{Split: s, Timestamp: o.Date, Occurrence: o.Index, Recurring: true, Tx: &header})
		}
	}
	return events
}

// SortEvents orders events by timestamp, transaction, occurrence, post date
// and split.
func SortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Transaction, b.Transaction); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Occurrence, b.Occurrence); c != 0 {
			return c
		}
		if c := a.PostDate.Compare(b.PostDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
