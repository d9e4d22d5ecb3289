package alere

import (
	"context"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

// Engine computes the reports. It is safe for concurrent use: every
// operation reads the store through its own Reader, and the recurrence
// expander is the only shared state.
type Engine struct {
	store Store
	exp   *recurrence.Expander
}

// NewEngine returns an Engine reading store. A nil expander is replaced by a
// default one.
func NewEngine(store Store, exp *recurrence.Expander) *Engine {
	if exp == nil {
		exp = recurrence.NewExpander(recurrence.DefaultCacheSize)
	}
	return &Engine{store: store, exp: exp}
}

// read runs fn with a Reader that is closed when fn returns. Any error is a
// DataAccessError, logged with params.
func (e *Engine) read(ctx context.Context, op string, params map[string]any, fn func(context.Context, Reader) error) error {
	log := logging.WithFields(logging.FromContext(ctx), params)
	r, err := e.store.Open(ctx)
	if err != nil {
		derr := &DataAccessError{Op: op, Params: params, Err: err}
		log.Error().Err(derr).Msg("cannot open store")
		return derr
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("closing reader")
		}
	}()
	if err := fn(ctx, r); err != nil {
		derr := &DataAccessError{Op: op, Params: params, Err: err}
		log.Error().Err(derr).Msg("query failed")
		return derr
	}
	return nil
}

// state is what a balance based report needs from the store.
type state struct {
	cat    *catalog
	events []Event
	prices PriceTable
}

// load reads the catalog, the events of req and the prices in currency.
func (e *Engine) load(ctx context.Context, r Reader, req CollectRequest, currency CommodityID) (*state, error) {
	cat, err := loadCatalog(ctx, r)
	if err != nil {
		return nil, err
	}
	events, err := collector{r: r, exp: e.exp}.collect(ctx, req)
	if err != nil {
		return nil, err
	}
	quotes, err := r.Prices(ctx, PriceQuery{Target: currency})
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	log.Debug().Int("events", len(events)).Int("quotes", len(quotes)).Msg("loaded")
	return &state{cat: cat, events: events, prices: PriceHistory(quotes, cat.commodities)}, nil
}

// RestrictToSplits narrows dates to the span of the events visible in
// scenario: concrete splits and occurrences within the bounds of dates. The
// result is contained in dates and is empty when there is no event.
func (e *Engine) RestrictToSplits(ctx context.Context, dates date.Set, scenario ScenarioID, ceiling recurrence.Occurrences) (date.Set, error) {
	ctx, log := logging.Operation(ctx, "restrict")
	var res date.Set
	err := e.read(ctx, "restrict", map[string]any{"dates": dates, "scenario": scenario}, func(ctx context.Context, r Reader) error {
		var err error
		res, err = e.restrict(ctx, r, dates, scenario, ceiling)
		return err
	})
	if err != nil {
		return date.Set{}, err
	}
	log.Debug().Stringer("dates", res).Msg("restricted")
	return res, nil
}

func (e *Engine) restrict(ctx context.Context, r Reader, dates date.Set, scenario ScenarioID, ceiling recurrence.Occurrences) (date.Set, error) {
	from, to := dates.Earliest(), dates.MostRecent()
	if ps := dates.Periods(); len(ps) > 0 {
		from = ps[0].From
	}
	span, found, err := r.SplitBounds(ctx, SplitQuery{From: from, To: to, Scenario: scenario})
	if err != nil {
		return date.Set{}, err
	}
	scheduled, err := r.Scheduled(ctx, scenario)
	if err != nil {
		return date.Set{}, err
	}
	for _, tx := range scheduled {
		for _, o := range e.exp.Expand(ctx, tx.Recurrence, tx.Timestamp, tx.LastOccurrence, to, ceiling) {
			if o.Date.Before(from) {
				continue
			}
			if !found {
				span, found = date.Range{From: o.Date, To: o.Date}, true
				continue
			}
			span.From, span.To = date.Earliest(span.From, o.Date), date.Latest(span.To, o.Date)
		}
	}
	if !found {
		return date.NewExplicit(), nil
	}
	return dates.Restrict(span.From, span.To), nil
}
