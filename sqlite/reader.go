package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/etnz/alere"
	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/sqlplan"
)

// chunk bounds the length of IN lists.
const chunk = 500

type reader struct {
	conn *sql.Conn
}

func (r *reader) Close() error { return r.conn.Close() }

// query renders p, runs it and calls scan on every row.
func (r *reader) query(ctx context.Context, name string, p *sqlplan.Plan, scan func(*sql.Rows) error) error {
	query, args, err := p.Render()
	if err != nil {
		return fmt.Errorf("failed to build query %s: %w", name, err)
	}
	log := logging.FromContext(ctx)
	log.Debug().Str("query", name).Str("sql", query).Interface("args", args).Msg("sql")

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

func (r *reader) AccountKinds(ctx context.Context) ([]alere.AccountKind, error) {
	var res []alere.AccountKind
	p := sqlplan.New().Select(sqlplan.Q(`
		SELECT id, name, category, is_networth, is_passive_income, is_work_income,
		       is_unrealized, is_misc_tax, is_income_tax, is_trading, is_stock
		FROM alr_account_kinds ORDER BY id`))
	err := r.query(ctx, "account kinds", p, func(rows *sql.Rows) error {
		var k alere.AccountKind
		err := rows.Scan(&k.ID, &k.Name, &k.Category, &k.IsNetworth, &k.IsPassiveIncome, &k.IsWorkIncome,
			&k.IsUnrealized, &k.IsMiscTax, &k.IsIncomeTax, &k.IsTrading, &k.IsStock)
		res = append(res, k)
		return err
	})
	return res, err
}

func (r *reader) Accounts(ctx context.Context) ([]alere.Account, error) {
	var res []alere.Account
	p := sqlplan.New().Select(sqlplan.Q(`
		SELECT id, name, commodity_id, commodity_scu, kind_id, COALESCE(parent_id, 0), closed
		FROM alr_accounts ORDER BY id`))
	err := r.query(ctx, "accounts", p, func(rows *sql.Rows) error {
		var a alere.Account
		err := rows.Scan(&a.ID, &a.Name, &a.Commodity, &a.SCU, &a.Kind, &a.Parent, &a.Closed)
		res = append(res, a)
		return err
	})
	return res, err
}

// currencyKind is the alr_commodities.kind of currencies.
const currencyKind = "C"

func (r *reader) Commodities(ctx context.Context) ([]alere.Commodity, error) {
	var res []alere.Commodity
	p := sqlplan.New().Select(sqlplan.Q(`
		SELECT c.id, c.name, COALESCE(c.quote_symbol, ''), COALESCE(c.iso_code, ''), c.kind,
		       c.price_scale, COALESCE(ps.name, '')
		FROM alr_commodities c LEFT JOIN alr_price_sources ps ON ps.id = c.quote_source_id
		ORDER BY c.id`))
	err := r.query(ctx, "commodities", p, func(rows *sql.Rows) error {
		var (
			c    alere.Commodity
			kind string
		)
		err := rows.Scan(&c.ID, &c.Name, &c.Symbol, &c.ISOCode, &kind, &c.PriceScale, &c.QuoteSource)
		c.IsCurrency = kind == currencyKind
		res = append(res, c)
		return err
	})
	return res, err
}

func (r *reader) Payees(ctx context.Context) ([]alere.Payee, error) {
	var res []alere.Payee
	p := sqlplan.New().Select(sqlplan.Q(`SELECT id, name FROM alr_payees ORDER BY id`))
	err := r.query(ctx, "payees", p, func(rows *sql.Rows) error {
		var v alere.Payee
		err := rows.Scan(&v.ID, &v.Name)
		res = append(res, v)
		return err
	})
	return res, err
}

func (r *reader) Scenarios(ctx context.Context) ([]alere.Scenario, error) {
	var res []alere.Scenario
	p := sqlplan.New().Select(sqlplan.Q(`SELECT id, name FROM alr_scenarios ORDER BY id`))
	err := r.query(ctx, "scenarios", p, func(rows *sql.Rows) error {
		var v alere.Scenario
		err := rows.Scan(&v.ID, &v.Name)
		res = append(res, v)
		return err
	})
	return res, err
}

func (r *reader) Prices(ctx context.Context, q alere.PriceQuery) ([]alere.PriceQuote, error) {
	var conds []sqlplan.Fragment
	if q.Target != 0 {
		lit, err := sqlplan.ID(q.Target)
		if err != nil {
			return nil, err
		}
		conds = append(conds, sqlplan.Q("target_id = "+lit))
	}
	if len(q.Origins) > 0 {
		lits, err := sqlplan.IDs(q.Origins)
		if err != nil {
			return nil, err
		}
		conds = append(conds, sqlplan.Q("origin_id IN ("+lits+")"))
	}
	where := sqlplan.And(conds...)
	p := sqlplan.New().
		With("quotes", sqlplan.Q(`
			SELECT id, origin_id, target_id, date(date) AS day, scaled_price
			FROM alr_prices WHERE `+where.SQL, where.Args...)).
		Select(sqlplan.Q(`SELECT origin_id, target_id, day, scaled_price FROM quotes ORDER BY day, id`), "quotes")

	var res []alere.PriceQuote
	err := r.query(ctx, "prices", p, func(rows *sql.Rows) error {
		var (
			v   alere.PriceQuote
			day string
		)
		if err := rows.Scan(&v.Origin, &v.Target, &day, &v.ScaledPrice); err != nil {
			return err
		}
		var err error
		v.Date, err = date.Parse(day)
		res = append(res, v)
		return err
	})
	return res, err
}

// visible is the stage listing the transactions of a scenario, recurring
// or not.
func visible(scenario alere.ScenarioID, recurring bool) (sqlplan.Fragment, error) {
	lit, err := sqlplan.ID(scenario)
	if err != nil {
		return sqlplan.Fragment{}, err
	}
	rule := "TRIM(COALESCE(scheduled, '')) = ''"
	if recurring {
		rule = "TRIM(COALESCE(scheduled, '')) <> ''"
	}
	return sqlplan.Q(fmt.Sprintf(`
		SELECT id, date(timestamp) AS day, COALESCE(memo, '') AS memo,
		       COALESCE(check_number, '') AS check_number, scenario_id,
		       COALESCE(scheduled, '') AS scheduled,
		       COALESCE(date(last_occurrence), '') AS last_occurrence
		FROM alr_transactions
		WHERE %s AND scenario_id IN (%d, %s)`, rule, alere.NoScenario, lit)), nil
}

const splitColumns = `s.id, s.transaction_id, s.account_id, s.scaled_qty, s.scaled_value,
	s.value_commodity_id, date(s.post_date) AS post_date, s.reconcile,
	COALESCE(s.payee_id, 0) AS payee_id`

// splits returns the plan stages selecting the splits matching q, in a
// stage named "splits".
func splits(q alere.SplitQuery) (*sqlplan.Plan, error) {
	tx, err := visible(q.Scenario, false)
	if err != nil {
		return nil, err
	}
	conds := []sqlplan.Fragment{
		sqlplan.Q("date(s.post_date) BETWEEN ? AND ?", q.From.String(), q.To.String()),
	}
	if len(q.Accounts) > 0 {
		lits, err := sqlplan.IDs(q.Accounts)
		if err != nil {
			return nil, err
		}
		conds = append(conds, sqlplan.Q("s.account_id IN ("+lits+")"))
	}
	where := sqlplan.And(conds...)
	return sqlplan.New().
		With("visible", tx).
		With("splits", sqlplan.Q(`
			SELECT `+splitColumns+`
			FROM alr_splits s JOIN visible t ON s.transaction_id = t.id
			WHERE `+where.SQL, where.Args...), "visible"), nil
}

func scanSplit(rows *sql.Rows, dest ...any) (alere.Split, error) {
	var (
		s    alere.Split
		post string
	)
	err := rows.Scan(append(dest, &s.ID, &s.Transaction, &s.Account, &s.ScaledQty, &s.ScaledValue,
		&s.ValueCommodity, &post, &s.Reconcile, &s.Payee)...)
	if err != nil {
		return s, err
	}
	s.PostDate, err = date.Parse(post)
	return s, err
}

func (r *reader) Splits(ctx context.Context, q alere.SplitQuery) ([]alere.Split, error) {
	p, err := splits(q)
	if err != nil {
		return nil, err
	}
	p.Select(sqlplan.Q(`SELECT * FROM splits ORDER BY post_date, id`), "splits")
	var res []alere.Split
	err = r.query(ctx, "splits", p, func(rows *sql.Rows) error {
		s, err := scanSplit(rows)
		res = append(res, s)
		return err
	})
	return res, err
}

func (r *reader) SplitBounds(ctx context.Context, q alere.SplitQuery) (date.Range, bool, error) {
	p, err := splits(q)
	if err != nil {
		return date.Range{}, false, err
	}
	p.Select(sqlplan.Q(`SELECT min(post_date), max(post_date) FROM splits`), "splits")
	var lo, hi sql.NullString
	err = r.query(ctx, "split bounds", p, func(rows *sql.Rows) error {
		return rows.Scan(&lo, &hi)
	})
	if err != nil || !lo.Valid || !hi.Valid {
		return date.Range{}, false, err
	}
	from, err := date.Parse(lo.String)
	if err != nil {
		return date.Range{}, false, err
	}
	to, err := date.Parse(hi.String)
	if err != nil {
		return date.Range{}, false, err
	}
	return date.Range{From: from, To: to}, true, nil
}

// header scans the columns of the visible stage.
type header struct {
	tx        alere.Transaction
	day, last string
}

func (h *header) dest() []any {
	return []any{&h.tx.ID, &h.day, &h.tx.Memo, &h.tx.CheckNumber, &h.tx.Scenario, &h.tx.Recurrence, &h.last}
}

func (h *header) transaction() (alere.Transaction, error) {
	var err error
	if h.tx.Timestamp, err = date.Parse(h.day); err != nil {
		return h.tx, err
	}
	if strings.TrimSpace(h.last) != "" {
		h.tx.LastOccurrence, err = date.Parse(h.last)
	}
	return h.tx, err
}

func (r *reader) Scheduled(ctx context.Context, scenario alere.ScenarioID) ([]alere.Transaction, error) {
	tx, err := visible(scenario, true)
	if err != nil {
		return nil, err
	}
	p := sqlplan.New().
		With("scheduled", tx).
		Select(sqlplan.Q(`
			SELECT t.*, `+splitColumns+`
			FROM scheduled t JOIN alr_splits s ON s.transaction_id = t.id
			ORDER BY t.id, s.id`), "scheduled")

	var res []alere.Transaction
	err = r.query(ctx, "scheduled", p, func(rows *sql.Rows) error {
		var h header
		s, err := scanSplit(rows, h.dest()...)
		if err != nil {
			return err
		}
		if n := len(res); n > 0 && res[n-1].ID == h.tx.ID {
			res[n-1].Splits = append(res[n-1].Splits, s)
			return nil
		}
		t, err := h.transaction()
		t.Splits = []alere.Split{s}
		res = append(res, t)
		return err
	})
	return res, err
}

func (r *reader) Transactions(ctx context.Context, ids []alere.TransactionID) ([]alere.Transaction, error) {
	var res []alere.Transaction
	for len(ids) > 0 {
		n := min(len(ids), chunk)
		lits, err := sqlplan.IDs(ids[:n])
		if err != nil {
			return nil, err
		}
		ids = ids[n:]
		p := sqlplan.New().Select(sqlplan.Q(`
			SELECT id, date(timestamp), COALESCE(memo, ''), COALESCE(check_number, ''), scenario_id,
			       COALESCE(scheduled, ''), COALESCE(date(last_occurrence), '')
			FROM alr_transactions WHERE id IN (` + lits + `) ORDER BY id`))
		err = r.query(ctx, "transactions", p, func(rows *sql.Rows) error {
			var h header
			if err := rows.Scan(h.dest()...); err != nil {
				return err
			}
			t, err := h.transaction()
			res = append(res, t)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
