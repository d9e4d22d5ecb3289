// Package recurrence expands the recurrence rules of scheduled transactions
// into occurrence dates.
//
// Rules use the RFC 5545 RRULE grammar ("FREQ=MONTHLY;BYMONTHDAY=1"). A rule is
// compiled against the transaction's anchor date, and compiled rules are kept
// in a bounded least-recently-used cache owned by the Expander.
package recurrence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/teambition/rrule-go"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
)

// DefaultCacheSize is the number of compiled rules an Expander keeps.
const DefaultCacheSize = 120

// MaxSteps bounds the iterations of one expansion, occurrences skipped
// before the last confirmed one included.
const MaxSteps = 200_000

// ErrSubDaily is the cause of a RuleError for rules repeating more than once
// a day: occurrences are whole days.
var ErrSubDaily = errors.New("frequency below a day")

// RuleError reports a rule that could not be compiled.
type RuleError struct {
	Rule   string
	Anchor date.Date
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule %q anchored on %s: %v", e.Rule, e.Anchor, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

type key struct {
	anchor date.Date
	rule   string
}

// Expander computes occurrences. It is safe for concurrent use.
type Expander struct {
	cache *lru.Cache[key, *rrule.RRule]
}

// NewExpander returns an Expander caching up to size compiled rules
// (DefaultCacheSize if size <= 0).
func NewExpander(size int) *Expander {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[key, *rrule.RRule](size)
	if err != nil {
		// only possible with a non positive size.
		panic(err)
	}
	return &Expander{cache: cache}
}

// Len returns the number of compiled rules in the cache.
func (e *Expander) Len() int { return e.cache.Len() }

func (e *Expander) compile(rule string, anchor date.Date) (*rrule.RRule, error) {
	k := key{anchor: anchor, rule: rule}
	if r, ok := e.cache.Get(k); ok {
		return r, nil
	}
	opt, err := rrule.StrToROption(strings.TrimPrefix(rule, "RRULE:"))
	if err != nil {
		return nil, &RuleError{Rule: rule, Anchor: anchor, Err: err}
	}
	if opt.Freq > rrule.DAILY {
		return nil, &RuleError{Rule: rule, Anchor: anchor, Err: ErrSubDaily}
	}
	opt.Dtstart = anchor.Time()
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, &RuleError{Rule: rule, Anchor: anchor, Err: err}
	}
	// failures are never cached, a later fix of the rule text is a new key anyway.
	e.cache.Add(k, r)
	return r, nil
}

// Next returns the first occurrence of rule strictly after previous, or the
// first occurrence on or after anchor when previous is the zero date.
//
// An empty rule describes a one-off transaction: Next returns the anchor when
// previous is zero and nothing otherwise.
func (e *Expander) Next(rule string, anchor, previous date.Date) (date.Date, bool, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		if previous.IsZero() {
			return anchor, true, nil
		}
		return date.Date{}, false, nil
	}
	r, err := e.compile(rule, anchor)
	if err != nil {
		return date.Date{}, false, err
	}
	var next = r.After(anchor.Time(), true)
	if !previous.IsZero() {
		next = r.After(previous.Time(), false)
	}
	if next.IsZero() {
		return date.Date{}, false, nil
	}
	return date.FromTime(next.UTC()), true, nil
}

// Occurrence is one materialization of a recurring transaction.
type Occurrence struct {
	Index int       // 1 is the next unconfirmed occurrence
	Date  date.Date // computed post date
}

// Expand lists the occurrences following 'last' (the last confirmed
// occurrence, zero if none) up to 'end' included, at most 'ceiling' of them.
// Each occurrence is the Next one after its predecessor.
//
// A malformed rule is logged through the context logger and yields nothing.
// The walk stops after MaxSteps iterations of the rule.
func (e *Expander) Expand(ctx context.Context, rule string, anchor, last, end date.Date, ceiling Occurrences) []Occurrence {
	if ceiling <= None {
		return nil
	}
	rule = strings.TrimSpace(rule)
	if rule == "" {
		if d, ok, _ := e.Next(rule, anchor, last); ok && !d.After(end) {
			return []Occurrence{{Index: 1, Date: d}}
		}
		return nil
	}
	r, err := e.compile(rule, anchor)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Str("rule", rule).Stringer("anchor", anchor).Msg("recurrence expansion skipped")
		return nil
	}

	// A single iterator walks the rule instead of calling Next repeatedly,
	// which would restart from the anchor each time.
	var occ []Occurrence
	next := r.Iterator()
	for steps := 0; len(occ) < int(ceiling); steps++ {
		if steps == MaxSteps {
			log := logging.FromContext(ctx)
			log.Warn().Str("rule", rule).Stringer("anchor", anchor).Int("occurrences", len(occ)).Msg("recurrence expansion stopped early")
			break
		}
		t, ok := next()
		if !ok {
			break
		}
		d := date.FromTime(t.UTC())
		if !last.IsZero() && !d.After(last) {
			continue
		}
		if d.After(end) {
			break
		}
		occ = append(occ, Occurrence{Index: len(occ) + 1, Date: d})
		last = d
	}
	return occ
}
