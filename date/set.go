package date

import (
	"fmt"
	"slices"
)

// MaxPoints caps the number of boundaries a regular set produces.
const MaxPoints = 366

// SetKind tells how a Set was built.
type SetKind int

const (
	// Regular sets hold one boundary per period of a window.
	Regular SetKind = iota
	// Explicit sets hold a caller supplied list of dates.
	Explicit
)

// Set is the ordered list of boundary dates a report is evaluated on.
//
// A Regular set is defined by a window and a Period: its boundaries are the
// ends of every period intersecting the window, at most MaxPoints of them
// (the most recent ones). An Explicit set wraps a list of dates. Both kinds
// are clamped to the [Min, Max] horizon and share the derived operations.
type Set struct {
	kind      SetKind
	window    Range
	period    Period
	dates     []Date
	truncated bool
}

// NewRegular returns the regular set of period ends covering [from, to].
func NewRegular(from, to Date, p Period) Set {
	w := NewRange(Clamp(from), Clamp(to))
	s := Set{kind: Regular, window: w, period: p}

	// walk backward from the end of the period containing 'to'.
	var rev []Date
	for end := w.To.EndOf(p); !end.Before(w.From); end = end.StartOf(p).Add(-1).EndOf(p) {
		if len(rev) == MaxPoints {
			s.truncated = true
			break
		}
		rev = append(rev, end)
	}
	slices.Reverse(rev)
	s.dates = rev
	return s
}

// NewExplicit returns a set over the given dates. Dates are clamped, sorted
// and de-duplicated. An empty set is valid.
func NewExplicit(dates ...Date) Set {
	ds := make([]Date, 0, len(dates))
	for _, d := range dates {
		ds = append(ds, Clamp(d))
	}
	slices.SortFunc(ds, Date.Compare)
	ds = slices.Compact(ds)
	s := Set{kind: Explicit, period: Daily, dates: ds}
	if len(ds) > 0 {
		s.window = Range{From: ds[0], To: ds[len(ds)-1]}
	} else {
		s.window = Range{From: Min, To: Max}
	}
	return s
}

// Period returns the granularity of a regular set (Daily for explicit sets).
func (s Set) Period() Period { return s.period }

// Window returns the requested window of the set.
func (s Set) Window() Range { return s.window }

// Dates returns the boundaries in ascending order.
func (s Set) Dates() []Date { return slices.Clone(s.dates) }

// Len returns the number of boundaries.
func (s Set) Len() int { return len(s.dates) }

// Truncated reports whether MaxPoints discarded older boundaries.
func (s Set) Truncated() bool { return s.truncated }

// Earliest returns the first boundary, or Min for an empty set.
func (s Set) Earliest() Date {
	if len(s.dates) == 0 {
		return Min
	}
	return s.dates[0]
}

// MostRecent returns the last boundary, or Max for an empty set.
func (s Set) MostRecent() Date {
	if len(s.dates) == 0 {
		return Max
	}
	return s.dates[len(s.dates)-1]
}

// Bounds returns [Earliest, MostRecent].
func (s Set) Bounds() Range { return Range{From: s.Earliest(), To: s.MostRecent()} }

// UnboundedStart returns the explicit set [Min, MostRecent] so that a
// balance computation sees all the history before the window.
func (s Set) UnboundedStart() Set { return NewExplicit(Min, s.MostRecent()) }

// Extend widens the set by 'prior' periods before and 'after' periods after.
// A period counts as 1, 7, 30, 91 or 365 days, explicit sets count days.
func (s Set) Extend(prior, after int) Set {
	if prior < 0 {
		prior = 0
	}
	if after < 0 {
		after = 0
	}
	n := s.period.Days()
	switch s.kind {
	case Regular:
		return NewRegular(s.window.From.Add(-prior*n), s.window.To.Add(after*n), s.period)
	default:
		if len(s.dates) == 0 {
			return s
		}
		ds := s.Dates()
		if prior > 0 {
			ds = append(ds, s.Earliest().Add(-prior))
		}
		if after > 0 {
			ds = append(ds, s.MostRecent().Add(after))
		}
		return NewExplicit(ds...)
	}
}

// Restrict narrows the set to [min, max]. A regular set keeps the
// boundaries of every period intersecting [min, max]. The result is always
// contained in the receiver's Bounds, and may be empty.
func (s Set) Restrict(min, max Date) Set {
	b := s.Bounds()
	switch s.kind {
	case Regular:
		lo, hi := Latest(b.From, min.EndOf(s.period)), Earliest(b.To, max.EndOf(s.period))
		if lo.After(hi) {
			return NewExplicit()
		}
		r := NewRegular(Latest(s.window.From, lo.StartOf(s.period)), hi, s.period)
		r.dates = slices.DeleteFunc(r.dates, func(d Date) bool { return !b.Contains(d) })
		return r
	default:
		lo, hi := Latest(b.From, min), Earliest(b.To, max)
		var ds []Date
		for _, d := range s.dates {
			if !d.Before(lo) && !d.After(hi) {
				ds = append(ds, d)
			}
		}
		return NewExplicit(ds...)
	}
}

// Periods returns, for each boundary, the range of dates it closes.
//
// For regular sets it is the whole period ending on the boundary. For
// explicit sets it is the range since the previous boundary (exclusive), the
// first boundary closing only itself.
func (s Set) Periods() []Range {
	rs := make([]Range, 0, len(s.dates))
	for i, d := range s.dates {
		switch {
		case s.kind == Regular:
			rs = append(rs, Range{From: d.StartOf(s.period), To: d})
		case i == 0:
			rs = append(rs, Range{From: d, To: d})
		default:
			rs = append(rs, Range{From: s.dates[i-1].Add(1), To: d})
		}
	}
	return rs
}

func (s Set) String() string {
	if s.kind == Regular {
		return fmt.Sprintf("%s %s (%d dates)", s.period, s.window, len(s.dates))
	}
	return fmt.Sprintf("explicit %v", s.dates)
}
