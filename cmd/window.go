package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/alere/date"
)

// window holds the flags selecting the dates a report is evaluated on.
type window struct {
	from, to string
	period   string
	dates    string
	today    date.Date // zero for date.Today()
}

// SetRangeFlags registers -from and -to.
func (w *window) SetRangeFlags(f *flag.FlagSet) {
	f.StringVar(&w.from, "from", "", "First date of the window. Defaults to the start of the year of -to.")
	f.StringVar(&w.to, "to", "", "Last date of the window. Defaults to today.")
}

// SetFlags registers the flags of a set of dates.
func (w *window) SetFlags(f *flag.FlagSet, period date.Period) {
	w.SetRangeFlags(f)
	f.StringVar(&w.period, "period", period.String(), "Period between two dates (day, week, month, quarter, year).")
	f.StringVar(&w.dates, "dates", "", "Comma separated list of dates. Overrides the window.")
}

func (w *window) now() date.Date {
	if w.today.IsZero() {
		return date.Today()
	}
	return w.today
}

// bounds returns the window [from, to].
func (w *window) bounds() (from, to date.Date, err error) {
	to = w.now()
	if w.to != "" {
		if to, err = date.Parse(w.to); err != nil {
			return from, to, fmt.Errorf("invalid -to: %w", err)
		}
	}
	from = to.StartOf(date.Yearly)
	if w.from != "" {
		if from, err = date.Parse(w.from); err != nil {
			return from, to, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if from.After(to) {
		return from, to, fmt.Errorf("-from %s is after -to %s", from, to)
	}
	return from, to, nil
}

// set returns the dates of the window: the explicit -dates, or one per
// period.
func (w *window) set() (date.Set, error) {
	if strings.TrimSpace(w.dates) != "" {
		var ds []date.Date
		for _, s := range strings.Split(w.dates, ",") {
			d, err := date.Parse(strings.TrimSpace(s))
			if err != nil {
				return date.Set{}, fmt.Errorf("invalid -dates: %w", err)
			}
			ds = append(ds, d)
		}
		return date.NewExplicit(ds...), nil
	}
	p, err := date.ParsePeriod(w.period)
	if err != nil {
		return date.Set{}, err
	}
	from, to, err := w.bounds()
	if err != nil {
		return date.Set{}, err
	}
	return date.NewRegular(from, to, p), nil
}
