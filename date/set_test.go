package date

import (
	"slices"
	"testing"
	"time"
)

func TestNewRegular(t *testing.T) {
	testCases := []struct {
		name   string
		from   Date
		to     Date
		period Period
		want   []Date
	}{
		{
			name: "monthly", from: New(2023, 1, 1), to: New(2023, 3, 15), period: Monthly,
			want: []Date{New(2023, 1, 31), New(2023, 2, 28), New(2023, 3, 31)},
		},
		{
			name: "monthly starting mid month", from: New(2023, 1, 15), to: New(2023, 2, 1), period: Monthly,
			want: []Date{New(2023, 1, 31), New(2023, 2, 28)},
		},
		{
			name: "yearly", from: New(2021, 6, 1), to: New(2023, 1, 1), period: Yearly,
			want: []Date{New(2021, 12, 31), New(2022, 12, 31), New(2023, 12, 31)},
		},
		{
			name: "daily", from: New(2023, 1, 30), to: New(2023, 2, 1), period: Daily,
			want: []Date{New(2023, 1, 30), New(2023, 1, 31), New(2023, 2, 1)},
		},
		{
			name: "swapped bounds", from: New(2023, 2, 1), to: New(2023, 1, 30), period: Daily,
			want: []Date{New(2023, 1, 30), New(2023, 1, 31), New(2023, 2, 1)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewRegular(tc.from, tc.to, tc.period)
			if got := s.Dates(); !slices.Equal(got, tc.want) {
				t.Errorf("NewRegular(%v, %v, %v).Dates() = %v, want %v", tc.from, tc.to, tc.period, got, tc.want)
			}
			if s.Truncated() {
				t.Errorf("Truncated() = true, want false")
			}
		})
	}
}

func TestNewRegular_TruncatesToMostRecent(t *testing.T) {
	from, to := New(2000, 1, 1), New(2001, 12, 31)
	s := NewRegular(from, to, Daily)
	if s.Len() != MaxPoints {
		t.Fatalf("Len() = %d, want %d", s.Len(), MaxPoints)
	}
	if !s.Truncated() {
		t.Errorf("Truncated() = false, want true")
	}
	if got := s.MostRecent(); got != to {
		t.Errorf("MostRecent() = %v, want %v", got, to)
	}
	if got, want := s.Earliest(), to.Add(-(MaxPoints - 1)); got != want {
		t.Errorf("Earliest() = %v, want %v", got, want)
	}

	exact := NewRegular(to.Add(-(MaxPoints - 1)), to, Daily)
	if exact.Truncated() || exact.Len() != MaxPoints {
		t.Errorf("a window of exactly MaxPoints days: Len() = %d, Truncated() = %v", exact.Len(), exact.Truncated())
	}
}

func TestNewRegular_ClampsToHorizon(t *testing.T) {
	s := NewRegular(New(1850, 1, 1), New(1900, 3, 10), Monthly)
	want := []Date{New(1900, 1, 31), New(1900, 2, 28), New(1900, 3, 31)}
	if got := s.Dates(); !slices.Equal(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}
}

func TestNewExplicit(t *testing.T) {
	s := NewExplicit(New(2023, 3, 1), New(2023, 1, 1), New(2023, 3, 1))
	want := []Date{New(2023, 1, 1), New(2023, 3, 1)}
	if got := s.Dates(); !slices.Equal(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}

	empty := NewExplicit()
	if empty.Len() != 0 || empty.Earliest() != Min || empty.MostRecent() != Max {
		t.Errorf("empty set: Len() = %d, Earliest() = %v, MostRecent() = %v", empty.Len(), empty.Earliest(), empty.MostRecent())
	}
	if len(empty.Periods()) != 0 {
		t.Errorf("empty set has periods: %v", empty.Periods())
	}
}

func TestSet_UnboundedStart(t *testing.T) {
	s := NewRegular(New(2023, 1, 1), New(2023, 6, 30), Monthly).UnboundedStart()
	want := []Date{Min, New(2023, 6, 30)}
	if got := s.Dates(); !slices.Equal(got, want) {
		t.Errorf("UnboundedStart().Dates() = %v, want %v", got, want)
	}
	if s.kind != Explicit {
		t.Errorf("UnboundedStart() kind = %v, want Explicit", s.kind)
	}
}

func TestSet_Extend(t *testing.T) {
	s := NewRegular(New(2023, 3, 1), New(2023, 3, 31), Monthly).Extend(2, 1)
	// 60 days before March 1st is December 31st.
	want := []Date{New(2022, 12, 31), New(2023, 1, 31), New(2023, 2, 28), New(2023, 3, 31), New(2023, 4, 30)}
	if got := s.Dates(); !slices.Equal(got, want) {
		t.Errorf("Extend(2, 1).Dates() = %v, want %v", got, want)
	}

	e := NewExplicit(New(2023, 3, 1)).Extend(3, 0)
	wantE := []Date{New(2023, 2, 26), New(2023, 3, 1)}
	if got := e.Dates(); !slices.Equal(got, wantE) {
		t.Errorf("explicit Extend(3, 0).Dates() = %v, want %v", got, wantE)
	}

	if got := NewRegular(New(2023, 3, 1), New(2023, 3, 31), Monthly).Extend(0, 0).Dates(); !slices.Equal(got, []Date{New(2023, 3, 31)}) {
		t.Errorf("Extend(0, 0) changed the set: %v", got)
	}
}

func TestSet_Restrict(t *testing.T) {
	sets := []Set{
		NewRegular(New(2020, 1, 1), New(2023, 12, 31), Monthly),
		NewRegular(New(2020, 1, 1), New(2023, 12, 31), Yearly),
		NewRegular(New(2023, 1, 1), New(2023, 3, 31), Daily),
		NewRegular(New(1990, 1, 1), New(2023, 12, 31), Monthly), // truncated
		NewExplicit(New(2021, 1, 1), New(2022, 1, 1), New(2023, 1, 1)),
	}
	bounds := []Range{
		{From: New(2021, 5, 12), To: New(2022, 2, 3)},
		{From: New(1900, 1, 1), To: New(2200, 1, 1)},
		{From: New(2010, 1, 1), To: New(2021, 1, 1)},
		{From: New(2023, 2, 10), To: New(2023, 2, 10)},
		{From: New(2030, 1, 1), To: New(2031, 1, 1)},
	}
	for _, s := range sets {
		for _, b := range bounds {
			r := s.Restrict(b.From, b.To)
			for _, d := range r.Dates() {
				if !s.Bounds().Contains(d) {
					t.Errorf("%v.Restrict(%v) = %v: %v not in %v", s, b, r, d, s.Bounds())
				}
			}
		}
	}

	testCases := []struct {
		name     string
		s        Set
		min, max Date
		want     []Date
	}{
		{
			name: "inner periods",
			s:    NewRegular(New(2023, 1, 1), New(2023, 12, 31), Monthly),
			min:  New(2023, 2, 10), max: New(2023, 4, 2),
			want: []Date{New(2023, 2, 28), New(2023, 3, 31), New(2023, 4, 30)},
		},
		{
			name: "within the first period",
			s:    NewRegular(New(2023, 1, 1), New(2023, 3, 31), Monthly),
			min:  New(2023, 1, 1), max: New(2023, 1, 15),
			want: []Date{New(2023, 1, 31)},
		},
		{
			name: "within the last period",
			s:    NewRegular(New(2023, 1, 1), New(2023, 3, 31), Monthly),
			min:  New(2023, 3, 2), max: New(2023, 3, 3),
			want: []Date{New(2023, 3, 31)},
		},
		{
			name: "before the window",
			s:    NewRegular(New(2023, 1, 1), New(2023, 3, 31), Monthly),
			min:  New(2021, 1, 1), max: New(2022, 6, 1),
			want: nil,
		},
		{
			name: "explicit",
			s:    NewExplicit(New(2023, 1, 1), New(2023, 1, 10), New(2023, 1, 20)),
			min:  New(2023, 1, 5), max: New(2023, 1, 15),
			want: []Date{New(2023, 1, 10)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.s.Restrict(tc.min, tc.max).Dates()
			if len(got) != len(tc.want) || (len(got) > 0 && !slices.Equal(got, tc.want)) {
				t.Errorf("%v.Restrict(%v, %v) = %v, want %v", tc.s, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestSet_Periods(t *testing.T) {
	got := NewRegular(New(2023, 1, 1), New(2023, 2, 10), Monthly).Periods()
	want := []Range{
		{From: New(2023, 1, 1), To: New(2023, 1, 31)},
		{From: New(2023, 2, 1), To: New(2023, 2, 28)},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Periods() = %v, want %v", got, want)
	}

	got = NewExplicit(New(2023, time.January, 1), New(2023, time.January, 10)).Periods()
	want = []Range{
		{From: New(2023, 1, 1), To: New(2023, 1, 1)},
		{From: New(2023, 1, 2), To: New(2023, 1, 10)},
	}
	if !slices.Equal(got, want) {
		t.Errorf("explicit Periods() = %v, want %v", got, want)
	}
}
