package alere

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/etnz/alere/date"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
)

func TestNetWorth(t *testing.T) {
	dates := date.NewExplicit(
		date.New(2022, time.December, 31),
		date.New(2023, time.January, 14),
		date.New(2023, time.January, 15),
		date.New(2023, time.January, 31),
	)
	rep, err := engine(basic()).NetWorth(quiet(), NetWorthRequest{Dates: dates, Currency: eur})
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	if rep.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", rep.Currency)
	}
	for i, want := range []float64{0, 1000, 950, 950} {
		assertMoney(t, "total "+rep.Dates[i].String(), rep.Totals[i], want)
		assertMoney(t, "liquid "+rep.Dates[i].String(), rep.Liquid[i], want)
	}
	var names []string
	for _, a := range rep.Accounts {
		names = append(names, a.Name)
	}
	if want := []string{"Checking", "Groceries", "Opening balances"}; !slices.Equal(names, want) {
		t.Errorf("Accounts = %v, want %v", names, want)
	}
	if h := rep.Accounts[0].Holdings[3]; !h.Priced || h.Shares.Decimal().IntPart() != 950 {
		t.Errorf("Checking holding = %+v, want 950 priced shares", h)
	}
	if len(rep.Unpriced) != 0 {
		t.Errorf("Unpriced = %v, want none", rep.Unpriced)
	}
}

func TestNetWorth_Scenarios(t *testing.T) {
	jan31 := date.NewExplicit(date.New(2023, time.January, 31))
	what := basic().add(Transaction{ID: 3, Timestamp: date.New(2023, time.January, 20), Scenario: 7}, cash(checking, -300), cash(groceries, 300))

	testCases := []struct {
		name     string
		f        *fixture
		scenario ScenarioID
		want     float64
	}{
		{"baseline", basic(), NoScenario, 950},
		{"baseline ignores scenarios", what, NoScenario, 950},
		{"scenario", what, 7, 650},
		{"other scenario", what, 8, 950},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := engine(tc.f).NetWorth(quiet(), NetWorthRequest{Dates: jan31, Currency: eur, Scenario: tc.scenario})
			if err != nil {
				t.Fatalf("NetWorth() error = %v", err)
			}
			assertMoney(t, "total", rep.Totals[0], tc.want)
		})
	}
}

func TestNetWorth_Recurring(t *testing.T) {
	apr30 := date.NewExplicit(date.New(2023, time.April, 30))
	testCases := []struct {
		ceiling recurrence.Occurrences
		want    float64
	}{
		{recurrence.None, 950},
		{2, -50},
		{recurrence.Default, -550},
	}
	for _, tc := range testCases {
		rep, err := engine(basic().rent()).NetWorth(quiet(), NetWorthRequest{Dates: apr30, Currency: eur, Ceiling: tc.ceiling})
		if err != nil {
			t.Fatalf("NetWorth() error = %v", err)
		}
		assertMoney(t, "total with "+tc.ceiling.String()+" occurrences", rep.Totals[0], tc.want)
	}
}

func TestNetWorth_Unpriced(t *testing.T) {
	f := basic().add(Transaction{ID: 10, Timestamp: date.New(2023, time.January, 10)}, shares(goldBars, 1, 100), cash(checking, -100))
	rep, err := engine(f).NetWorth(quiet(), NetWorthRequest{Dates: date.NewExplicit(date.New(2023, time.January, 31)), Currency: eur})
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	assertMoney(t, "total", rep.Totals[0], 850)
	if !slices.Equal(rep.Unpriced, []AccountID{goldBars}) {
		t.Errorf("Unpriced = %v, want [%d]", rep.Unpriced, goldBars)
	}
	for _, a := range rep.Accounts {
		if a.Account == goldBars && a.Holdings[0].Priced {
			t.Errorf("gold holding is priced: %+v", a.Holdings[0])
		}
	}
}

func TestNetWorth_Conversion(t *testing.T) {
	f := basic().
		add(Transaction{ID: 10, Timestamp: date.New(2023, time.January, 5)}, leg{usdChecking, 100, 100, usd}, cash(opening, -90)).
		quote(usd, eur, "2023-01-01", 0.9).
		quote(usd, eur, "2023-01-20", 0.8)
	dates := date.NewExplicit(date.New(2023, time.January, 15), date.New(2023, time.January, 31))
	rep, err := engine(f).NetWorth(quiet(), NetWorthRequest{Dates: dates, Currency: eur})
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	assertMoney(t, "total on 2023-01-15", rep.Totals[0], 1040)
	assertMoney(t, "total on 2023-01-31", rep.Totals[1], 1030)
}

func TestNetWorth_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(quiet())
	cancel()
	rep, err := engine(basic()).NetWorth(ctx, NetWorthRequest{Dates: date.NewExplicit(date.New(2023, time.January, 31)), Currency: eur})
	if rep != nil {
		t.Errorf("NetWorth() = %v, want no report", rep)
	}
	var derr *DataAccessError
	if !errors.As(err, &derr) || derr.Op != "networth" {
		t.Fatalf("NetWorth() error = %v, want a DataAccessError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("NetWorth() error = %v, want context.Canceled", err)
	}
}

func TestNetWorthHistory(t *testing.T) {
	window := date.NewRegular(date.New(2023, time.January, 1), date.New(2023, time.March, 31), date.Monthly)
	rep, err := engine(basic()).NetWorthHistory(quiet(), HistoryRequest{Window: window, Currency: eur, Prior: 1, After: 1})
	if err != nil {
		t.Fatalf("NetWorthHistory() error = %v", err)
	}
	if len(rep.Points) != 3 {
		t.Fatalf("Points = %v, want 3", rep.Points)
	}
	wantDates := []date.Date{date.New(2023, time.January, 31), date.New(2023, time.February, 28), date.New(2023, time.March, 31)}
	for i, p := range rep.Points {
		if p.Date != wantDates[i] {
			t.Errorf("Points[%d].Date = %s, want %s", i, p.Date, wantDates[i])
		}
		assertMoney(t, "networth", p.NetWorth, 950)
	}
	assertMoney(t, "January delta", rep.Points[0].Delta, 950)
	assertMoney(t, "February delta", rep.Points[1].Delta, 0)
	assertMoney(t, "January average", rep.Points[0].Average, 475)
	assertMoney(t, "March average", rep.Points[2].Average, 0)
}

func TestNetWorth_ChecksIntervalsWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithContext(context.Background(), logging.NewWithWriter(&buf).Level(zerolog.DebugLevel))
	dates := date.NewExplicit(date.New(2023, time.June, 30))
	if _, err := engine(basic().rent()).NetWorth(ctx, NetWorthRequest{Dates: dates, Currency: eur}); err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "inconsistent balance intervals") {
		t.Errorf("log = %s, want no interval warning", out)
	}
	if !strings.Contains(out, "net worth computed") {
		t.Errorf("log = %s, want debug output", out)
	}
}
