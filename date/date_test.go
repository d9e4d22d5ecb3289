package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2023, time.February, 29), New(2023, time.March, 1); got != want {
		t.Errorf("New(2023-02-29) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2025-07-01 13:45:00", New(2025, time.July, 1), false},
		{"01/07/2025", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		want Date
	}{
		{"zero", Date{}, Min},
		{"before", New(1800, 1, 1), Min},
		{"inside", New(2023, 1, 15), New(2023, 1, 15)},
		{"after", New(2500, 1, 1), Max},
		{"end of time", EndOfTime, Max},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.in); got != tc.want {
				t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	if got := New(2024, 1, 1).DaysSince(New(2023, 1, 1)); got != 365 {
		t.Errorf("DaysSince() = %d, want 365", got)
	}
	if got := New(2023, 1, 1).DaysSince(New(2023, 1, 11)); got != -10 {
		t.Errorf("DaysSince() = %d, want -10", got)
	}
}

func TestDate_JSON(t *testing.T) {
	in := New(2023, time.March, 5)
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(b) != `"2023-03-05"` {
		t.Errorf("json.Marshal() = %s", b)
	}
	var out Date
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("json round trip = %v, want %v", out, in)
	}
}
