package alere

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("simple object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1).Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"b":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still appended.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", make(chan int)).Append("b", 2)
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON() of a channel: want an error")
		}
	})
}

func TestMoney_MarshalJSON(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(950, "EUR"), `{"currency":"EUR","amount":"950"}`},
		{M(1.005, "EUR"), `{"currency":"EUR","amount":"1.01"}`},
		{M(1.2345, "ACME"), `{"currency":"ACME","amount":"1.2345"}`},
		{M(-12, ""), `{"amount":"-12"}`},
	}
	for _, tc := range testCases {
		got, err := json.Marshal(tc.m)
		if err != nil {
			t.Fatalf("json.Marshal(%v) unexpected error: %v", tc.m, err)
		}
		if string(got) != tc.want {
			t.Errorf("json.Marshal(%v) = %s, want %s", tc.m, got, tc.want)
		}
	}
}

func TestRatio(t *testing.T) {
	testCases := []struct {
		r    Ratio
		str  string
		json string
	}{
		{ratio(110, 100), "+10.00%", "1.1"},
		{ratio(90, 100), "-10.00%", "0.9"},
		{ratio(1, 0), "n/a", "null"},
		{ratio(1, 1e-7), "n/a", "null"},
	}
	for _, tc := range testCases {
		if got := tc.r.String(); got != tc.str {
			t.Errorf("%v.String() = %q, want %q", float64(tc.r), got, tc.str)
		}
		got, err := json.Marshal(tc.r)
		if err != nil {
			t.Fatalf("json.Marshal(%v) unexpected error: %v", float64(tc.r), err)
		}
		if string(got) != tc.json {
			t.Errorf("json.Marshal(%v) = %s, want %s", float64(tc.r), got, tc.json)
		}
	}
	if !Undefined().Equal(Undefined()) || Undefined().Equal(1) {
		t.Errorf("Undefined() must only equal itself")
	}
}
