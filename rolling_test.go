package alere

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimals(vs ...int64) []decimal.Decimal {
	ds := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		ds[i] = decimal.NewFromInt(v)
	}
	return ds
}

func TestRolling(t *testing.T) {
	testCases := []struct {
		name          string
		values        []decimal.Decimal
		prior, after  int
		want          []decimal.Decimal
	}{
		{"identity", decimals(3, -1, 4), 0, 0, decimals(3, -1, 4)},
		{"negative is identity", decimals(3, -1, 4), -2, -1, decimals(3, -1, 4)},
		{"prior", decimals(2, 4, 6, 8), 1, 0, decimals(2, 3, 5, 7)},
		{"after", decimals(2, 4, 6, 8), 0, 1, decimals(3, 5, 7, 8)},
		{"centered", decimals(2, 4, 6, 8, 10), 1, 1, decimals(3, 4, 6, 8, 9)},
		{"wider than series", decimals(1, 2, 3), 5, 5, decimals(2, 2, 2)},
		{"empty", nil, 1, 1, decimals()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rolling(tc.values, tc.prior, tc.after)
			if len(got) != len(tc.want) {
				t.Fatalf("Rolling() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if !got[i].Equal(tc.want[i]) {
					t.Errorf("Rolling()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
