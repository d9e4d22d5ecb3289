package alere

import (
	"encoding/json"
	"fmt"
	"math"
)

// epsilon is the magnitude under which a denominator makes a ratio undefined.
const epsilon = 1e-6

// Ratio is a return on investment: 1.0 means nothing gained nor lost.
// An undefined ratio is NaN.
type Ratio float64

// Undefined is the sentinel of ratios with a zero denominator.
func Undefined() Ratio { return Ratio(math.NaN()) }

// ratio divides num by den, or returns Undefined when |den| < epsilon.
func ratio(num, den float64) Ratio {
	if math.Abs(den) < epsilon {
		return Undefined()
	}
	return Ratio(num / den)
}

func (p Ratio) IsUndefined() bool { return math.IsNaN(float64(p)) }

func (p Ratio) Equal(q Ratio) bool {
	if p.IsUndefined() || q.IsUndefined() {
		return p.IsUndefined() && q.IsUndefined()
	}
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// String formats the ratio as a percentage gain.
func (p Ratio) String() string {
	if p.IsUndefined() {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", (float64(p)-1)*100)
}

// MarshalJSON writes undefined ratios as null.
func (p Ratio) MarshalJSON() ([]byte, error) {
	if p.IsUndefined() || math.IsInf(float64(p), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}
