package stats

import "math"

// IQRWhisker is the Tukey fence multiplier.
const IQRWhisker = 1.5

// Bounds is a closed interval [Lower, Upper].
type Bounds struct {
	Lower, Upper float64
}

// Contains reports whether v lies within the bounds. NaN is never outside.
func (b Bounds) Contains(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return v >= b.Lower && v <= b.Upper
}

// Clip moves v to the nearest bound when it lies outside. NaN passes through.
func (b Bounds) Clip(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}
	return v
}

// ZScoreBounds returns [mean - t*std, mean + t*std].
func ZScoreBounds(mean, std, t float64) Bounds {
	return Bounds{Lower: mean - t*std, Upper: mean + t*std}
}

// IQRBounds returns the Tukey inner fences of x.
func IQRBounds(x []float64) (b Bounds, q1, q3 float64) {
	q1, q3 = Quartiles(x)
	iqr := q3 - q1
	return Bounds{Lower: q1 - IQRWhisker*iqr, Upper: q3 + IQRWhisker*iqr}, q1, q3
}
