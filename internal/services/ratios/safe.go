package ratios

import "math"

// SafeDiv is the one governing numeric convention of every ratio formula:
// division by a zero, missing, or non-finite denominator returns 0, never
// NaN or Inf. A non-finite numerator also returns 0.
func SafeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// SafePct is SafeDiv scaled to a percentage.
func SafePct(num, den float64) float64 {
	return SafeDiv(num, den) * 100
}
