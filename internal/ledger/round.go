package ledger

import "math"

// epsilon is the currency minor-unit tolerance used for all comparisons.
const epsilon = 0.01

// round2 rounds to two decimal places (currency minor units).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// distributeRemainder adjusts the last element of amounts so the slice sums
// to target exactly, absorbing the cent-level drift left by per-element
// rounding. amounts must already be rounded to two decimals.
func distributeRemainder(amounts []float64, target float64) {
	if len(amounts) == 0 {
		return
	}
	var sum float64
	for _, a := range amounts {
		sum += a
	}
	drift := round2(target - sum)
	if drift != 0 {
		last := len(amounts) - 1
		amounts[last] = round2(amounts[last] + drift)
	}
}
