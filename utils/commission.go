// utils/commission.go
package utils

import "math"

// CalculateCommission returns baseAmount * percentage / 100 rounded to two
// decimal places. The computation runs in integer cents with half-even
// rounding on the residue so repeated payouts cannot accumulate float drift.
func CalculateCommission(baseAmount, percentage float64) float64 {
	if baseAmount <= 0 || percentage <= 0 {
		return 0
	}

	baseCents := math.Round(baseAmount * 100)

	// commission in cents, before rounding: baseCents * percentage / 100
	raw := baseCents * percentage / 100

	cents := math.Floor(raw)
	frac := raw - cents
	switch {
	case frac > 0.5:
		cents++
	case frac == 0.5:
		// half-even: round to the nearest even cent
		if math.Mod(cents, 2) != 0 {
			cents++
		}
	}

	return cents / 100
}
