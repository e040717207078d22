package utils

import "math"

// RoundWithTwoDecimalPlace rounds to two decimals for display figures.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
