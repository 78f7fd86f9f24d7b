package pricing

import "math"

// PerformanceFactor turns a score into a fractional performance relative to
// the league average: (score/leagueAvg) - 1. A zero, negative-impossible NaN,
// or otherwise unusable league average is replaced with 1 so the function
// always returns a finite factor.
func PerformanceFactor(score, leagueAvg float64) float64 {
	if leagueAvg == 0 || math.IsNaN(leagueAvg) {
		leagueAvg = 1
	}
	return score/leagueAvg - 1
}

// PriceFromPerformance applies a saturating multiplicative adjustment:
// oldPrice * (1 + tanh(factor*sensitivity)). A single call stays strictly
// inside (0x, 2x) of the old price no matter how extreme the factor is, so
// price can neither zero out nor double in one step. Cent rounding alone
// would break the upper bound for large factors (tanh approaches 1 and the
// rounded result lands on exactly 2x), so the result is also held one cent
// under doubling. The floor is 0.01. Callers still clamp the resulting
// percentage move to the per-update cap before applying it.
func PriceFromPerformance(oldPrice, factor, sensitivity float64) float64 {
	price := oldPrice * (1 + math.Tanh(factor*sensitivity))
	if price < 0.01 {
		price = 0.01
	}
	price = Round2(price)
	if ceiling := Round2(2*oldPrice - 0.01); price > ceiling {
		price = ceiling
	}
	return price
}
