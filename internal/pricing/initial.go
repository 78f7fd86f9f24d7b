package pricing

import (
	"math"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
)

// Hard bounds on any computed price. A safety clamp against absurd upstream
// stat lines, not a market-cap rule.
const (
	MinPrice = 5
	MaxPrice = 2000
)

// InitialPrice values a player from a traditional stat bundle: weighted stat
// score times the position multiplier, on top of the base price, clamped to
// [MinPrice, MaxPrice] and rounded to cents. It never fails; garbage inputs
// fall back to the generic weights and still produce a price.
func InitialPrice(bundle stats.StatBundle, class stats.Class, base float64) float64 {
	w := WeightsFor(class)
	score := bundle.Yards*w.Yards +
		bundle.Receptions*w.Receptions +
		bundle.Rushes*w.Rushes +
		bundle.Touchdowns*w.Touchdowns +
		bundle.Interceptions*w.Interceptions +
		bundle.Fumbles*w.Fumbles
	raw := base + score*MultiplierFor(class)
	return Round2(Clamp(raw, MinPrice, MaxPrice))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to two decimal places, the currency-like precision every
// price in the system carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
