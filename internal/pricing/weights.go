// Package pricing converts player stat lines into prices: a weighted initial
// valuation, a per-position composite performance score, a saturating
// score-to-price mapping, and the smoothed, capped per-update delta.
package pricing

import "github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"

// Weights maps each traditional counter to its contribution per unit. Zero
// means the counter does not price for that position.
type Weights struct {
	Yards         float64
	Receptions    float64
	Rushes        float64
	Touchdowns    float64
	Interceptions float64
	Fumbles       float64
}

// Business tuning constants. These are deliberate, not derived; changing any
// of them changes every price in the system.
var classWeights = map[stats.Class]Weights{
	stats.QB:  {Yards: 0.005, Touchdowns: 6, Interceptions: -4, Fumbles: -4},
	stats.RB:  {Yards: 0.01, Rushes: 0.02, Touchdowns: 6, Fumbles: -4},
	stats.WR:  {Yards: 0.01, Receptions: 0.5, Touchdowns: 6, Fumbles: -4},
	stats.TE:  {Yards: 0.01, Receptions: 0.5, Touchdowns: 6, Fumbles: -4},
	stats.DEF: {Touchdowns: 6, Interceptions: 3, Fumbles: 3},
}

// fallbackWeights applies to unknown positions. Interceptions and fumbles
// read as giveaways here, unlike the DEF row where they are takeaways.
var fallbackWeights = Weights{Yards: 0.05, Touchdowns: 10, Interceptions: -8, Fumbles: -8}

var classMultipliers = map[stats.Class]float64{
	stats.QB:  1.25,
	stats.WR:  1.15,
	stats.RB:  1.1,
	stats.TE:  1.05,
	stats.DEF: 0.9,
}

// WeightsFor returns the stat weights for a position class, falling back to
// the generic row for unknown classes.
func WeightsFor(class stats.Class) Weights {
	if w, ok := classWeights[class]; ok {
		return w
	}
	return fallbackWeights
}

// MultiplierFor returns the position multiplier, 1 for unknown classes.
func MultiplierFor(class stats.Class) float64 {
	if m, ok := classMultipliers[class]; ok {
		return m
	}
	return 1
}
