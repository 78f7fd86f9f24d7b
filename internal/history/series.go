// Package history maintains the per-player price time series: one point per
// UTC calendar day, bounded length, oldest evicted first. Persistence is
// delegated to a pluggable Store; the append semantics here are identical no
// matter which backend is plugged in.
package history

import "time"

// DefaultCap bounds every series to roughly eight months of daily points.
const DefaultCap = 240

// PricePoint is one daily observation in a player's series.
type PricePoint struct {
	T time.Time `json:"t"`
	P float64   `json:"p"`
}

// AppendOrReplace inserts a point into a series keeping the series invariants:
// at most one point per UTC calendar day (a same-day write overwrites the last
// point's timestamp and price), points in time order, and at most cap points
// with the oldest dropped first. cap values below 1 fall back to DefaultCap.
func AppendOrReplace(series []PricePoint, point PricePoint, cap int) []PricePoint {
	if cap < 1 {
		cap = DefaultCap
	}
	if n := len(series); n > 0 && sameUTCDay(series[n-1].T, point.T) {
		series[n-1] = point
		return series
	}
	series = append(series, point)
	if len(series) > cap {
		series = series[len(series)-cap:]
	}
	return series
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
