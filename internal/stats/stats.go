// Package stats standardizes payloads shared between data ingestion and the
// pricing layers.
package stats

import "time"

// StatBundle is the canonical set of traditional counters for one player over
// one observation window (a game, a week, or season-to-date). Absent fields
// are zero; upstream data may be noisy so no invariant forces non-negativity.
type StatBundle struct {
	Yards         float64
	Receptions    float64
	Rushes        float64
	Touchdowns    float64
	Interceptions float64
	Fumbles       float64
}

// Advanced carries the richer per-position metrics consumed by the
// performance scorer. A provider fills only the fields relevant to the
// player's position family; the rest stay zero.
type Advanced struct {
	// Quarterbacks.
	EPAPerPlay   float64
	CPOE         float64
	AnyA         float64
	PassingYards float64
	PassingTDs   float64
	// PassingInterceptions is separate from StatBundle.Interceptions so a
	// defensive takeaway never penalizes a quarterback line.
	PassingInterceptions float64

	// Running backs.
	RushYardsOverExpected float64 // per attempt
	SuccessRate           float64
	YACPerAttempt         float64
	RushingYards          float64
	RushingTDs            float64

	// Receivers and tight ends.
	YardsPerRouteRun      float64
	CatchRateOverExpected float64
	EPAPerTarget          float64
	ReceivingYards        float64
	ReceivingTDs          float64
	Receptions            float64

	// Defense.
	EPAAllowedPerPlay       float64
	SuccessRateAllowed      float64
	Sacks                   float64
	Turnovers               float64
	PointsAllowedAdjustment float64
}

// Event is one observation for one player, emitted by a feed provider and
// consumed by the engine.
type Event struct {
	PlayerID string
	Name     string
	Position string
	Class    Class
	Bundle   StatBundle
	Advanced Advanced
	Ts       time.Time
}
