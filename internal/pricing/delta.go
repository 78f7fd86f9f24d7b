package pricing

import "math"

// Default smoothing knobs. Overridable through configuration; the zero-value
// DeltaParams resolves to these.
const (
	DefaultAlpha        = 0.3
	DefaultDeadBand     = 0.005
	DefaultMaxChangePct = 0.10
)

// DeltaParams tunes the smoother/capper.
type DeltaParams struct {
	Alpha        float64 // EMA decay, weight on the newest observation
	DeadBand     float64 // EMA magnitudes below this apply as zero
	MaxChangePct float64 // bound on the applied fractional change
}

func (p DeltaParams) withDefaults() DeltaParams {
	if p.Alpha <= 0 || p.Alpha > 1 {
		p.Alpha = DefaultAlpha
	}
	if p.DeadBand < 0 {
		p.DeadBand = DefaultDeadBand
	}
	if p.MaxChangePct <= 0 {
		p.MaxChangePct = DefaultMaxChangePct
	}
	return p
}

// Delta is the two-field result of one smoothing step. Applied is what the
// caller multiplies into the price; Smoothed is what it persists as the
// player's state for the next update. They differ on purpose: the dead-band
// and cap act on the output only, so the stored EMA keeps accumulating a
// sustained signal even while each individual update is clamped.
type Delta struct {
	Applied  float64
	Smoothed float64
}

// ComputeDelta folds one observed fractional change into the player's
// smoothed state and derives the change to actually apply: EMA first, then
// the dead-band, then the symmetric cap.
func ComputeDelta(observedPct, prevSmoothed float64, p DeltaParams) Delta {
	p = p.withDefaults()
	smoothed := p.Alpha*observedPct + (1-p.Alpha)*prevSmoothed
	effective := smoothed
	if math.Abs(effective) < p.DeadBand {
		effective = 0
	}
	return Delta{
		Applied:  Clamp(effective, -p.MaxChangePct, p.MaxChangePct),
		Smoothed: smoothed,
	}
}
