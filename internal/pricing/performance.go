package pricing

import "github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"

// Blend between the advanced-metric component and the traditional box-score
// component, shared by every position family.
const (
	advancedBlend    = 0.6
	traditionalBlend = 0.4
)

// Score computes the composite performance score for one observation window.
// Each position family blends an advanced-metric term with a traditional
// box-score term; unknown positions, or lines carrying no advanced data at
// all, use the generic catch-all formula on the traditional bundle. Missing
// inputs are zero, so the function always produces a number.
func Score(class stats.Class, adv stats.Advanced, bundle stats.StatBundle) float64 {
	switch class {
	case stats.QB:
		if !hasQBAdvanced(adv) {
			return fallbackScore(bundle)
		}
		advanced := 0.5*adv.EPAPerPlay + 0.3*adv.CPOE + 0.2*adv.AnyA
		traditional := adv.PassingYards/300 + adv.PassingTDs*0.75 - adv.PassingInterceptions*0.5
		return advancedBlend*advanced + traditionalBlend*traditional
	case stats.RB:
		if !hasRBAdvanced(adv) {
			return fallbackScore(bundle)
		}
		advanced := 0.4*adv.RushYardsOverExpected + 0.3*adv.SuccessRate + 0.3*adv.YACPerAttempt
		traditional := adv.RushingYards/100 + adv.RushingTDs*0.8 + adv.ReceivingYards/50
		return advancedBlend*advanced + traditionalBlend*traditional
	case stats.WR, stats.TE:
		if !hasReceiverAdvanced(adv) {
			return fallbackScore(bundle)
		}
		advanced := 0.4*adv.YardsPerRouteRun + 0.3*adv.CatchRateOverExpected + 0.3*adv.EPAPerTarget
		traditional := adv.ReceivingYards/100 + adv.ReceivingTDs*0.8 + adv.Receptions/10
		return advancedBlend*advanced + traditionalBlend*traditional
	case stats.DEF:
		if !hasDefenseAdvanced(adv) {
			return fallbackScore(bundle)
		}
		advanced := 0.5*(-adv.EPAAllowedPerPlay) + 0.5*(-adv.SuccessRateAllowed)
		traditional := adv.Sacks*0.5 + adv.Turnovers*1.0 + adv.PointsAllowedAdjustment
		return advancedBlend*advanced + traditionalBlend*traditional
	default:
		return fallbackScore(bundle)
	}
}

// fallbackScore is the catch-all for unmatched positions and lines with no
// advanced metrics. Its constants are intentionally different from the
// per-position families.
func fallbackScore(bundle stats.StatBundle) float64 {
	return bundle.Yards*0.02 + bundle.Touchdowns*2 - (bundle.Interceptions+bundle.Fumbles)*1.5
}

func hasQBAdvanced(adv stats.Advanced) bool {
	return adv.EPAPerPlay != 0 || adv.CPOE != 0 || adv.AnyA != 0 ||
		adv.PassingYards != 0 || adv.PassingTDs != 0 || adv.PassingInterceptions != 0
}

func hasRBAdvanced(adv stats.Advanced) bool {
	return adv.RushYardsOverExpected != 0 || adv.SuccessRate != 0 || adv.YACPerAttempt != 0 ||
		adv.RushingYards != 0 || adv.RushingTDs != 0 || adv.ReceivingYards != 0
}

func hasReceiverAdvanced(adv stats.Advanced) bool {
	return adv.YardsPerRouteRun != 0 || adv.CatchRateOverExpected != 0 || adv.EPAPerTarget != 0 ||
		adv.ReceivingYards != 0 || adv.ReceivingTDs != 0 || adv.Receptions != 0
}

func hasDefenseAdvanced(adv stats.Advanced) bool {
	return adv.EPAAllowedPerPlay != 0 || adv.SuccessRateAllowed != 0 ||
		adv.Sacks != 0 || adv.Turnovers != 0 || adv.PointsAllowedAdjustment != 0
}
