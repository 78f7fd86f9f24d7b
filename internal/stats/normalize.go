package stats

import (
	"encoding/json"
	"strconv"
)

// Alias tables for raw provider records. Keys are checked in order and the
// first present one wins; a present but non-numeric value counts as zero
// rather than falling through to the next alias.
var (
	yardsAliases = []string{"yards", "yds", "passingYards", "rushingYards", "receivingYards", "statYards", "totalYards"}
	recAliases   = []string{"rec", "receptions", "catches"}
	rushAliases  = []string{"rush", "rushes", "carries", "rushingAttempts"}
	tdAliases    = []string{"tds", "touchdowns", "td", "passingTDs", "rushingTDs", "receivingTDs", "totalTDs"}
	intAliases   = []string{"ints", "interceptions", "int"}
	fumAliases   = []string{"fumbles", "fum", "fumblesLost"}
)

var advancedAliases = map[string][]string{
	"epaPerPlay":            {"epaPerPlay", "epa_per_play", "epa"},
	"cpoe":                  {"cpoe", "completionPctOverExpected"},
	"anyA":                  {"anyA", "any_a", "adjustedNetYardsPerAttempt"},
	"passingYards":          {"passingYards", "passYds"},
	"passingTDs":            {"passingTDs", "passTD"},
	"passingInterceptions":  {"passingInterceptions", "interceptions", "ints"},
	"rushYardsOverExpected": {"rushYardsOverExpected", "ryoe", "ryoePerAtt"},
	"successRate":           {"successRate", "success_rate"},
	"yacPerAttempt":         {"yacPerAttempt", "yacPerAtt", "yco_attempt"},
	"rushingYards":          {"rushingYards", "rushYds"},
	"rushingTDs":            {"rushingTDs", "rushTD"},
	"yardsPerRouteRun":      {"yardsPerRouteRun", "yprr"},
	"catchRateOverExpected": {"catchRateOverExpected", "croe"},
	"epaPerTarget":          {"epaPerTarget", "epa_per_target"},
	"receivingYards":        {"receivingYards", "recYds"},
	"receivingTDs":          {"receivingTDs", "recTD"},
	"receptions":            {"receptions", "rec"},
	"epaAllowedPerPlay":     {"epaAllowedPerPlay", "epa_allowed"},
	"successRateAllowed":    {"successRateAllowed", "success_rate_allowed"},
	"sacks":                 {"sacks", "sck"},
	"turnovers":             {"turnovers", "takeaways"},
	"pointsAllowedAdj":      {"pointsAllowedAdj", "pointsAllowedAdjustment", "pa_adj"},
}

// Normalize extracts the canonical StatBundle from an arbitrary raw record.
// It never fails: missing or malformed fields contribute zero, so the result
// for garbage input is simply the zero bundle.
func Normalize(raw map[string]any) StatBundle {
	return StatBundle{
		Yards:         pick(raw, yardsAliases),
		Receptions:    pick(raw, recAliases),
		Rushes:        pick(raw, rushAliases),
		Touchdowns:    pick(raw, tdAliases),
		Interceptions: pick(raw, intAliases),
		Fumbles:       pick(raw, fumAliases),
	}
}

// NormalizeAdvanced extracts the advanced-metric fields from a raw record
// under the same never-fail rules as Normalize.
func NormalizeAdvanced(raw map[string]any) Advanced {
	g := func(key string) float64 { return pick(raw, advancedAliases[key]) }
	return Advanced{
		EPAPerPlay:              g("epaPerPlay"),
		CPOE:                    g("cpoe"),
		AnyA:                    g("anyA"),
		PassingYards:            g("passingYards"),
		PassingTDs:              g("passingTDs"),
		PassingInterceptions:    g("passingInterceptions"),
		RushYardsOverExpected:   g("rushYardsOverExpected"),
		SuccessRate:             g("successRate"),
		YACPerAttempt:           g("yacPerAttempt"),
		RushingYards:            g("rushingYards"),
		RushingTDs:              g("rushingTDs"),
		YardsPerRouteRun:        g("yardsPerRouteRun"),
		CatchRateOverExpected:   g("catchRateOverExpected"),
		EPAPerTarget:            g("epaPerTarget"),
		ReceivingYards:          g("receivingYards"),
		ReceivingTDs:            g("receivingTDs"),
		Receptions:              g("receptions"),
		EPAAllowedPerPlay:       g("epaAllowedPerPlay"),
		SuccessRateAllowed:      g("successRateAllowed"),
		Sacks:                   g("sacks"),
		Turnovers:               g("turnovers"),
		PointsAllowedAdjustment: g("pointsAllowedAdj"),
	}
}

func pick(raw map[string]any, aliases []string) float64 {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			return toFloat(v)
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
