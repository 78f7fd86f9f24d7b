package stats

import "testing"

func TestNormalizeAliases(t *testing.T) {
	raw := map[string]any{
		"passingYards": 300.0,
		"receptions":   5,
		"carries":      "12",
		"td":           2.0,
		"int":          1,
		"fumblesLost":  0,
	}
	bundle := Normalize(raw)
	if bundle.Yards != 300 {
		t.Fatalf("expected yards 300, got %.1f", bundle.Yards)
	}
	if bundle.Receptions != 5 {
		t.Fatalf("expected receptions 5, got %.1f", bundle.Receptions)
	}
	if bundle.Rushes != 12 {
		t.Fatalf("expected rushes 12 from string carry count, got %.1f", bundle.Rushes)
	}
	if bundle.Touchdowns != 2 || bundle.Interceptions != 1 {
		t.Fatalf("unexpected tds/ints: %.1f / %.1f", bundle.Touchdowns, bundle.Interceptions)
	}
}

func TestNormalizeFirstAliasWins(t *testing.T) {
	raw := map[string]any{"yards": 150.0, "passingYards": 999.0}
	if got := Normalize(raw).Yards; got != 150 {
		t.Fatalf("expected first alias to win, got %.1f", got)
	}
}

func TestNormalizeGarbageIsZero(t *testing.T) {
	raw := map[string]any{"yards": "not a number", "tds": nil, "weird": true}
	bundle := Normalize(raw)
	if bundle != (StatBundle{}) {
		t.Fatalf("expected zero bundle, got %+v", bundle)
	}
	if Normalize(nil) != (StatBundle{}) {
		t.Fatalf("expected zero bundle from nil record")
	}
}

func TestNormalizeAdvanced(t *testing.T) {
	raw := map[string]any{
		"epa_per_play": 0.25,
		"cpoe":         3.1,
		"any_a":        7.4,
		"yprr":         2.2,
	}
	adv := NormalizeAdvanced(raw)
	if adv.EPAPerPlay != 0.25 || adv.CPOE != 3.1 || adv.AnyA != 7.4 {
		t.Fatalf("unexpected qb metrics: %+v", adv)
	}
	if adv.YardsPerRouteRun != 2.2 {
		t.Fatalf("expected yprr 2.2, got %.2f", adv.YardsPerRouteRun)
	}
	if adv.Sacks != 0 {
		t.Fatalf("absent field should be zero")
	}
}
