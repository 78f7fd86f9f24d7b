package pricing

import (
	"math"
	"math/rand"
	"testing"
)

func TestComputeDeltaDeadBand(t *testing.T) {
	d := ComputeDelta(0.003, 0, DeltaParams{})
	if !almostEqual(d.Smoothed, 0.0009) {
		t.Fatalf("expected smoothed 0.0009, got %.6f", d.Smoothed)
	}
	if d.Applied != 0 {
		t.Fatalf("expected dead-band to zero the applied change, got %.6f", d.Applied)
	}
}

func TestComputeDeltaCap(t *testing.T) {
	d := ComputeDelta(0.5, 0, DeltaParams{})
	if !almostEqual(d.Smoothed, 0.15) {
		t.Fatalf("expected smoothed 0.15, got %.6f", d.Smoothed)
	}
	if d.Applied != 0.10 {
		t.Fatalf("expected applied capped at 0.10, got %.6f", d.Applied)
	}

	d = ComputeDelta(-0.5, 0, DeltaParams{})
	if d.Applied != -0.10 {
		t.Fatalf("expected applied capped at -0.10, got %.6f", d.Applied)
	}
}

func TestComputeDeltaAppliedAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		observed := (rng.Float64() - 0.5) * 20
		prev := (rng.Float64() - 0.5) * 20
		d := ComputeDelta(observed, prev, DeltaParams{})
		if math.Abs(d.Applied) > 0.10 {
			t.Fatalf("applied %.4f out of bounds for observed=%.4f prev=%.4f", d.Applied, observed, prev)
		}
	}
}

func TestComputeDeltaStatePersistsUncapped(t *testing.T) {
	// A sustained strong signal keeps accumulating in the smoothed state even
	// while every output is clamped to the cap.
	prev := 0.0
	for i := 0; i < 10; i++ {
		d := ComputeDelta(1.0, prev, DeltaParams{})
		prev = d.Smoothed
	}
	if prev <= 0.10 {
		t.Fatalf("smoothed state should exceed the output cap, got %.4f", prev)
	}
	if prev >= 1.0 {
		t.Fatalf("smoothed state should stay below the raw signal, got %.4f", prev)
	}
}

func TestComputeDeltaDefaults(t *testing.T) {
	// Out-of-range params resolve to the documented defaults.
	d := ComputeDelta(0.5, 0, DeltaParams{Alpha: -1, DeadBand: -1, MaxChangePct: 0})
	if !almostEqual(d.Smoothed, 0.15) || d.Applied != 0.10 {
		t.Fatalf("defaults not applied: %+v", d)
	}
}
