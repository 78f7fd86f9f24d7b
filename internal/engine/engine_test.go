package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/history"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/pricing"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
)

func newTestEngine(t *testing.T) (*Engine, *history.MemoryStore) {
	t.Helper()
	store, err := history.NewMemoryStore()
	if err != nil {
		t.Fatalf("NewMemoryStore error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, Options{}, zerolog.Nop()), store
}

func qbEvent(ts time.Time) stats.Event {
	return stats.Event{
		PlayerID: "qb1",
		Position: "QB",
		Class:    stats.QB,
		Bundle:   stats.StatBundle{Yards: 300, Touchdowns: 3},
		Advanced: stats.Advanced{EPAPerPlay: 0.2, CPOE: 2, AnyA: 8, PassingYards: 300, PassingTDs: 3},
		Ts:       ts,
	}
}

func TestProcessBootstrapsFirstSighting(t *testing.T) {
	eng, _ := newTestEngine(t)
	res := eng.Process(context.Background(), qbEvent(time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC)))
	if res.Price != 124.38 {
		t.Fatalf("expected bootstrap price 124.38, got %.2f", res.Price)
	}
	if res.AppliedPct != 0 {
		t.Fatalf("bootstrap must not apply a change, got %.4f", res.AppliedPct)
	}

	pt, ok, err := eng.Latest(context.Background(), "qb1")
	if err != nil || !ok || pt.P != 124.38 {
		t.Fatalf("expected latest point persisted, got %+v ok=%v err=%v", pt, ok, err)
	}
}

func TestProcessUpdateBoundedAndPersisted(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	day1 := time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC)

	first := eng.Process(ctx, qbEvent(day1))
	second := eng.Process(ctx, qbEvent(day1.AddDate(0, 0, 1)))

	if math.Abs(second.AppliedPct) > pricing.DefaultMaxChangePct {
		t.Fatalf("applied pct %.4f exceeds cap", second.AppliedPct)
	}
	wantPrice := pricing.Round2(first.Price * (1 + second.AppliedPct))
	if second.Price != wantPrice {
		t.Fatalf("price %.2f does not match applied pct (want %.2f)", second.Price, wantPrice)
	}

	series, err := store.Series(ctx, "qb1")
	if err != nil || len(series) != 2 {
		t.Fatalf("expected two daily points, got %d err %v", len(series), err)
	}

	smoothed, _ := store.Smoothed(ctx, "qb1")
	if smoothed == 0 {
		t.Fatalf("expected smoothed state persisted after update")
	}
}

func TestProcessSameDayOverwrites(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	day := time.Date(2024, 9, 8, 13, 0, 0, 0, time.UTC)

	eng.Process(ctx, qbEvent(day))
	eng.Process(ctx, qbEvent(day.Add(6*time.Hour)))

	series, _ := store.Series(ctx, "qb1")
	if len(series) != 1 {
		t.Fatalf("expected same-day overwrite, got %d points", len(series))
	}
}

func TestProcessWeakSignalHoldsPrice(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	day := time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC)

	first := eng.Process(ctx, qbEvent(day))

	// A score exactly at the league average produces factor 0, observed 0,
	// and the dead-band holds the price flat.
	flat := stats.Event{
		PlayerID: "qb1",
		Class:    stats.Unknown,
		Bundle:   stats.StatBundle{Yards: 50}, // fallback score 1.0 == league avg
		Ts:       day.AddDate(0, 0, 1),
	}
	second := eng.Process(ctx, flat)
	if second.AppliedPct != 0 || second.Price != first.Price {
		t.Fatalf("expected flat price, got %.2f applied %.4f", second.Price, second.AppliedPct)
	}
}

func TestProcessNotifiesObserver(t *testing.T) {
	eng, _ := newTestEngine(t)
	var seen []Result
	eng.OnUpdate(func(r Result) { seen = append(seen, r) })

	eng.Process(context.Background(), qbEvent(time.Now().UTC()))
	if len(seen) != 1 || seen[0].PlayerID != "qb1" {
		t.Fatalf("expected one observed result, got %+v", seen)
	}
}

// failingStore breaks every write to prove the engine still returns results.
type failingStore struct{ history.Store }

func (f failingStore) PutSeries(context.Context, string, []history.PricePoint) error {
	return errors.New("disk on fire")
}

func (f failingStore) PutSmoothed(context.Context, string, float64) error {
	return errors.New("disk on fire")
}

func TestProcessSurvivesStoreFailure(t *testing.T) {
	mem, err := history.NewMemoryStore()
	if err != nil {
		t.Fatalf("NewMemoryStore error: %v", err)
	}
	defer mem.Close()

	eng := New(failingStore{mem}, Options{}, zerolog.Nop())
	res := eng.Process(context.Background(), qbEvent(time.Now().UTC()))
	if res.Price != 124.38 {
		t.Fatalf("expected computed price despite store failure, got %.2f", res.Price)
	}
}
