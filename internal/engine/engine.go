// Package engine drives the price lifecycle: it turns incoming stat events
// into bootstrapped or updated prices and persists the results through the
// history store.
package engine

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/history"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/metrics"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/pricing"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
)

const lockStripes = 64

// Options tunes the engine. Zero values fall back to the documented defaults.
type Options struct {
	BasePrice   float64
	Delta       pricing.DeltaParams
	Sensitivity float64
	LeagueAvg   float64
	HistoryCap  int
}

func (o Options) withDefaults() Options {
	if o.BasePrice <= 0 {
		o.BasePrice = 100
	}
	if o.Sensitivity <= 0 {
		o.Sensitivity = 1
	}
	if o.LeagueAvg == 0 {
		o.LeagueAvg = 1
	}
	if o.HistoryCap < 1 {
		o.HistoryCap = history.DefaultCap
	}
	return o
}

// Result is what one processed stat event produces: the player's new price
// and the fractional change that was actually applied. The caller always gets
// a Result, even when persisting it failed.
type Result struct {
	PlayerID   string    `json:"player_id"`
	Price      float64   `json:"price"`
	AppliedPct float64   `json:"applied_pct"`
	Ts         time.Time `json:"ts"`
}

// UpdateFunc observes every applied result, e.g. for websocket broadcast.
type UpdateFunc func(Result)

// Engine owns the shared price state. Updates for the same player serialize
// on a striped lock so the same-day-overwrite and cap invariants hold;
// different players proceed in parallel.
type Engine struct {
	store    history.Store
	opts     Options
	log      zerolog.Logger
	locks    [lockStripes]sync.Mutex
	onUpdate UpdateFunc
}

// New builds an engine on top of a store.
func New(store history.Store, opts Options, log zerolog.Logger) *Engine {
	return &Engine{store: store, opts: opts.withDefaults(), log: log}
}

// OnUpdate registers a callback invoked after every processed event. Must be
// set before Process is called from multiple goroutines.
func (e *Engine) OnUpdate(fn UpdateFunc) { e.onUpdate = fn }

func (e *Engine) lockFor(playerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(playerID))
	return &e.locks[h.Sum32()%lockStripes]
}

// Process handles one stat event. A player seen for the first time is
// bootstrapped from the traditional bundle; every later event flows through
// score → factor → saturated target → smoothed, capped delta. Store failures
// are logged and counted but the computed Result is returned regardless.
func (e *Engine) Process(ctx context.Context, ev stats.Event) Result {
	mu := e.lockFor(ev.PlayerID)
	mu.Lock()
	defer mu.Unlock()

	series, err := e.store.Series(ctx, ev.PlayerID)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("series").Inc()
		e.log.Error().Err(err).Str("player", ev.PlayerID).Msg("load series, pricing from scratch")
		series = nil
	}

	ts := ev.Ts
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var res Result
	if len(series) == 0 {
		price := pricing.InitialPrice(ev.Bundle, ev.Class, e.opts.BasePrice)
		res = Result{PlayerID: ev.PlayerID, Price: price, AppliedPct: 0, Ts: ts}
	} else {
		res = e.update(ctx, ev, series[len(series)-1].P, ts)
	}

	series = history.AppendOrReplace(series, history.PricePoint{T: ts, P: res.Price}, e.opts.HistoryCap)
	if err := e.store.PutSeries(ctx, ev.PlayerID, series); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("put_series").Inc()
		e.log.Error().Err(err).Str("player", ev.PlayerID).Msg("persist series")
	}

	metrics.PriceUpdatesTotal.WithLabelValues(ev.Class.String()).Inc()
	if e.onUpdate != nil {
		e.onUpdate(res)
	}
	return res
}

func (e *Engine) update(ctx context.Context, ev stats.Event, oldPrice float64, ts time.Time) Result {
	score := pricing.Score(ev.Class, ev.Advanced, ev.Bundle)
	factor := pricing.PerformanceFactor(score, e.opts.LeagueAvg)
	target := pricing.PriceFromPerformance(oldPrice, factor, e.opts.Sensitivity)

	observed := 0.0
	if oldPrice > 0 {
		observed = (target - oldPrice) / oldPrice
	}

	prev, err := e.store.Smoothed(ctx, ev.PlayerID)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("smoothed").Inc()
		e.log.Error().Err(err).Str("player", ev.PlayerID).Msg("load smoothed state, assuming zero")
		prev = 0
	}

	d := pricing.ComputeDelta(observed, prev, e.opts.Delta)
	if d.Applied == 0 && observed != 0 {
		metrics.DeadBandTotal.Inc()
	}
	if d.Applied != d.Smoothed && d.Applied != 0 {
		metrics.CappedUpdatesTotal.Inc()
	}

	// The uncapped EMA is what carries forward; the cap and dead-band only
	// shape the applied output.
	if err := e.store.PutSmoothed(ctx, ev.PlayerID, d.Smoothed); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("put_smoothed").Inc()
		e.log.Error().Err(err).Str("player", ev.PlayerID).Msg("persist smoothed state")
	}

	newPrice := pricing.Round2(oldPrice * (1 + d.Applied))
	return Result{PlayerID: ev.PlayerID, Price: newPrice, AppliedPct: d.Applied, Ts: ts}
}

// Latest returns the most recent price point for a player, ok=false when the
// player has no history yet.
func (e *Engine) Latest(ctx context.Context, playerID string) (history.PricePoint, bool, error) {
	series, err := e.store.Series(ctx, playerID)
	if err != nil {
		return history.PricePoint{}, false, err
	}
	if len(series) == 0 {
		return history.PricePoint{}, false, nil
	}
	return series[len(series)-1], true, nil
}

// History returns a player's full stored series.
func (e *Engine) History(ctx context.Context, playerID string) ([]history.PricePoint, error) {
	return e.store.Series(ctx, playerID)
}

// PlayerIDs lists every player with at least one stored point.
func (e *Engine) PlayerIDs(ctx context.Context) ([]string, error) {
	return e.store.PlayerIDs(ctx)
}
