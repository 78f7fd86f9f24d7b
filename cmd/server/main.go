package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/config"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/engine"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/feed"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/history"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/metrics"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/portfolio"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/pricing"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/server"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/util"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "internal/config/config.yaml", "Path to YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := buildStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open history store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	eng := engine.New(store, engine.Options{
		BasePrice: cfg.Pricing.BasePrice,
		Delta: pricing.DeltaParams{
			Alpha:        cfg.Pricing.Alpha,
			DeadBand:     cfg.Pricing.DeadBand,
			MaxChangePct: cfg.Pricing.MaxChangePct,
		},
		Sensitivity: cfg.Pricing.Sensitivity,
		LeagueAvg:   cfg.Pricing.LeagueAvg,
		HistoryCap:  cfg.Pricing.HistoryCap,
	}, log)

	account := portfolio.NewAccount(cfg.Portfolio.StartingCash, portfolio.Limits{
		MaxNotionalPerTrade: cfg.Portfolio.MaxNotionalPerTrade,
		MaxSharesPerPlayer:  cfg.Portfolio.MaxSharesPerPlayer,
	})
	if cfg.Portfolio.TradesPath != "" {
		recorder, err := portfolio.NewJSONLRecorder(cfg.Portfolio.TradesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open trade recorder")
		}
		defer recorder.Close()
		account.SetRecorder(recorder)
	}

	hub := server.NewHub(log)
	eng.OnUpdate(hub.Broadcast)

	api := server.New(eng, account, hub, log)
	httpSrv := &http.Server{Addr: cfg.App.ListenAddr, Handler: api.Handler()}
	go func() {
		log.Info().Str("addr", cfg.App.ListenAddr).Msg("api up")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api stopped")
			cancel()
		}
	}()

	src := feed.New(cfg.Feed.Provider, cfg.Feed.Players, log,
		feed.WithBaseURL(cfg.Feed.BaseURL),
		feed.WithPollInterval(time.Duration(cfg.Feed.PollInterval)*time.Millisecond),
	)
	events := make(chan stats.Event, 1024)
	go func() {
		if err := src.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	log.Info().Str("provider", cfg.Feed.Provider).Msg("pricing engine started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			_ = httpSrv.Shutdown(shutdownCtx)
			done()
			return
		case ev := <-events:
			res := eng.Process(ctx, ev)
			log.Debug().
				Str("player", ev.PlayerID).
				Float64("price", res.Price).
				Float64("applied", res.AppliedPct).
				Msg("price update")
		}
	}
}

func buildStore(ctx context.Context, cfg config.Storage, log zerolog.Logger) (history.Store, error) {
	switch cfg.Backend {
	case "redis":
		return history.NewRedisStore(ctx, getEnv("REDIS_URL", cfg.RedisURL))
	case "sqlite":
		return history.NewSQLiteStore(ctx, cfg.SQLitePath)
	default:
		opts := []history.MemoryOption{history.WithLogger(log)}
		if cfg.SnapshotPath != "" {
			opts = append(opts, history.WithSnapshotPath(cfg.SnapshotPath))
		}
		if cfg.FlushDebounce > 0 {
			opts = append(opts, history.WithFlushDebounce(time.Duration(cfg.FlushDebounce)*time.Millisecond))
		}
		return history.NewMemoryStore(opts...)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
