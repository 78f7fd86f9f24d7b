package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StatEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "stat_events_total", Help: "Count of player stat events ingested"},
		[]string{"provider"},
	)
	PriceUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_updates_total", Help: "Price updates applied"},
		[]string{"position"},
	)
	CappedUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "capped_updates_total", Help: "Updates clamped to the per-update cap"},
	)
	DeadBandTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "deadband_suppressions_total", Help: "Updates zeroed by the dead-band"},
	)
	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "store_errors_total", Help: "Non-fatal history store failures"},
		[]string{"op"},
	)
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trades_total", Help: "Paper portfolio trades executed"},
		[]string{"side"},
	)
)

func init() {
	prometheus.MustRegister(StatEventsTotal, PriceUpdatesTotal, CappedUpdatesTotal, DeadBandTotal, StoreErrorsTotal, TradesTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
