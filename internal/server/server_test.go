package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/engine"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/history"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/portfolio"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
)

func newTestServer(t *testing.T) (*Server, *engine.Engine) {
	t.Helper()
	store, err := history.NewMemoryStore()
	if err != nil {
		t.Fatalf("NewMemoryStore error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	eng := engine.New(store, engine.Options{}, zerolog.Nop())
	account := portfolio.NewAccount(10000, portfolio.Limits{})
	return New(eng, account, NewHub(zerolog.Nop()), zerolog.Nop()), eng
}

func seedPlayer(t *testing.T, eng *engine.Engine, id string) engine.Result {
	t.Helper()
	return eng.Process(context.Background(), stats.Event{
		PlayerID: id,
		Position: "QB",
		Class:    stats.QB,
		Bundle:   stats.StatBundle{Yards: 300, Touchdowns: 3},
		Ts:       time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC),
	})
}

func TestHandlePriceAndHistory(t *testing.T) {
	srv, eng := newTestServer(t)
	seeded := seedPlayer(t, eng, "qb1")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/players/qb1/price")
	if err != nil {
		t.Fatalf("price request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var quote playerQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.PlayerID != "qb1" || quote.Price != seeded.Price {
		t.Fatalf("unexpected quote %+v", quote)
	}

	resp, err = http.Get(ts.URL + "/api/players/qb1/history")
	if err != nil {
		t.Fatalf("history request error: %v", err)
	}
	defer resp.Body.Close()
	var series []history.PricePoint
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(series) != 1 || series[0].P != seeded.Price {
		t.Fatalf("unexpected history %+v", series)
	}

	resp, err = http.Get(ts.URL + "/api/players/nobody/price")
	if err != nil {
		t.Fatalf("unknown player request error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d", resp.StatusCode)
	}
}

func TestHandlePlayersList(t *testing.T) {
	srv, eng := newTestServer(t)
	seedPlayer(t, eng, "qb1")
	seedPlayer(t, eng, "qb2")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/players")
	if err != nil {
		t.Fatalf("players request error: %v", err)
	}
	defer resp.Body.Close()
	var quotes []playerQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected two quotes, got %d", len(quotes))
	}
}

func TestHandleTradeAndPortfolio(t *testing.T) {
	srv, eng := newTestServer(t)
	seeded := seedPlayer(t, eng, "qb1")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	body, _ := json.Marshal(tradeRequest{PlayerID: "qb1", Side: "BUY", Shares: 2})
	resp, err := http.Post(ts.URL+"/api/portfolio/trades", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("trade request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var trade portfolio.Trade
	if err := json.NewDecoder(resp.Body).Decode(&trade); err != nil {
		t.Fatalf("decode trade: %v", err)
	}
	if trade.Price != seeded.Price || trade.Shares != 2 {
		t.Fatalf("unexpected trade %+v", trade)
	}

	resp, err = http.Get(ts.URL + "/api/portfolio")
	if err != nil {
		t.Fatalf("portfolio request error: %v", err)
	}
	defer resp.Body.Close()
	var snap portfolio.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Positions["qb1"].Shares != 2 {
		t.Fatalf("expected position reflected in snapshot, got %+v", snap)
	}
	if snap.Positions["qb1"].MarketValue == 0 {
		t.Fatalf("expected position marked to market")
	}
}

func TestHandleTradeValidation(t *testing.T) {
	srv, eng := newTestServer(t)
	seedPlayer(t, eng, "qb1")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	cases := []struct {
		body   string
		status int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"player_id":"qb1","side":"HOLD","shares":1}`, http.StatusBadRequest},
		{`{"player_id":"nobody","side":"BUY","shares":1}`, http.StatusNotFound},
		{`{"player_id":"qb1","side":"SELL","shares":1}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		resp, err := http.Post(ts.URL+"/api/portfolio/trades", "application/json", bytes.NewReader([]byte(tc.body)))
		if err != nil {
			t.Fatalf("trade request error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("body %q: expected %d, got %d", tc.body, tc.status, resp.StatusCode)
		}
	}
}
