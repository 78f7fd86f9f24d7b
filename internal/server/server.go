// Package server exposes the HTTP surface: player prices and history, the
// paper portfolio, and a websocket stream of live price updates.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/engine"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/metrics"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/portfolio"
)

// Server wires the engine and portfolio behind JSON handlers.
type Server struct {
	eng     *engine.Engine
	account *portfolio.Account
	hub     *Hub
	log     zerolog.Logger
}

// New builds a server. The hub may be shared with the engine's update hook.
func New(eng *engine.Engine, account *portfolio.Account, hub *Hub, log zerolog.Logger) *Server {
	return &Server{eng: eng, account: account, hub: hub, log: log}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/players", s.handlePlayers)
	mux.HandleFunc("GET /api/players/{id}/price", s.handlePrice)
	mux.HandleFunc("GET /api/players/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	mux.HandleFunc("POST /api/portfolio/trades", s.handleTrade)
	mux.HandleFunc("GET /ws", s.hub.ServeWS)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("took", time.Since(start)).Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type playerQuote struct {
	PlayerID string    `json:"player_id"`
	Price    float64   `json:"price"`
	Ts       time.Time `json:"ts"`
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.eng.PlayerIDs(r.Context())
	if err != nil {
		s.fail(w, "list players", err)
		return
	}
	quotes := make([]playerQuote, 0, len(ids))
	for _, id := range ids {
		pt, ok, err := s.eng.Latest(r.Context(), id)
		if err != nil || !ok {
			continue
		}
		quotes = append(quotes, playerQuote{PlayerID: id, Price: pt.P, Ts: pt.T})
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	pt, ok, err := s.eng.Latest(r.Context(), id)
	if err != nil {
		s.fail(w, "load price", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "unknown player")
		return
	}
	writeJSON(w, http.StatusOK, playerQuote{PlayerID: id, Price: pt.P, Ts: pt.T})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	series, err := s.eng.History(r.Context(), id)
	if err != nil {
		s.fail(w, "load history", err)
		return
	}
	if len(series) == 0 {
		writeError(w, http.StatusNotFound, "unknown player")
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.account.Snapshot(s.currentPrices(r.Context())))
}

type tradeRequest struct {
	PlayerID string  `json:"player_id"`
	Side     string  `json:"side"`
	Shares   float64 `json:"shares"`
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade payload")
		return
	}
	side := portfolio.Side(req.Side)
	if side != portfolio.Buy && side != portfolio.Sell {
		writeError(w, http.StatusBadRequest, "side must be BUY or SELL")
		return
	}

	pt, ok, err := s.eng.Latest(r.Context(), req.PlayerID)
	if err != nil {
		s.fail(w, "load price for trade", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "unknown player")
		return
	}

	trade, err := s.account.Execute(req.PlayerID, side, req.Shares, pt.P)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	metrics.TradesTotal.WithLabelValues(string(side)).Inc()
	writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) currentPrices(ctx context.Context) map[string]float64 {
	prices := make(map[string]float64)
	ids, err := s.eng.PlayerIDs(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("marking portfolio without quotes")
		return prices
	}
	for _, id := range ids {
		if pt, ok, err := s.eng.Latest(ctx, id); err == nil && ok {
			prices[id] = pt.P
		}
	}
	return prices
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.log.Error().Err(err).Msg(what)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
